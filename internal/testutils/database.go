package testutils

import (
	"fmt"
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/calebwray/community-events/config"
)

// SetupTestDB opens a postgres test database from environment variables
// (with local defaults), migrates the schema and returns a transaction that
// is rolled back when the test finishes. Tests are skipped when no test
// database is reachable.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		host := getEnvOrDefault("POSTGRES_HOST", "localhost")
		port := getEnvOrDefault("POSTGRES_PORT", "5432")
		user := getEnvOrDefault("POSTGRES_USER", "postgres")
		password := getEnvOrDefault("POSTGRES_PASSWORD", "postgres")
		dbname := getEnvOrDefault("POSTGRES_DB", "community_events_test")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("postgres not available, skipping: %v", err)
	}

	if err := config.MigrateModels(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	tx := db.Begin()
	t.Cleanup(func() {
		tx.Rollback()
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return tx
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
