package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/calebwray/community-events/internal/models"
)

var Conf *AppConfig

type AppConfig struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Google   GoogleConfig   `koanf:"google"`
	Session  SessionConfig  `koanf:"session"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	Mode string `koanf:"mode"` // debug, release
}

type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
	SSLMode  bool   `koanf:"sslmode"`
}

type GoogleConfig struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
	RedirectURL  string `koanf:"redirect_url"`
}

type SessionConfig struct {
	Secret   string `koanf:"secret"`
	TTLHours int    `koanf:"ttl_hours"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// Load reads the yaml config file and overlays environment variables with
// the APP_ prefix (APP_GOOGLE__CLIENT_SECRET -> google.client_secret).
func Load(configPath string) error {
	k := koanf.New(".")

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}

	if err := k.Load(env.Provider("APP_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "APP_")), "__", ".")
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}

	Conf = &AppConfig{}
	if err := k.Unmarshal("", Conf); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if Conf.Server.Port == 0 {
		Conf.Server.Port = 8080
	}
	if Conf.Session.TTLHours == 0 {
		Conf.Session.TTLHours = 24
	}
	if Conf.Session.Secret == "" {
		return fmt.Errorf("session.secret is required")
	}

	return nil
}

func InitDatabase() (*gorm.DB, error) {
	dbCfg := Conf.Database

	sslmode := "disable"
	if dbCfg.SSLMode {
		sslmode = "require"
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		dbCfg.Host, dbCfg.Username, dbCfg.Password, dbCfg.Database, dbCfg.Port, sslmode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := MigrateModels(db); err != nil {
		return nil, err
	}

	return db, nil
}

// MigrateModels registers the explicit join table and migrates the schema.
func MigrateModels(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Event{}, "Tags", &models.EventTag{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&models.Tag{}, "Events", &models.EventTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(&models.Event{}, &models.Tag{}, &models.EventTag{})
}
