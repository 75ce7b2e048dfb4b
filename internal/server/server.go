package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/calebwray/community-events/config"
	"github.com/calebwray/community-events/internal/handlers"
	"github.com/calebwray/community-events/internal/helpers"
	"github.com/calebwray/community-events/internal/middleware"
)

func Start() error {
	if err := config.Load("config.yaml"); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := helpers.NewLogger(config.Conf.Log.Level)

	db, err := config.InitDatabase()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if config.Conf.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	setupRoutes(r, db)

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	logger.Info("server listening", "addr", addr)
	return r.Run(addr)
}

func setupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))

	auth := r.Group("/api/auth")
	{
		auth.GET("/login", handlers.Login)
		auth.GET("/callback", handlers.Callback)
		auth.POST("/logout", handlers.Logout)
	}

	data := r.Group("/api/data")
	{
		event := data.Group("/event")
		{
			event.POST("/create-event", handlers.CreateEvent)
			event.GET("/get-event", handlers.ListEvents)
		}

		protected := data.Group("")
		protected.Use(middleware.SessionMiddleware())
		{
			protected.GET("/user/get-user", handlers.GetUser)
			protected.GET("/dashboard/summary", handlers.DashboardSummary)
		}
	}
}
