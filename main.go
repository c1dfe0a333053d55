package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smartfarm/config"
	"smartfarm/controllers"
	"smartfarm/middlewares"
	"smartfarm/mqtt"
	"smartfarm/utils"
)

func main() {
	// Load environment variables
	godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	// Crop profiles are validated at load time; a degenerate range is a
	// deployment error, not something to limp along with.
	if err := config.InitCropProfiles(); err != nil {
		slog.Error("failed to load crop profiles", "err", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL database
	dsn := os.Getenv("DATABASE_URL")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}

	// Set the global DB in the config package and migrate models
	config.DB = db
	controllers.MigrateModels(db)

	controllers.Alerter = utils.NewSMSAlerter(
		cfg.Alerts.Enabled,
		cfg.Alerts.From,
		cfg.Alerts.To,
		time.Duration(cfg.Alerts.CooldownMinutes)*time.Minute,
	)

	// Optional MQTT ingest alongside the HTTP API.
	if cfg.MQTT.Broker != "" {
		listener, err := mqtt.NewListener(cfg.MQTT, controllers.IngestReading)
		if err != nil {
			slog.Error("failed to start MQTT listener", "err", err)
			os.Exit(1)
		}
		defer listener.Close()
	}

	// Set up Gin router with CORS configuration
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Public routes
	r.POST("/signup", controllers.Signup)
	r.POST("/login", controllers.Login)

	// Protected routes using auth middleware
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/ws", controllers.HandleWebSocket)
	auth.GET("/profile", controllers.GetProfile)
	auth.GET("/users", controllers.GetUsers)

	auth.POST("/sensor-data", controllers.ReceiveData)
	auth.GET("/history", controllers.GetHistory)
	auth.GET("/latest", controllers.GetLatest)
	auth.GET("/abnormal-count", controllers.GetAbnormalCount)
	auth.GET("/abnormal-history", controllers.GetAbnormalHistory)
	auth.GET("/download-csv", controllers.DownloadCSV)

	auth.GET("/motor", controllers.GetMotorState)
	auth.GET("/motor/history", controllers.GetMotorHistory)
	auth.POST("/motor/mode", controllers.SetMotorMode)
	auth.POST("/motor/toggle", controllers.ToggleMotor)

	auth.GET("/crops", controllers.GetCrops)
	auth.GET("/recommendations", controllers.GetRecommendations)

	auth.POST("/chat", controllers.HandleChat)
	auth.GET("/chat/history", controllers.GetChatHistory)

	slog.Info("starting server", "port", cfg.Server.Port)
	r.Run(":" + cfg.Server.Port)
}
