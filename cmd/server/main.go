package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"testimonial-portal-backend/internal/api/routes"
	"testimonial-portal-backend/internal/config"
	"testimonial-portal-backend/internal/service"
	"testimonial-portal-backend/internal/store"
)

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set up logging
	setupLogging(cfg.LogLevel)

	// Initialize the record store
	st, err := openStore(cfg)
	if err != nil {
		logrus.Fatal("Failed to initialize record store:", err)
	}

	// Initialize the logo asset store
	logos, err := service.NewLogoStore(cfg.UploadDir)
	if err != nil {
		logrus.Fatal("Failed to initialize upload directory:", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := routes.SetupRoutes(st, logos, service.NewSMTPMailer(cfg), cfg)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "7010"
	}

	logrus.Infof("Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatal("Failed to start server:", err)
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.StoreBackend == "sql" {
		return store.NewSQLStore(cfg.SQLitePath)
	}
	return store.NewFileStore(cfg.DataDir)
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	switch level {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}
