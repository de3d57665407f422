package main

import (
	"github.com/ascend-app/ascend-api/internal/config"
	"github.com/ascend-app/ascend-api/internal/database"
	"github.com/ascend-app/ascend-api/internal/routes"
	"github.com/ascend-app/ascend-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if err := database.Connect(cfg); err != nil {
		log.Fatalw("failed to connect database", "error", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalw("failed to migrate database", "error", err)
	}
	log.Infow("database ready", "url", cfg.DatabaseURL)

	if err := services.InitPush(cfg.FCMServiceAccount); err != nil {
		log.Warnw("push init failed", "error", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "ascend-api",
	})

	app.Static("/uploads", cfg.UploadsDir)
	routes.Setup(app)

	log.Infow("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
