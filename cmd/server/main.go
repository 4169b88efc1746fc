package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gobook-app/backend/internal/realtime"
	"github.com/gobook-app/backend/internal/router"
	"github.com/gobook-app/backend/pkg/config"
	"github.com/gobook-app/backend/pkg/logger"
	"github.com/gobook-app/backend/validators"
)

func main() {
	db, cfg, err := config.InitDB()
	if err != nil {
		log.Fatalf("failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	hub := realtime.NewHub(zlog)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	if err := router.SetupRoutes(e, db.Postgres, db.Mongo.Database(cfg.MongoDBName), hub, zlog); err != nil {
		zlog.Fatal("failed to set up routes", zap.Error(err))
	}

	zlog.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := e.Start(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
