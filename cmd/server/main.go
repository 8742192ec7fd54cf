package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/k8automation/marketing-api/internal/api"
	"github.com/k8automation/marketing-api/internal/infrastructure/config"
	mongodb "github.com/k8automation/marketing-api/internal/infrastructure/db/mongo"
	redisdb "github.com/k8automation/marketing-api/internal/infrastructure/db/redis"
	"github.com/k8automation/marketing-api/pkg/logger"
)

// @title           K8 Automation API
// @version         1.0
// @description     Marketing-site backend: authentication, public lead capture, and role-gated lead administration.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := mongodb.Bootstrap(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongodb index bootstrap failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
