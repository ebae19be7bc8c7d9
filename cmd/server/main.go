package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glekoz/uvsearch/config"
	"github.com/glekoz/uvsearch/internal/repository"
	"github.com/glekoz/uvsearch/internal/service"
	"github.com/glekoz/uvsearch/internal/web"
	"github.com/glekoz/uvsearch/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, real environment wins
	_ = godotenv.Load()
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger := logger.New(os.Stdout, cfg.App.Env, cfg.App.LogLevel)
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := repository.NewPool(ctx, cfg.PG)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	repo := repository.New(pool, cfg.PG.Tables)
	defer repo.Close()

	svc := service.New(repo, logger)
	handler := web.NewHandler(svc, logger)
	server := web.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info(fmt.Sprintf("starting server on :%s", cfg.Server.Port),
		"observations", cfg.PG.Tables.Observations, "uv", cfg.PG.Tables.UV)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		repo.Close()
		os.Exit(1)
	}

	logger.Info("server stopped")
}
