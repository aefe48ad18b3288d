package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RichardoC/synxai/internal/api"
	"github.com/RichardoC/synxai/internal/config"
	"github.com/RichardoC/synxai/internal/db"
	"github.com/RichardoC/synxai/internal/llm"
	"github.com/RichardoC/synxai/internal/logger"
	"github.com/RichardoC/synxai/internal/web"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	written, err := web.Bootstrap(cfg.StaticDir)
	if err != nil {
		log.Fatal("failed to write static assets",
			zap.Error(err),
			zap.String("staticDir", cfg.StaticDir))
	}
	for _, path := range written {
		log.Info("Created static asset", zap.String("path", path))
	}

	database, err := db.New(cfg.DBPath, db.WithForeignKeys(cfg.EnforceForeignKeys))
	if err != nil {
		log.Fatal("failed to initialize database",
			zap.Error(err),
			zap.String("dbPath", cfg.DBPath))
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llmService, err := llm.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize LLM service",
			zap.Error(err),
			zap.String("provider", cfg.Provider))
	}
	defer llmService.Close()

	handler := api.NewHandler(database, llmService, cfg.StaticDir, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Starting server",
		zap.String("addr", cfg.Addr),
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("failed to start server", zap.Error(err))
	}
	log.Info("Server stopped")
}
