// Package main runs the romanizer as a local HTTP server for development and
// browser-facing deployments.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pricofy/uroman-gateway/internal/app"
	"github.com/pricofy/uroman-gateway/internal/config"
	"github.com/pricofy/uroman-gateway/internal/logging"
	"github.com/pricofy/uroman-gateway/internal/platform"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.NewProduction("info").Error(err, "invalid configuration")
		os.Exit(1)
	}

	log := app.NewLogger(cfg)
	a, err := app.New(cfg, log)
	if err != nil {
		log.Error(err, "failed to start")
		os.Exit(1)
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	browser := platform.NewBrowser(a.Services(), platform.BrowserCodec{
		AllowedOrigin: cfg.AllowedOrigin,
		MaxBodyBytes:  cfg.MaxBodyBytes,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(browser, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("listening", "addr", cfg.Addr, "engine", cfg.Engine)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(err, "server failed")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "shutdown failed")
	}
}
