package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/examranking/rankcalc/internal/api"
	"github.com/examranking/rankcalc/internal/backend"
	"github.com/examranking/rankcalc/internal/calculator"
	"github.com/examranking/rankcalc/internal/catalog"
	"github.com/examranking/rankcalc/internal/config"
	"github.com/examranking/rankcalc/internal/db"
	"github.com/examranking/rankcalc/internal/logger"
	"github.com/examranking/rankcalc/internal/result"
	"github.com/examranking/rankcalc/internal/session"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("RankCalc Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("api_base_url=%s", cfg.APIBaseURL)
	log.Debug("catalog_source=%s", cfg.CatalogSource)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("mock_delay_ms=%d", cfg.MockDelayMs)
	log.Debug("http_timeout_seconds=%d", cfg.HTTPTimeoutSec)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Load templates
	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates()
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	client := backend.New(cfg.APIBaseURL, time.Duration(cfg.HTTPTimeoutSec)*time.Second)

	var cat catalog.Catalog
	switch cfg.CatalogSource {
	case config.CatalogSourceRemote:
		cat = catalog.NewRemote(client)
		log.Info("using remote exam catalog at %s", cfg.APIBaseURL)
	default:
		cat, err = catalog.NewStatic()
		if err != nil {
			log.Error("failed to load static exam catalog: %v", err)
			os.Exit(1)
		}
		log.Info("using embedded exam catalog")
	}

	sess := session.New(database)
	sess.Initialize(context.Background())

	flow := calculator.New(result.New(), database, time.Duration(cfg.MockDelayMs)*time.Millisecond)

	srv := &api.Server{
		Catalog:   cat,
		Session:   sess,
		Flow:      flow,
		Backend:   client,
		DB:        database,
		Templates: tmpl,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("RankCalc Server Stopped")
	log.Info("===========================================")
}
