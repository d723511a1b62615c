package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lookup-tracker/db"
	"lookup-tracker/internal/analytics"
	"lookup-tracker/internal/config"
	"lookup-tracker/internal/iplookup"
	"lookup-tracker/internal/lookup"
	"lookup-tracker/internal/phonelookup"
	"lookup-tracker/internal/web"
	"lookup-tracker/middleware"
)

// Global loggers for different output streams
var (
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		errorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	sqliteDB, err := db.ConnectToSQLite(cfg.SQLitePath)
	if err != nil {
		errorLogger.Fatalf("Failed to connect to SQLite: %v", err)
	}

	if err := db.InitializeSchema(sqliteDB); err != nil {
		errorLogger.Fatalf("Failed to initialize database schema: %v", err)
	}

	repo := db.NewSQLiteSearchRepository(sqliteDB)
	defer repo.Close()

	phoneService := phonelookup.NewPhoneLookupService(cfg.GeocoderRegion, cfg.CarrierRegion)
	ipService := iplookup.NewIPLookupService(cfg.IPProviderURL, cfg.CallerIPURL, cfg.HTTPTimeout)
	lookupService := lookup.NewLookupService(phoneService, ipService, repo)
	analyticsService := analytics.NewAnalyticsService(repo)

	router := web.NewRouter(
		lookup.NewLookupHandlers(lookupService),
		analytics.NewAnalyticsHandlers(analyticsService),
	)
	handler := middleware.RecoveryMiddleware(middleware.SetupCORS()(middleware.LoggingMiddleware(router)))

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * cfg.HTTPTimeout,
	}

	go func() {
		infoLogger.Printf("Listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errorLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infoLogger.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		errorLogger.Printf("Server shutdown: %v", err)
	}
}
