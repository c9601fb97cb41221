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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/database"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/logger"
	"trade-journal-go/internal/server"
	"trade-journal-go/internal/store"
	"trade-journal-go/internal/upload"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Connect to the database
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated.")

	st := store.New(db)
	service := journal.NewService(log, st)
	importer := upload.NewImporter(log, st)

	apiHandler := server.NewAPIHandler(log, st, service, importer, cfg.Upload.MaxFileBytes)
	mux := apiHandler.Routes(cfg.Server.RateLimit, cfg.Server.RateLimitBurst)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Starting journal server", zap.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server failed", zap.Error(err))
	}
	log.Info("Server has been shut down.")
}
