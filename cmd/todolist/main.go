package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todolist/internal/config"
	"todolist/internal/db"
	"todolist/internal/logging"
	"todolist/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logging.InitLogger(cfg.Logging)
	logging.Logger.Info("Starting todolist service...")

	// Initialize database
	database, err := db.New(cfg.Database)
	if err != nil {
		logging.Logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	srv := server.New(cfg, database)

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		s := <-signals
		logging.Logger.Infof("Received signal: %v", s)
		cancel()
	}()

	// Start the server
	go func() {
		logging.Logger.Infof("Server listening on port %d", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			logging.Logger.Errorf("Error running server: %v", err)
			cancel()
		}
	}()

	// Wait for shutdown
	<-ctx.Done()
	logging.Logger.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("Error during shutdown: %v", err)
		os.Exit(1)
	}

	logging.Logger.Info("Service shutdown complete")
}
