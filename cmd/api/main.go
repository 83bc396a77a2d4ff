package main

import (
	"log"
	"log/slog"
	"os"

	"streetgrade/internal/config"

	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("api", pflag.ExitOnError)
	flags.String("config", "", "Path to a config file")
	flags.Int("port", 0, "Port to listen on")
	flags.String("provider", "", "Elevation provider: open-elevation or open-meteo")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	_ = flags.Parse(os.Args[1:])

	// Load configuration
	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	// Create app
	app, err := NewApp(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		log.Fatal(err)
	}

	// Start server
	logger.Info("starting server", "addr", cfg.GetServerAddr())
	if err := app.Run(cfg.GetServerAddr()); err != nil {
		logger.Error("server failed", "error", err)
		log.Fatal(err)
	}
}
