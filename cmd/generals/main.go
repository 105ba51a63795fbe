// Package main is the entry point for the terminal game.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/samdwyer/generals/internal/config"
	"github.com/samdwyer/generals/internal/game"
	"github.com/samdwyer/generals/internal/logs"
	"github.com/samdwyer/generals/internal/telemetry"
)

// defaultLogFile is used when no log file is configured; the terminal is
// busy with the board.
const defaultLogFile = "generals.log"

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := run(); err != nil {
		log.Fatalf("generals: %v", err)
	}
}

func run() error {
	fs := pflag.NewFlagSet("generals", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "", "YAML config file")
	fs.Int64("seed", 0, "board seed, 0 for a time-based seed")
	fs.Int("players", 2, "number of teams")
	fs.Int("board-size", 32, "board edge length")
	fs.Duration("tick-interval", 0, "time between ticks")
	fs.String("log-level", "", "log level")
	fs.String("log-file", "", "log file")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	loader := config.NewLoader(*configPath)
	if err := loader.BindFlags(fs); err != nil {
		return err
	}
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	cfg.Log.Console = false
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile
	}
	if err := logs.Init("generals", cfg.Log); err != nil {
		return err
	}
	defer func() { _ = logs.Sync() }()

	loader.OnChange(func(c *config.Config, err error) {
		if err != nil {
			logs.Warn("config reload failed", zap.Error(err))
			return
		}
		if err := logs.SetLevel(c.Log.Level); err != nil {
			logs.Warn("bad log level", zap.String("level", c.Log.Level), zap.Error(err))
			return
		}
		logs.Info("log level changed", zap.String("level", c.Log.Level))
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		telemetry.ConfigureEnv(cfg.Telemetry.Endpoint, cfg.Telemetry.Headers)
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			// Continue without telemetry - game still works
			logs.Warn("telemetry setup failed", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logs.Error("telemetry shutdown failed", zap.Error(err))
				}
			}()
		}
	}

	g, err := game.New(ctx, cfg, logs.L())
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}
	defer g.Close()

	return g.Run(ctx)
}
