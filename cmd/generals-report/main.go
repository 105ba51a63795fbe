// Command generals-report plays a scenario file without a terminal and
// prints the final board as YAML.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/generals/internal/config"
	"github.com/samdwyer/generals/internal/engine"
	"github.com/samdwyer/generals/internal/logs"
	"github.com/samdwyer/generals/internal/scenario"
	"github.com/samdwyer/generals/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	fs := pflag.NewFlagSet("generals-report", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "", "YAML config file (log and telemetry settings)")
	output := fs.StringP("output", "o", "", "write the report here instead of stdout")
	fs.String("log-level", "", "log level")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: generals-report [flags] scenario.yaml...\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	loader := config.NewLoader(*configPath)
	if err := loader.BindFlags(fs); err != nil {
		log.Fatal(err)
	}
	cfg, err := loader.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := logs.Init("generals-report", cfg.Log); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logs.Sync() }()

	ctx := context.Background()
	if cfg.Telemetry.Enabled {
		telemetry.ConfigureEnv(cfg.Telemetry.Endpoint, cfg.Telemetry.Headers)
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logs.Warn("telemetry setup failed", zap.Error(err))
		} else {
			defer func() { _ = shutdown(ctx) }()
		}
	}

	out := io.Writer(os.Stdout)
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}

	if err := report(ctx, out, fs.Args()); err != nil {
		logs.Error("report failed", zap.Error(err))
		_ = logs.Sync()
		log.Fatal(err)
	}
}

// report runs every scenario and writes the results as one YAML document
// each.
func report(ctx context.Context, w io.Writer, paths []string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()

	for _, path := range paths {
		sc, err := scenario.LoadFile(path)
		if err != nil {
			return err
		}
		res, err := scenario.Run(ctx, sc, engine.WithLogger(logs.L()))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logs.Info("scenario finished",
			zap.String("scenario", path),
			zap.Int("ticks", res.Ticks),
			zap.String("fingerprint", res.Fingerprint),
		)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
	}
	return nil
}
