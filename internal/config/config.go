// Package config loads game settings from an optional YAML file and
// GENERALS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/samdwyer/generals/internal/world"
)

// Config holds all game configuration.
type Config struct {
	// Seed for board generation. Zero picks a time-based seed.
	Seed int64 `mapstructure:"seed"`

	BoardSize    int           `mapstructure:"board_size"`
	Players      int           `mapstructure:"players"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
	FrameRate    int           `mapstructure:"frame_rate"` // terminal redraws per second

	Terrain   world.Terrain   `mapstructure:"terrain"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"` // write to stderr
	Dev     bool   `mapstructure:"dev"`

	// File enables a rotated JSON log file.
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
	Compress   bool   `mapstructure:"compress"`
}

// TelemetryConfig holds OTLP exporter settings.
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Headers  string `mapstructure:"headers"`
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.BoardSize < 2 {
		errs = append(errs, fmt.Errorf("board_size must be at least 2, got %d", c.BoardSize))
	}
	if c.Players < 2 {
		errs = append(errs, fmt.Errorf("players must be at least 2, got %d", c.Players))
	}
	if c.Players > c.BoardSize*c.BoardSize {
		errs = append(errs, fmt.Errorf("%d players do not fit on a %dx%d board", c.Players, c.BoardSize, c.BoardSize))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %v", c.TickInterval))
	}
	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frame_rate must be positive, got %d", c.FrameRate))
	}
	if err := c.Terrain.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("terrain: %w", err))
	}
	return errors.Join(errs...)
}
