package game

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/generals/internal/config"
	"github.com/samdwyer/generals/internal/engine"
	"github.com/samdwyer/generals/internal/telemetry"
	"github.com/samdwyer/generals/internal/world"
)

// resolveSeed returns seed, or a time-based seed when it is zero.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// NewSession generates a board from cfg and wraps a fresh game in a session.
func NewSession(ctx context.Context, cfg *config.Config, log *zap.Logger) *engine.Session {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	seed := resolveSeed(cfg.Seed)
	b := world.Empty(cfg.BoardSize)
	b.RandomizeWith(ctx, rand.New(rand.NewSource(seed)), cfg.Players, cfg.Terrain)

	s := engine.NewSession(engine.New(b, cfg.Players), engine.WithLogger(log))
	kings := b.Kings()

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.Int64("board.seed", seed),
		attribute.Int("board.size", cfg.BoardSize),
		attribute.Int("board.players", cfg.Players),
		attribute.Int("board.kings", len(kings)),
	)
	log.Info("game created",
		zap.String("session", s.ID.String()),
		zap.Int64("seed", seed),
		zap.Int("size", cfg.BoardSize),
		zap.Int("players", cfg.Players),
		zap.Int("kings", len(kings)),
	)
	return s
}
