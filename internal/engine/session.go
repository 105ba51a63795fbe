package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/generals/internal/telemetry"
	"github.com/samdwyer/generals/internal/world"
)

var (
	// ErrUnknownTeam is returned for a team index outside the game.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrOutOfBounds is returned for a move whose source or target is off the board.
	ErrOutOfBounds = errors.New("move leaves the board")
)

// Session guards a GameState for callers on different goroutines: the
// input layer queues moves while a scheduler ticks. A tick is atomic with
// respect to every other Session method.
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	state    *GameState
	observer *Observer
	tracer   trace.Tracer
	log      *zap.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// WithTracer sets the tracer used for tick spans.
func WithTracer(t trace.Tracer) SessionOption {
	return func(s *Session) { s.tracer = t }
}

// NewSession wraps state. The session owns state from here on.
func NewSession(state *GameState, opts ...SessionOption) *Session {
	s := &Session{
		ID:     uuid.New(),
		state:  state,
		tracer: telemetry.Tracer("engine"),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("session", s.ID.String()))
	s.observer = NewObserver(s.log)
	return s
}

// Enqueue appends m to the back of team's queue. Both ends of the move
// must be on the board; whether the source still holds an army is decided
// when the move is resolved.
func (s *Session) Enqueue(team world.Team, m Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.HasPlayer(team) {
		return fmt.Errorf("enqueue for team %d: %w", team, ErrUnknownTeam)
	}
	b := s.state.board
	to := m.To()
	if !b.InBounds(m.From.X, m.From.Y) || !b.InBounds(to.X, to.Y) {
		return fmt.Errorf("enqueue %v: %w", m, ErrOutOfBounds)
	}
	s.state.players[team].Push(m)
	return nil
}

// Cancel discards every move team has queued.
func (s *Session) Cancel(team world.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.HasPlayer(team) {
		return fmt.Errorf("cancel for team %d: %w", team, ErrUnknownTeam)
	}
	s.state.players[team].Clear()
	return nil
}

// Tick runs one simulation step and applies the observer bookkeeping.
func (s *Session) Tick(ctx context.Context) Report {
	_, span := s.tracer.Start(ctx, "session.tick")
	defer span.End()

	s.mu.Lock()
	r := s.state.Tick()
	eliminated := s.observer.Apply(s.state, r)
	s.mu.Unlock()

	for _, e := range r.Events {
		fields := []zap.Field{
			zap.Int("tick", e.Tick),
			zap.Int("team", int(e.Team)),
			zap.Stringer("from", e.From),
			zap.Stringer("to", e.To),
			zap.Int("units", e.Units),
		}
		if e.Kind == EventKingFell {
			s.log.Info("king fell", append(fields, zap.Int("defender", int(e.Defender)))...)
			continue
		}
		s.log.Debug("move resolved", append(fields, zap.Stringer("outcome", e.Kind))...)
	}

	span.SetAttributes(
		attribute.Int("tick.number", r.Tick),
		attribute.Int("tick.moves", len(r.Events)),
		attribute.Bool("tick.fast_growth", r.FastGrowth),
		attribute.Bool("tick.slow_growth", r.SlowGrowth),
		attribute.Int("tick.eliminated", len(eliminated)),
	)
	return r
}

// View calls fn with the game state while holding the session lock. fn
// must not retain the state or call back into the session.
func (s *Session) View(fn func(g *GameState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}
