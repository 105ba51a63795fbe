package game

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/generals/internal/config"
	"github.com/samdwyer/generals/internal/engine"
	"github.com/samdwyer/generals/internal/gamedata"
	"github.com/samdwyer/generals/internal/ui"
	"github.com/samdwyer/generals/internal/world"
)

// Game holds the terminal, the session and the tick clock.
type Game struct {
	log        *zap.Logger
	screen     *ui.Screen
	renderer   *ui.Renderer
	controller *ui.Controller
	session    *engine.Session
	clock      *engine.Clock
	frame      time.Duration
	state      State
}

// New creates a game from cfg and takes over the terminal.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Game, error) {
	palette, err := gamedata.LoadPalette()
	if err != nil {
		return nil, err
	}
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	session := NewSession(ctx, cfg, log)
	return &Game{
		log:        log,
		screen:     screen,
		renderer:   ui.NewRenderer(screen, palette, ui.DefaultLayout),
		controller: ui.NewController(session, ui.DefaultLayout, log),
		session:    session,
		clock:      engine.NewClock(cfg.TickInterval),
		frame:      time.Second / time.Duration(cfg.FrameRate),
		state:      StatePlaying,
	}, nil
}

// Run executes the main game loop until the player quits or ctx is done.
// Input is read on its own goroutine; ticks and redraws happen on every
// frame.
func (g *Game) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	events := g.pollEvents(done)

	ticker := time.NewTicker(g.frame)
	defer ticker.Stop()
	last := time.Now()

	g.render()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, resize := ev.(*tcell.EventResize); resize {
				g.screen.Sync()
				continue
			}
			if g.controller.HandleEvent(ev) == ui.ActionQuit {
				return nil
			}
			g.render()

		case now := <-ticker.C:
			g.advance(ctx, now.Sub(last))
			last = now
			g.render()
		}
	}
}

// pollEvents forwards terminal events until the screen is closed or done
// is closed.
func (g *Game) pollEvents(done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event)
	go func() {
		defer close(events)
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

// advance runs every tick that fell due during dt and returns how many ran.
func (g *Game) advance(ctx context.Context, dt time.Duration) int {
	if g.state == StateOver {
		return 0
	}
	n := g.clock.Advance(dt)
	for i := 0; i < n; i++ {
		g.session.Tick(ctx)
	}
	if n == 0 {
		return 0
	}

	var (
		state  State
		winner world.Team
		tick   int
	)
	g.session.View(func(gs *engine.GameState) {
		state, winner = phase(gs)
		tick = gs.TickNumber()
	})
	if state == StateOver {
		g.state = state
		g.log.Info("game over", zap.Int("tick", tick), zap.Int("winner", int(winner)))
	}
	return n
}

func (g *Game) render() {
	g.renderer.Render(g.session, g.controller)
}

// Close restores the terminal.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
