package ui

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/generals/internal/engine"
	"github.com/samdwyer/generals/internal/telemetry"
	"github.com/samdwyer/generals/internal/world"
)

// newTestController builds a 5x5 two-team game with a red king at (1,1)
// and blue territory at (3,3).
func newTestController(t *testing.T) (*Controller, *engine.Session) {
	t.Helper()
	b := world.Empty(5)
	b.Set(1, 1, world.King(0, 5))
	b.Set(3, 3, world.Captured(1, 3))
	s := engine.NewSession(engine.New(b, 2), engine.WithTracer(telemetry.NoopTracer()))
	return NewController(s, DefaultLayout, nil), s
}

func queued(s *engine.Session, team world.Team) int {
	var n int
	s.View(func(g *engine.GameState) { n = g.Player(team).Len() })
	return n
}

func TestSelect(t *testing.T) {
	c, _ := newTestController(t)

	if err := c.Select(world.Pos(3, 3)); !errors.Is(err, ErrNotControlled) {
		t.Errorf("Select(enemy cell) = %v, want ErrNotControlled", err)
	}
	if err := c.Select(world.Pos(9, 9)); !errors.Is(err, engine.ErrOutOfBounds) {
		t.Errorf("Select(off board) = %v, want ErrOutOfBounds", err)
	}
	if _, ok := c.Focus(); ok {
		t.Fatal("failed selections should not set focus")
	}
	if err := c.Select(world.Pos(1, 1)); err != nil {
		t.Fatalf("Select(own king) = %v", err)
	}
	if got, _ := c.Focus(); got != world.Pos(1, 1) {
		t.Errorf("Focus() = %v, want (1,1)", got)
	}
}

func TestPushAdvancesFocus(t *testing.T) {
	c, s := newTestController(t)

	if err := c.Push(world.Right); !errors.Is(err, ErrNoFocus) {
		t.Errorf("Push without focus = %v, want ErrNoFocus", err)
	}
	if err := c.Select(world.Pos(1, 1)); err != nil {
		t.Fatal(err)
	}

	for _, d := range []world.Direction{world.Right, world.Up} {
		if err := c.Push(d); err != nil {
			t.Fatalf("Push(%v) = %v", d, err)
		}
	}
	if got, _ := c.Focus(); got != world.Pos(2, 0) {
		t.Errorf("Focus() = %v, want (2,0)", got)
	}

	// Off the top edge: nothing queued, focus stays.
	if err := c.Push(world.Up); err != nil {
		t.Errorf("Push off board = %v, want nil", err)
	}
	if got, _ := c.Focus(); got != world.Pos(2, 0) {
		t.Errorf("Focus() after edge push = %v, want (2,0)", got)
	}
	if n := queued(s, 0); n != 2 {
		t.Errorf("queued = %d, want 2", n)
	}
}

func TestKeys(t *testing.T) {
	c, s := newTestController(t)
	if err := c.Select(world.Pos(1, 1)); err != nil {
		t.Fatal(err)
	}

	c.HandleKey(tcell.KeyRune, 'd')
	c.HandleKey(tcell.KeyDown, 0)
	if got, _ := c.Focus(); got != world.Pos(2, 2) {
		t.Errorf("Focus() = %v, want (2,2)", got)
	}
	if n := queued(s, 0); n != 2 {
		t.Errorf("queued = %d, want 2", n)
	}

	c.HandleKey(tcell.KeyRune, 'q')
	if n := queued(s, 0); n != 0 {
		t.Errorf("queued after cancel = %d, want 0", n)
	}
	if _, ok := c.Focus(); ok {
		t.Error("cancel should drop the focus")
	}

	c.HandleKey(tcell.KeyRune, 'w')
	if c.Status() != ErrNoFocus.Error() {
		t.Errorf("Status() = %q, want %q", c.Status(), ErrNoFocus.Error())
	}

	if a := c.HandleKey(tcell.KeyEscape, 0); a != ActionQuit {
		t.Errorf("Esc action = %v, want ActionQuit", a)
	}
	if a := c.HandleKey(tcell.KeyCtrlC, 0); a != ActionQuit {
		t.Errorf("Ctrl-C action = %v, want ActionQuit", a)
	}
}

func TestTeamsKeepTheirOwnFocus(t *testing.T) {
	c, s := newTestController(t)
	if err := c.Select(world.Pos(1, 1)); err != nil {
		t.Fatal(err)
	}

	c.HandleKey(tcell.KeyTab, 0)
	if c.Team() != 1 {
		t.Fatalf("Team() = %d, want 1", c.Team())
	}
	if _, ok := c.Focus(); ok {
		t.Error("team 1 should start without focus")
	}

	sx, sy := DefaultLayout.ScreenAt(world.Pos(3, 3))
	c.HandleClick(sx+2, sy)
	if got, ok := c.Focus(); !ok || got != world.Pos(3, 3) {
		t.Fatalf("Focus() after click = %v, %v; want (3,3)", got, ok)
	}
	c.HandleKey(tcell.KeyLeft, 0)
	if n := queued(s, 1); n != 1 {
		t.Errorf("team 1 queued = %d, want 1", n)
	}
	if n := queued(s, 0); n != 0 {
		t.Errorf("team 0 queued = %d, want 0", n)
	}

	c.HandleKey(tcell.KeyTab, 0)
	if got, _ := c.Focus(); c.Team() != 0 || got != world.Pos(1, 1) {
		t.Errorf("back on team %d with focus %v; want team 0 at (1,1)", c.Team(), got)
	}
}

func TestLayout(t *testing.T) {
	l := Layout{OriginX: 2, OriginY: 1, CellWidth: 4}
	for _, p := range []world.Position{world.Pos(0, 0), world.Pos(3, 7)} {
		sx, sy := l.ScreenAt(p)
		for dx := 0; dx < l.CellWidth; dx++ {
			got, ok := l.BoardAt(sx+dx, sy)
			if !ok || got != p {
				t.Errorf("BoardAt(%d,%d) = %v, %v; want %v", sx+dx, sy, got, ok, p)
			}
		}
	}
	if _, ok := l.BoardAt(1, 5); ok {
		t.Error("BoardAt left of the origin should fail")
	}
	if _, ok := l.BoardAt(5, 0); ok {
		t.Error("BoardAt above the origin should fail")
	}
}
