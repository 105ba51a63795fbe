package scenario

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/samdwyer/generals/internal/engine"
	"github.com/samdwyer/generals/internal/telemetry"
	"github.com/samdwyer/generals/internal/world"
)

const captureAndRegicide = `
name: capture and regicide
size: 8
players: 2
ticks: 1
cells:
  - {x: 4, y: 5, kind: captured, owner: 0, units: 11}
  - {x: 1, y: 2, kind: king, owner: 0, units: 3}
  - {x: 0, y: 2, kind: captured, owner: 1, units: 11}
moves:
  0:
    - {x: 4, y: 5, dir: right}
  1:
    - {x: 0, y: 2, dir: r}
`

func run(t *testing.T, src string) *Result {
	t.Helper()
	sc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	res, err := Run(context.Background(), sc, engine.WithTracer(telemetry.NoopTracer()))
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	return res
}

func TestRunCaptureAndRegicide(t *testing.T) {
	res := run(t, captureAndRegicide)

	if res.Ticks != 1 {
		t.Errorf("Ticks = %d, want 1", res.Ticks)
	}
	if got, want := res.Board[5], ". . . . C0:1 C0:10 . ."; got != want {
		t.Errorf("row 5 = %q, want %q", got, want)
	}
	if got, want := res.Board[2], "C1:1 F1:8 . . . . . ."; got != want {
		t.Errorf("row 2 = %q, want %q", got, want)
	}

	a, b := res.Teams[0], res.Teams[1]
	if !a.Dead || a.King != nil {
		t.Errorf("team 0 = %+v, want dead without a king", a)
	}
	if a.Cells != 2 || a.Units != 11 {
		t.Errorf("team 0 holds %d cells, %d units; want 2, 11", a.Cells, a.Units)
	}
	if b.Dead || b.Cells != 2 || b.Units != 9 {
		t.Errorf("team 1 = %+v", b)
	}

	if len(res.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(res.Events))
	}
	if res.Events[0].Kind != "captured" || res.Events[1].Kind != "king_fell" {
		t.Errorf("event kinds = %q, %q", res.Events[0].Kind, res.Events[1].Kind)
	}
	if res.Events[1].From != "(0,2)" || res.Events[1].To != "(1,2)" || res.Events[1].Units != 10 {
		t.Errorf("regicide event = %+v", res.Events[1])
	}
}

func TestRunSingleMoves(t *testing.T) {
	tests := []struct {
		name   string
		cells  string
		move   string
		row    int
		want   string
		queued int
	}{
		{
			name:  "stronger attacker takes captured cell",
			cells: "{x: 0, y: 0, kind: captured, owner: 0, units: 11}\n  - {x: 1, y: 0, kind: captured, owner: 1, units: 8}",
			move:  "{x: 0, y: 0, dir: right}",
			want:  "C0:1 C0:2 . .",
		},
		{
			name:  "weaker attacker is repelled",
			cells: "{x: 0, y: 0, kind: captured, owner: 0, units: 6}\n  - {x: 1, y: 0, kind: captured, owner: 1, units: 8}",
			move:  "{x: 0, y: 0, dir: right}",
			want:  "C0:1 C1:3 . .",
		},
		{
			name:  "single unit source clears the queue",
			cells: "{x: 0, y: 0, kind: captured, owner: 0, units: 1}",
			move:  "{x: 0, y: 0, path: rrd}",
			want:  "C0:1 . . .",
		},
		{
			name:  "mountain returns units and clears the queue",
			cells: "{x: 0, y: 0, kind: captured, owner: 0, units: 5}\n  - {x: 0, y: 1, kind: mountain}",
			move:  "{x: 0, y: 0, path: ddr}",
			want:  "C0:5 . . .",
		},
		{
			name:   "path keeps its remaining steps",
			cells:  "{x: 0, y: 0, kind: captured, owner: 0, units: 5}",
			move:   "{x: 0, y: 0, path: rrr}",
			want:   "C0:1 C0:4 . .",
			queued: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "size: 4\nplayers: 2\nticks: 1\ncells:\n  - " + tt.cells +
				"\nmoves:\n  0:\n    - " + tt.move + "\n"
			res := run(t, src)
			if got := res.Board[tt.row]; got != tt.want {
				t.Errorf("row %d = %q, want %q", tt.row, got, tt.want)
			}
			if res.Teams[0].Queued != tt.queued {
				t.Errorf("queued = %d, want %d", res.Teams[0].Queued, tt.queued)
			}
		})
	}
}

func TestRunFollowsPath(t *testing.T) {
	res := run(t, `
size: 5
players: 1
ticks: 3
cells:
  - {x: 1, y: 1, kind: captured, owner: 0, units: 20}
moves:
  0:
    - {x: 1, y: 1, path: rrd}
`)
	want := []string{
		". . . . .",
		". C0:1 C0:1 C0:1 .",
		". . . C0:17 .",
	}
	for y, row := range want {
		if res.Board[y] != row {
			t.Errorf("row %d = %q, want %q", y, res.Board[y], row)
		}
	}
	if res.Teams[0].Units != 20 {
		t.Errorf("units = %d, want 20 (no growth on captured cells before tick 32)", res.Teams[0].Units)
	}
}

func TestRunGeneratedIsReproducible(t *testing.T) {
	src := `
size: 16
players: 3
ticks: 10
generate: true
seed: 42
`
	first, second := run(t, src), run(t, src)
	if first.Fingerprint != second.Fingerprint {
		t.Errorf("fingerprints differ: %s vs %s", first.Fingerprint, second.Fingerprint)
	}

	other := run(t, strings.Replace(src, "seed: 42", "seed: 43", 1))
	if other.Fingerprint == first.Fingerprint {
		t.Error("different seeds produced the same board")
	}
	if len(first.Teams) != 3 {
		t.Errorf("got %d team results, want 3", len(first.Teams))
	}
}

func TestRunRejectsMoveOffBoard(t *testing.T) {
	sc, err := Parse([]byte(`
size: 3
players: 1
moves:
  0:
    - {x: 2, y: 0, path: rr}
`))
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	_, err = Run(context.Background(), sc, engine.WithTracer(telemetry.NoopTracer()))
	if !errors.Is(err, engine.ErrOutOfBounds) {
		t.Errorf("Run() error = %v, want ErrOutOfBounds", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown field", "size: 4\nplayers: 1\nspeed: 2\n", "speed"},
		{"no players", "size: 4\n", "players must be positive"},
		{"unknown kind", "size: 4\nplayers: 1\ncells:\n  - {x: 0, y: 0, kind: lava}\n", "unknown cell kind"},
		{"ownerless king", "size: 4\nplayers: 1\ncells:\n  - {x: 0, y: 0, kind: king, units: 1}\n", "needs an owner"},
		{"owner out of range", "size: 4\nplayers: 1\ncells:\n  - {x: 0, y: 0, kind: captured, owner: 3}\n", "not a team"},
		{"cell off board", "size: 4\nplayers: 1\ncells:\n  - {x: 4, y: 0, kind: open}\n", "off the board"},
		{"moves for missing team", "size: 4\nplayers: 1\nmoves:\n  2:\n    - {x: 0, y: 0, dir: up}\n", "unknown team 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	moves, err := MoveSpec{X: 1, Y: 1, Path: "rdl"}.expand()
	if err != nil {
		t.Fatal(err)
	}
	want := []engine.Move{
		{From: world.Pos(1, 1), Dir: world.Right},
		{From: world.Pos(2, 1), Dir: world.Down},
		{From: world.Pos(2, 2), Dir: world.Left},
	}
	if len(moves) != len(want) {
		t.Fatalf("got %d moves, want %d", len(moves), len(want))
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("moves[%d] = %v, want %v", i, moves[i], want[i])
		}
	}

	if _, err := (MoveSpec{Dir: "up", Path: "u"}).expand(); err == nil {
		t.Error("dir with path should fail")
	}
	if _, err := (MoveSpec{Path: "rx"}).expand(); err == nil {
		t.Error("bad path letter should fail")
	}
}

func TestToken(t *testing.T) {
	tests := []struct {
		cell world.Cell
		want string
	}{
		{world.Open(), "."},
		{world.Mountain(), "#"},
		{world.NeutralFortress(40), "F-:40"},
		{world.Fortress(1, 8), "F1:8"},
		{world.King(0, 3), "K0:3"},
		{world.Captured(2, 10), "C2:10"},
	}
	for _, tt := range tests {
		if got := Token(tt.cell); got != tt.want {
			t.Errorf("Token(%v) = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestExampleScenario(t *testing.T) {
	sc, err := LoadFile("../../scenarios/regicide.yaml")
	if err != nil {
		t.Fatalf("LoadFile() = %v", err)
	}
	res, err := Run(context.Background(), sc, engine.WithTracer(telemetry.NoopTracer()))
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if !res.Teams[0].Dead || res.Teams[1].Dead {
		t.Errorf("dead = %v, %v; want red dead, blue alive", res.Teams[0].Dead, res.Teams[1].Dead)
	}
	if got := Token(world.Fortress(1, 25)); !strings.Contains(res.Board[1], got) {
		t.Errorf("row 1 = %q, want Red's old king held as %s", res.Board[1], got)
	}
	if got := res.Board[4]; got != ". . C0:1 C0:11 # . . ." {
		t.Errorf("row 4 = %q, want the march stopped at the mountain", got)
	}
}
