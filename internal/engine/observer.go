package engine

import (
	"go.uber.org/zap"

	"github.com/samdwyer/generals/internal/world"
)

// Observer reacts to tick reports outside the resolution state machine.
// It marks a team dead once its last king cell is gone.
type Observer struct {
	log *zap.Logger
}

// NewObserver creates an observer. A nil logger discards output.
func NewObserver(log *zap.Logger) *Observer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Observer{log: log}
}

// Apply inspects r and returns the teams newly marked dead.
func (o *Observer) Apply(g *GameState, r Report) []world.Team {
	fallen := r.KingsFallen()
	if len(fallen) == 0 {
		return nil
	}

	kings := g.board.Kings()
	var eliminated []world.Team
	for _, e := range fallen {
		if !g.HasPlayer(e.Defender) {
			continue
		}
		p := g.players[e.Defender]
		if p.Dead {
			continue
		}
		if _, ok := kings[e.Defender]; ok {
			continue
		}
		p.Dead = true
		eliminated = append(eliminated, e.Defender)
		o.log.Info("player eliminated",
			zap.Int("tick", r.Tick),
			zap.Int("team", int(e.Defender)),
			zap.Int("by", int(e.Team)),
		)
	}
	return eliminated
}
