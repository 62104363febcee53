package player

import (
	"time"

	"catalina/game"
)

// First always plays the first playable action.
type First struct {
	options
}

func NewFirst(opts ...Option) *First {
	return &First{options: newOptions("First", opts)}
}

func (p *First) Decide(g game.Game, actions []game.Action) game.Action {
	if len(actions) == 0 {
		return game.Action{}
	}
	return p.record(g, actions, decision{index: 0}, time.Now())
}
