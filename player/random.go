package player

import (
	"time"

	"catalina/game"
)

// Random plays a uniformly random playable action.
type Random struct {
	options
	rng *lockedRand
}

func NewRandom(opts ...Option) *Random {
	o := newOptions("Random", opts)
	return &Random{options: o, rng: newLockedRand(o.seed)}
}

func (p *Random) Decide(g game.Game, actions []game.Action) game.Action {
	if len(actions) == 0 {
		return game.Action{}
	}
	start := time.Now()
	return p.record(g, actions, decision{index: p.rng.Intn(len(actions))}, start)
}
