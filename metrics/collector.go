package metrics

import (
	"slices"
	"sync"
	"time"

	"catalina/game"
)

// DecisionMetric records one call of a player's decision procedure.
type DecisionMetric struct {
	Game       string
	Turn       int
	Player     string // Registered player name
	Color      game.Color
	Candidates int // Scored actions, zero when the player does not score
	Options    int // Playable actions offered by the host
	Chosen     game.Action
	Score      float64
	Fallback   bool
	Duration   time.Duration
}

type Recorder interface {
	Record(m DecisionMetric)
}

// Collector keeps every decision in memory. It is safe for concurrent use.
type Collector struct {
	mu        sync.Mutex
	decisions []DecisionMetric
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Record(m DecisionMetric) {
	c.mu.Lock()
	c.decisions = append(c.decisions, m)
	c.mu.Unlock()
}

// Decisions returns a copy of the recorded decisions in arrival order.
func (c *Collector) Decisions() []DecisionMetric {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.decisions)
}

func (c *Collector) Summary() Summary {
	// Every count comes from one snapshot so they agree with each other
	decisions := c.Decisions()
	s := Summary{
		Decisions: len(decisions),
		ByAction:  make(map[game.ActionType]int),
		ByPlayer:  make(map[string]int),
	}
	var elapsed time.Duration
	for _, d := range decisions {
		if d.Fallback {
			s.Fallbacks++
		}
		s.ByAction[d.Chosen.Type]++
		s.ByPlayer[d.Player]++
		elapsed += d.Duration
	}
	if len(decisions) > 0 {
		s.MeanDuration = elapsed / time.Duration(len(decisions))
	}
	return s
}

// Summary aggregates the decisions of a collector.
type Summary struct {
	Decisions    int                     `json:"decisions"`
	Fallbacks    int                     `json:"fallbacks"`
	ByAction     map[game.ActionType]int `json:"by_action"`
	ByPlayer     map[string]int          `json:"by_player"`
	MeanDuration time.Duration           `json:"mean_duration_ns"`
}

type dummyRecorder struct{}

func NewDummyRecorder() Recorder {
	return &dummyRecorder{}
}

func (r *dummyRecorder) Record(m DecisionMetric) {}
