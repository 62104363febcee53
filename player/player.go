// Package player holds the decision procedures a host game engine calls once
// per decision point, and the registry the host looks them up in by name.
package player

import (
	"math"
	"sync"
	"time"

	"catalina/features"
	"catalina/game"
	"catalina/metrics"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Player picks one of the playable actions. Implementations never fail: when
// they cannot tell the actions apart they fall back to a legal default.
type Player interface {
	Decide(g game.Game, actions []game.Action) game.Action
}

type Option func(o *options)

type options struct {
	name         string
	gameID       string
	weights      features.Weights
	seed         uint64
	temperature  float64
	preferActing bool
	recorder     metrics.Recorder
}

// WithWeights replaces the criterion weights. Weights with a negative or
// non-finite entry, or that are all zero, are ignored.
func WithWeights(weights features.Weights) Option {
	return func(o *options) {
		sum := 0.0
		for _, w := range weights {
			if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				return
			}
			sum += w
		}
		if sum > 0 {
			o.weights = weights
		}
	}
}

// WithSeed fixes the random source. Zero seeds from the clock.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		if seed != 0 {
			o.seed = seed
		}
	}
}

// WithTemperature makes a scoring player sample among candidates in
// proportion to score^(1/temperature) instead of always taking the best.
func WithTemperature(temperature float64) Option {
	return func(o *options) {
		if temperature > 0 {
			o.temperature = temperature
		}
	}
}

func WithRecorder(recorder metrics.Recorder) Option {
	return func(o *options) {
		if recorder != nil {
			o.recorder = recorder
		}
	}
}

func WithGameID(id string) Option {
	return func(o *options) {
		o.gameID = id
	}
}

// WithPreferActing makes the fallback skip END_TURN when another action is
// available.
func WithPreferActing(prefer bool) Option {
	return func(o *options) {
		o.preferActing = prefer
	}
}

func withName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

func newOptions(name string, opts []Option) options {
	o := options{ // Default values
		name:     name,
		weights:  features.DefaultWeights,
		recorder: metrics.NewDummyRecorder(),
	}
	for _, option := range opts {
		option(&o)
	}
	if o.seed == 0 {
		o.seed = uint64(time.Now().UnixNano())
	}
	return o
}

// lockedRand is a seeded source shared by the calls of one player.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedRand(seed uint64) *lockedRand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// decision is what a player reports about one call of Decide.
type decision struct {
	index      int
	score      float64
	candidates int
	fallback   bool
}

func (o *options) record(g game.Game, actions []game.Action, d decision, start time.Time) game.Action {
	chosen := actions[d.index]
	metric := metrics.DecisionMetric{
		Game:       o.gameID,
		Player:     o.name,
		Color:      chosen.Color,
		Candidates: d.candidates,
		Options:    len(actions),
		Chosen:     chosen,
		Score:      d.score,
		Fallback:   d.fallback,
		Duration:   time.Since(start),
	}
	if state := g.State(); state != nil {
		metric.Turn = state.Turn
	}
	o.recorder.Record(metric)

	log.Debug().
		Str("player", o.name).
		Str("game", o.gameID).
		Stringer("action", chosen).
		Float64("score", d.score).
		Bool("fallback", d.fallback).
		Msg("decided")
	return chosen
}
