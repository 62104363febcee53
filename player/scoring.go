package player

import (
	"errors"
	"math"
	"time"

	"catalina/features"
	"catalina/game"
	"catalina/topsis"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// RankFunc scores candidate feature vectors, one score per vector, higher is
// better.
type RankFunc func(candidates []features.Vector, weights features.Weights) ([]float64, error)

var errNonFinite = errors.New("non-finite score")

// Scorer extracts the features of every build or buy action, ranks them and
// plays the best one.
type Scorer struct {
	options
	rank RankFunc
	rng  *lockedRand
}

func NewScorer(name string, rank RankFunc, opts ...Option) *Scorer {
	o := newOptions(name, opts)
	return &Scorer{options: o, rank: rank, rng: newLockedRand(o.seed)}
}

// NewCatalina ranks candidates by TOPSIS closeness to the ideal action.
func NewCatalina(opts ...Option) *Scorer {
	return NewScorer("Catalina", RankTOPSIS, opts...)
}

// NewWeighted ranks candidates by simple additive weighting.
func NewWeighted(opts ...Option) *Scorer {
	return NewScorer("Weighted", RankWeighted, opts...)
}

// NewGreedy plays the candidate reaching the most pips.
func NewGreedy(opts ...Option) *Scorer {
	return NewScorer("Greedy", RankPips, opts...)
}

func (p *Scorer) Decide(g game.Game, actions []game.Action) game.Action {
	if len(actions) == 0 {
		return game.Action{}
	}
	start := time.Now()
	return p.record(g, actions, p.decide(g, actions), start)
}

func (p *Scorer) decide(g game.Game, actions []game.Action) decision {
	if len(actions) == 1 {
		return decision{index: 0}
	}

	var indices []int
	var candidates []features.Vector
	for i, a := range actions {
		if v, ok := features.Extract(g, a); ok {
			indices = append(indices, i)
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return decision{index: fallback(actions, p.preferActing), fallback: true}
	}

	scores, err := p.rank(candidates, p.weights)
	if err == nil && len(scores) != len(candidates) {
		err = topsis.ErrDimension
	}
	if err == nil {
		for _, s := range scores {
			if math.IsNaN(s) || math.IsInf(s, 0) {
				err = errNonFinite
				break
			}
		}
	}
	if err != nil {
		log.Warn().Err(err).Str("player", p.name).Int("candidates", len(candidates)).Msg("ranking failed, falling back")
		return decision{index: fallback(actions, p.preferActing), candidates: len(candidates), fallback: true}
	}

	best := p.pick(scores)
	return decision{index: indices[best], score: scores[best], candidates: len(candidates)}
}

// pick takes the best score, or samples by adjusted score when a temperature
// is set.
func (p *Scorer) pick(scores []float64) int {
	if p.temperature <= 0 {
		return topsis.Best(scores)
	}
	exponent := 1.0 / p.temperature
	weights := make([]float64, len(scores))
	for i, s := range scores {
		weights[i] = math.Pow(math.Max(s, 0), exponent)
	}
	sum := floats.Sum(weights)
	if sum <= 0 || math.IsInf(sum, 0) {
		return topsis.Best(scores)
	}
	sampled := p.rng.Float64() * sum
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if sampled < cumulative {
			return i
		}
	}
	return topsis.Best(scores) // Rounding
}

func RankTOPSIS(candidates []features.Vector, weights features.Weights) ([]float64, error) {
	directions := make([]topsis.Direction, features.NumCriteria)
	for c := features.Criterion(0); c < features.NumCriteria; c++ {
		if c.IsCost() {
			directions[c] = topsis.Cost
		}
	}
	return topsis.Rank(matrix(candidates), weights[:], directions)
}

// RankWeighted min-max normalises every criterion over the candidates, cost
// criteria reversed, and sums the weighted columns. A criterion on which all
// candidates agree adds nothing.
func RankWeighted(candidates []features.Vector, weights features.Weights) ([]float64, error) {
	total := floats.Sum(weights[:])
	if total <= 0 {
		return nil, topsis.ErrWeights
	}
	scores := make([]float64, len(candidates))
	col := make([]float64, len(candidates))
	for c := features.Criterion(0); c < features.NumCriteria; c++ {
		for i, v := range candidates {
			col[i] = v[c]
		}
		lo, hi := floats.Min(col), floats.Max(col)
		if hi == lo {
			continue
		}
		for i, x := range col {
			norm := (x - lo) / (hi - lo)
			if c.IsCost() {
				norm = 1 - norm
			}
			scores[i] += weights[c] / total * norm
		}
	}
	return scores, nil
}

// RankPips scores by pips, breaking ties on victory points.
func RankPips(candidates []features.Vector, _ features.Weights) ([]float64, error) {
	scores := make([]float64, len(candidates))
	for i, v := range candidates {
		scores[i] = v[features.Pips] + 1e-3*v[features.VictoryPoints]
	}
	return scores, nil
}

func matrix(candidates []features.Vector) [][]float64 {
	rows := make([][]float64, len(candidates))
	for i := range candidates {
		rows[i] = candidates[i][:]
	}
	return rows
}
