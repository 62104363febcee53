// Package topsis ranks alternatives by their relative closeness to the ideal
// solution (Technique for Order of Preference by Similarity to Ideal Solution).
package topsis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Direction tells whether a criterion is maximised or minimised.
type Direction int

const (
	Benefit Direction = iota
	Cost
)

var (
	ErrEmpty     = errors.New("topsis: empty decision matrix")
	ErrDimension = errors.New("topsis: dimension mismatch")
	ErrWeights   = errors.New("topsis: invalid weights")
	ErrValue     = errors.New("topsis: non-finite value")
)

// Rank returns the closeness coefficient of every alternative (row), between
// 0 and 1, higher is better. Weights are normalised to sum to one. A column
// whose values are all zero contributes nothing, and alternatives that are all
// alike score 0.5 each.
func Rank(rows [][]float64, weights []float64, directions []Direction) ([]float64, error) {
	if len(rows) == 0 || len(weights) == 0 {
		return nil, ErrEmpty
	}
	n, m := len(rows), len(weights)
	if len(directions) != m {
		return nil, fmt.Errorf("%w: %d weights, %d directions", ErrDimension, m, len(directions))
	}

	w, err := normalizeWeights(weights)
	if err != nil {
		return nil, err
	}

	decision := mat.NewDense(n, m, nil)
	for i, row := range rows {
		if len(row) != m {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrDimension, i, len(row), m)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: row %d column %d", ErrValue, i, j)
			}
		}
		decision.SetRow(i, row)
	}

	// Vector normalisation then weighting, column by column
	ideal := make([]float64, m)
	antiIdeal := make([]float64, m)
	col := make([]float64, n)
	for j := 0; j < m; j++ {
		mat.Col(col, j, decision)
		if norm := floats.Norm(col, 2); norm > 0 {
			floats.Scale(w[j]/norm, col)
		} else {
			floats.Scale(0, col)
		}
		decision.SetCol(j, col)

		best, worst := floats.Max(col), floats.Min(col)
		if directions[j] == Cost {
			best, worst = worst, best
		}
		ideal[j], antiIdeal[j] = best, worst
	}

	scores := make([]float64, n)
	for i := 0; i < n; i++ {
		row := decision.RawRowView(i)
		toIdeal := floats.Distance(row, ideal, 2)
		toAntiIdeal := floats.Distance(row, antiIdeal, 2)
		if total := toIdeal + toAntiIdeal; total > 0 {
			scores[i] = toAntiIdeal / total
		} else {
			scores[i] = 0.5
		}
	}
	return scores, nil
}

// Best returns the index of the highest score, the first one on ties, or -1
// when there is nothing to pick from.
func Best(scores []float64) int {
	if len(scores) == 0 {
		return -1
	}
	return floats.MaxIdx(scores)
}

func normalizeWeights(weights []float64) ([]float64, error) {
	sum := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight %d is %v", ErrWeights, i, w)
		}
		sum += w
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: all weights are zero", ErrWeights)
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	floats.Scale(1/sum, w)
	return w, nil
}
