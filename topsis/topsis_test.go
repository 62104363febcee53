package topsis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	t.Run("ranking a single benefit criterion", func(t *testing.T) {
		got, err := Rank([][]float64{{1}, {3}}, []float64{1}, []Direction{Benefit})

		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{0, 1}, got, 1e-9, "Higher value should sit on the ideal")
	})

	t.Run("ranking a single cost criterion", func(t *testing.T) {
		got, err := Rank([][]float64{{1}, {3}}, []float64{1}, []Direction{Cost})

		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{1, 0}, got, 1e-9, "Lower value should sit on the ideal")
	})

	t.Run("ranking mixed criteria", func(t *testing.T) {
		// price (cost), storage, camera, looks
		rows := [][]float64{
			{250, 16, 12, 5},
			{200, 16, 8, 3},
			{300, 32, 16, 4},
			{275, 32, 8, 4},
			{225, 16, 16, 2},
		}
		weights := []float64{1, 1, 1, 1}
		directions := []Direction{Cost, Benefit, Benefit, Benefit}

		got, err := Rank(rows, weights, directions)

		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{0.534277, 0.308368, 0.691632, 0.534737, 0.401046}, got, 1e-5)
		require.Equal(t, 2, Best(got))
	})

	t.Run("dominating alternative scores one", func(t *testing.T) {
		rows := [][]float64{{1, 12, 6, 3, 0, 0}, {1, 5, 2, 1, 0, 0}}
		weights := []float64{0.3, 0.25, 0.15, 0.1, 0.1, 0.1}
		directions := []Direction{Benefit, Benefit, Benefit, Benefit, Benefit, Cost}

		got, err := Rank(rows, weights, directions)

		require.NoError(t, err)
		require.InDelta(t, 1.0, got[0], 1e-9)
		require.InDelta(t, 0.0, got[1], 1e-9)
	})

	t.Run("identical alternatives tie at one half", func(t *testing.T) {
		got, err := Rank([][]float64{{2, 4}, {2, 4}, {2, 4}}, []float64{1, 1}, []Direction{Benefit, Cost})

		require.NoError(t, err)
		require.Equal(t, []float64{0.5, 0.5, 0.5}, got)
		require.Equal(t, 0, Best(got), "Ties should resolve to the first alternative")
	})

	t.Run("zero column is ignored", func(t *testing.T) {
		got, err := Rank([][]float64{{0, 1}, {0, 3}}, []float64{1, 1}, []Direction{Benefit, Benefit})

		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{0, 1}, got, 1e-9)
	})

	t.Run("weights are scale free", func(t *testing.T) {
		rows := [][]float64{{1, 5}, {4, 2}, {3, 3}}
		directions := []Direction{Benefit, Benefit}

		a, err := Rank(rows, []float64{1, 3}, directions)
		require.NoError(t, err)
		b, err := Rank(rows, []float64{10, 30}, directions)
		require.NoError(t, err)

		require.InDeltaSlice(t, a, b, 1e-12)
	})

	t.Run("ranking is deterministic", func(t *testing.T) {
		rows := [][]float64{{0, 12, 5, 1, 1, 2}, {1, 2, 1, 0, 0, 5}, {0.2, 0, 0, 0, 1, 3}}
		weights := []float64{0.3, 0.25, 0.15, 0.1, 0.1, 0.1}
		directions := []Direction{Benefit, Benefit, Benefit, Benefit, Benefit, Cost}

		first, err := Rank(rows, weights, directions)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := Rank(rows, weights, directions)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
		require.InDeltaSlice(t, []float64{0.517832, 0.524125, 0.202211}, first, 1e-5)
		require.Equal(t, 1, Best(first))
	})
}

func TestRankErrors(t *testing.T) {
	benefit := []Direction{Benefit}

	_, err := Rank(nil, []float64{1}, benefit)
	require.ErrorIs(t, err, ErrEmpty)

	_, err = Rank([][]float64{{1}}, nil, nil)
	require.ErrorIs(t, err, ErrEmpty)

	_, err = Rank([][]float64{{1, 2}}, []float64{1}, benefit)
	require.ErrorIs(t, err, ErrDimension)

	_, err = Rank([][]float64{{1}}, []float64{1}, []Direction{Benefit, Cost})
	require.ErrorIs(t, err, ErrDimension)

	_, err = Rank([][]float64{{1}}, []float64{-1}, benefit)
	require.ErrorIs(t, err, ErrWeights)

	_, err = Rank([][]float64{{1}}, []float64{0}, benefit)
	require.ErrorIs(t, err, ErrWeights)

	nan := 0.0
	nan /= nan
	_, err = Rank([][]float64{{nan}}, []float64{1}, benefit)
	require.ErrorIs(t, err, ErrValue)
}

func TestBest(t *testing.T) {
	require.Equal(t, -1, Best(nil))
	require.Equal(t, 1, Best([]float64{0.2, 0.9, 0.9}))
}
