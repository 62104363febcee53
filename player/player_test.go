package player

import (
	"errors"
	"math"
	"slices"
	"testing"

	"catalina/features"
	"catalina/game"
	"catalina/game/gametest"
	"catalina/metrics"

	"github.com/stretchr/testify/require"
)

func midGame() (game.Game, []game.Action) {
	g := game.NewSnapshot(gametest.NewState())
	actions := []game.Action{
		game.NewAction(game.Red, game.EndTurn, nil),
		game.RoadAction(game.Red, 3, 0),
		game.CityAction(game.Red, 5),
		game.NewAction(game.Red, game.BuyDevelopmentCard, nil),
	}
	return g, actions
}

func opening() (game.Game, []game.Action) {
	g := game.NewSnapshot(gametest.NewOpeningState())
	actions := []game.Action{
		game.SettlementAction(game.Red, 4),
		game.SettlementAction(game.Red, 0),
		game.SettlementAction(game.Red, 5),
	}
	return g, actions
}

func TestCatalina(t *testing.T) {
	t.Run("picks the city over the road", func(t *testing.T) {
		g, actions := midGame()
		collector := metrics.NewCollector()
		p := NewCatalina(WithRecorder(collector), WithGameID("g1"))

		got := p.Decide(g, actions)

		require.True(t, got.Equal(actions[2]), "got %s", got)
		decisions := collector.Decisions()
		require.Len(t, decisions, 1)
		d := decisions[0]
		require.Equal(t, "g1", d.Game)
		require.Equal(t, "Catalina", d.Player)
		require.Equal(t, 12, d.Turn)
		require.Equal(t, game.Red, d.Color)
		require.Equal(t, 4, d.Options)
		require.Equal(t, 3, d.Candidates)
		require.InDelta(t, 0.524125, d.Score, 1e-5)
		require.False(t, d.Fallback)
	})

	t.Run("picks the dominating opening settlement", func(t *testing.T) {
		g, actions := opening()

		got := NewCatalina().Decide(g, actions)

		require.True(t, got.Equal(actions[1]), "got %s", got)
	})

	t.Run("decisions are deterministic", func(t *testing.T) {
		g, actions := midGame()
		p := NewCatalina()

		first := p.Decide(g, actions)
		for i := 0; i < 20; i++ {
			require.True(t, first.Equal(p.Decide(g, actions)))
		}
	})

	t.Run("weights change the pick", func(t *testing.T) {
		g, actions := midGame()
		weights := features.Weights{features.Pips: 1, features.Accessibility: 1}

		got := NewCatalina(WithWeights(weights)).Decide(g, actions)

		require.True(t, got.Equal(actions[1]), "got %s", got)
	})

	t.Run("temperature samples only scored candidates", func(t *testing.T) {
		g, actions := opening()
		actions = actions[:2]
		p := NewCatalina(WithTemperature(0.5), WithSeed(7))

		for i := 0; i < 20; i++ {
			got := p.Decide(g, actions)
			require.True(t, got.Equal(actions[1]), "The anti-ideal settlement scores zero, got %s", got)
		}
	})
}

func TestWeighted(t *testing.T) {
	g, actions := midGame()

	got := NewWeighted().Decide(g, actions)

	require.True(t, got.Equal(actions[1]), "got %s", got)
}

func TestRankWeighted(t *testing.T) {
	candidates := []features.Vector{
		{0, 12, 5, 1, 1, 2},
		{1, 2, 1, 0, 0, 5},
		{0.2, 0, 0, 0, 1, 3},
	}

	scores, err := RankWeighted(candidates, features.DefaultWeights)

	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.7, 0.371667, 0.226667}, scores, 1e-5)

	_, err = RankWeighted(candidates, features.Weights{})
	require.Error(t, err)
}

func TestGreedy(t *testing.T) {
	t.Run("picks the most pips", func(t *testing.T) {
		g, actions := midGame()

		got := NewGreedy().Decide(g, actions)

		require.True(t, got.Equal(actions[1]), "got %s", got)
	})

	t.Run("ties break on victory points", func(t *testing.T) {
		scores, err := RankPips([]features.Vector{{0, 5}, {1, 5}}, features.DefaultWeights)

		require.NoError(t, err)
		require.Greater(t, scores[1], scores[0])
	})
}

func TestFallback(t *testing.T) {
	g := game.NewSnapshot(gametest.NewState())
	roll := game.NewAction(game.Red, game.Roll, nil)
	endTurn := game.NewAction(game.Red, game.EndTurn, nil)
	trade := game.NewAction(game.Red, game.MaritimeTrade, []string{"WOOD", "WOOD", "WOOD", "WOOD", "ORE"})

	t.Run("single action is returned as is", func(t *testing.T) {
		got := NewCatalina().Decide(g, []game.Action{trade})
		require.True(t, got.Equal(trade))
	})

	t.Run("no actions", func(t *testing.T) {
		require.Equal(t, game.Action{}, NewCatalina().Decide(g, nil))
		require.Equal(t, game.Action{}, NewFirst().Decide(g, nil))
		require.Equal(t, game.Action{}, NewRandom().Decide(g, nil))
	})

	t.Run("rolling comes first", func(t *testing.T) {
		got := NewCatalina().Decide(g, []game.Action{endTurn, trade, roll})
		require.True(t, got.Equal(roll))
	})

	t.Run("first action by default", func(t *testing.T) {
		got := NewCatalina().Decide(g, []game.Action{endTurn, trade})
		require.True(t, got.Equal(endTurn))
	})

	t.Run("acting preferred over ending the turn", func(t *testing.T) {
		got := NewCatalina(WithPreferActing(true)).Decide(g, []game.Action{endTurn, trade})
		require.True(t, got.Equal(trade))
	})

	t.Run("ranking error", func(t *testing.T) {
		_, actions := midGame()
		collector := metrics.NewCollector()
		failing := func([]features.Vector, features.Weights) ([]float64, error) {
			return nil, errors.New("boom")
		}
		p := NewScorer("Failing", failing, WithRecorder(collector))

		got := p.Decide(g, actions)

		require.True(t, got.Equal(actions[0]))
		require.True(t, collector.Decisions()[0].Fallback)
		require.Equal(t, 3, collector.Decisions()[0].Candidates)
	})

	t.Run("non-finite scores", func(t *testing.T) {
		_, actions := midGame()
		nan := func(c []features.Vector, _ features.Weights) ([]float64, error) {
			scores := make([]float64, len(c))
			scores[1] = math.NaN()
			return scores, nil
		}

		got := NewScorer("NaN", nan, WithPreferActing(true)).Decide(g, actions)

		require.True(t, got.Equal(actions[1]), "First non END_TURN action, got %s", got)
	})

	t.Run("short score vector", func(t *testing.T) {
		_, actions := midGame()
		short := func([]features.Vector, features.Weights) ([]float64, error) {
			return []float64{1}, nil
		}

		got := NewScorer("Short", short).Decide(g, actions)

		require.True(t, got.Equal(actions[0]))
	})
}

func TestRandom(t *testing.T) {
	g, actions := midGame()
	a, b := NewRandom(WithSeed(42)), NewRandom(WithSeed(42))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		got := a.Decide(g, actions)
		require.True(t, got.Equal(b.Decide(g, actions)), "Same seed should give the same sequence")
		seen[got.String()] = true
	}
	require.Greater(t, len(seen), 1)
}

func TestFirst(t *testing.T) {
	g, actions := midGame()
	require.True(t, NewFirst().Decide(g, actions).Equal(actions[0]))
}

func TestOptions(t *testing.T) {
	t.Run("invalid weights are ignored", func(t *testing.T) {
		for _, w := range []features.Weights{
			{},
			{features.Pips: -1, features.Cost: 2},
			{features.Pips: math.Inf(1)},
		} {
			o := newOptions("x", []Option{WithWeights(w)})
			require.Equal(t, features.DefaultWeights, o.weights)
		}
	})

	t.Run("zero seed uses the clock", func(t *testing.T) {
		o := newOptions("x", []Option{WithSeed(0)})
		require.NotZero(t, o.seed)
	})

	t.Run("nil recorder keeps the default", func(t *testing.T) {
		o := newOptions("x", []Option{WithRecorder(nil)})
		require.NotNil(t, o.recorder)
	})
}

func TestRegistry(t *testing.T) {
	t.Run("lists players", func(t *testing.T) {
		require.Subset(t, Names(), []string{"Catalina", "First", "Greedy", "Random", "Weighted"})
		require.IsIncreasing(t, Names())
	})

	t.Run("builds by name", func(t *testing.T) {
		collector := metrics.NewCollector()
		p, err := New(Default, WithRecorder(collector))
		require.NoError(t, err)
		require.IsType(t, &Scorer{}, p)

		g, actions := midGame()
		p.Decide(g, actions)
		require.Equal(t, "Catalina", collector.Decisions()[0].Player)
	})

	t.Run("unknown player", func(t *testing.T) {
		_, err := New("Nobody")
		require.ErrorIs(t, err, ErrUnknownPlayer)
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		require.Panics(t, func() { Register("First", func(...Option) Player { return NewFirst() }) })
	})

	t.Run("custom registration", func(t *testing.T) {
		if !slices.Contains(Names(), "Test-Greedy") {
			Register("Test-Greedy", func(opts ...Option) Player { return NewGreedy(opts...) })
		}
		collector := metrics.NewCollector()

		p, err := New("Test-Greedy", WithRecorder(collector))
		require.NoError(t, err)
		g, actions := midGame()
		p.Decide(g, actions)

		require.Equal(t, "Test-Greedy", collector.Decisions()[0].Player)
	})
}
