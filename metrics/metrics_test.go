package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"catalina/game"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("records concurrently", func(t *testing.T) {
		c := NewCollector()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				c.Record(DecisionMetric{Turn: i, Player: "Catalina", Fallback: i%5 == 0})
			}(i)
		}
		wg.Wait()

		require.Len(t, c.Decisions(), 50)
		s := c.Summary()
		require.Equal(t, 50, s.Decisions)
		require.Equal(t, 10, s.Fallbacks)
		require.Equal(t, 50, s.ByPlayer["Catalina"])
	})

	t.Run("summary counts agree while recording", func(t *testing.T) {
		c := NewCollector()
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 200; j++ {
					c.Record(DecisionMetric{Player: "Catalina", Chosen: game.NewAction(game.Red, game.Roll, nil), Fallback: j%2 == 0})
				}
			}()
		}

		for i := 0; i < 50; i++ {
			s := c.Summary()
			require.Equal(t, s.Decisions, s.ByPlayer["Catalina"])
			require.Equal(t, s.Decisions, s.ByAction[game.Roll])
			require.LessOrEqual(t, s.Fallbacks, s.Decisions)
		}
		wg.Wait()

		require.Equal(t, 800, c.Summary().Decisions)
		require.Equal(t, 400, c.Summary().Fallbacks)
	})

	t.Run("summarises by action", func(t *testing.T) {
		c := NewCollector()
		c.Record(DecisionMetric{Player: "Catalina", Chosen: game.CityAction(game.Red, 5), Duration: time.Millisecond})
		c.Record(DecisionMetric{Player: "Catalina", Chosen: game.CityAction(game.Red, 6), Duration: 3 * time.Millisecond})
		c.Record(DecisionMetric{Player: "Random", Chosen: game.NewAction(game.Blue, game.Roll, nil), Duration: 2 * time.Millisecond})

		s := c.Summary()

		require.Equal(t, 2, s.ByAction[game.BuildCity])
		require.Equal(t, 1, s.ByAction[game.Roll])
		require.Equal(t, 1, s.ByPlayer["Random"])
		require.Equal(t, 2*time.Millisecond, s.MeanDuration)
	})

	t.Run("decisions are a copy", func(t *testing.T) {
		c := NewCollector()
		c.Record(DecisionMetric{Turn: 1})

		got := c.Decisions()
		got[0].Turn = 99

		require.Equal(t, 1, c.Decisions()[0].Turn)
	})

	t.Run("empty summary", func(t *testing.T) {
		s := NewCollector().Summary()
		require.Zero(t, s.Decisions)
		require.Zero(t, s.MeanDuration)
	})
}

func TestWriter(t *testing.T) {
	c := NewCollector()
	c.Record(DecisionMetric{
		Game:       "g1",
		Turn:       12,
		Player:     "Catalina",
		Color:      game.Red,
		Options:    4,
		Candidates: 3,
		Chosen:     game.CityAction(game.Red, 5),
		Score:      0.524125,
		Duration:   time.Millisecond,
	})

	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Flush(c))

	f, err := os.Open(filepath.Join(w.Dir(), "decisions.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "action", rows[0][6])
	require.Equal(t, []string{"g1", "12", "Catalina", "RED", "4", "3", "RED BUILD_CITY 5", "0.524125", "false", "1ms"}, rows[1])

	data, err := os.ReadFile(filepath.Join(w.Dir(), "summary.json"))
	require.NoError(t, err)
	var summary Summary
	require.NoError(t, json.Unmarshal(data, &summary))
	require.Equal(t, 1, summary.Decisions)
	require.Equal(t, 1, summary.ByAction[game.BuildCity])
}
