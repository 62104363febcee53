// Package experiments replays saved decision requests against several
// players to compare them with a baseline.
package experiments

import (
	"fmt"
	"time"

	"catalina/bridge"
	"catalina/metrics"
	"catalina/player"

	"github.com/rs/zerolog/log"
)

// Result is how one player fared over all requests.
type Result struct {
	Player    string
	Decisions int
	Agreement int // Decisions matching the baseline's
	Fallbacks int
	Mean      time.Duration
}

func (r Result) AgreementRate() float64 {
	if r.Decisions == 0 {
		return 0
	}
	return float64(r.Agreement) / float64(r.Decisions)
}

// Compare decides every request rounds times with each named player and
// counts how often it agrees with the baseline's first decision on that
// request. Every decision is also reported to the collector.
func Compare(requests []bridge.DecideRequest, names []string, baseline string, rounds int, collector *metrics.Collector, opts ...player.Option) ([]Result, error) {
	if rounds <= 0 {
		rounds = 1
	}

	log.Info().Msgf("starting comparison of %d players on %d requests...", len(names), len(requests))

	reference := make([]int, len(requests))
	for i, req := range requests {
		p, err := player.New(baseline, opts...)
		if err != nil {
			return nil, err
		}
		resp, err := bridge.Decide(p, req)
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		reference[i] = resp.Index
	}

	results := make([]Result, 0, len(names))
	for ni, name := range names {
		log.Info().Msgf("starting player %d of %d: %s...", ni+1, len(names), name)

		// Each player reports to its own collector first so its results stay separate
		own := metrics.NewCollector()
		result := Result{Player: name}
		for i, req := range requests {
			gameID := req.GameID
			if gameID == "" {
				gameID = fmt.Sprintf("request-%d", i+1)
			}
			p, err := player.New(name, append(opts, player.WithRecorder(own), player.WithGameID(gameID))...)
			if err != nil {
				return nil, err
			}
			for round := 0; round < rounds; round++ {
				resp, err := bridge.Decide(p, req)
				if err != nil {
					return nil, fmt.Errorf("request %d: %w", i, err)
				}
				if resp.Index == reference[i] {
					result.Agreement++
				}
			}
		}

		summary := own.Summary()
		result.Decisions = summary.Decisions
		result.Fallbacks = summary.Fallbacks
		result.Mean = summary.MeanDuration
		results = append(results, result)
		if collector != nil {
			for _, d := range own.Decisions() {
				collector.Record(d)
			}
		}

		log.Info().Msgf("completed player %s: agreement %.2f", name, result.AgreementRate())
	}

	log.Info().Msg("completed comparison")
	return results, nil
}
