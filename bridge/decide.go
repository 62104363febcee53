// Package bridge serves players to a host engine over HTTP, since the host
// cannot load Go code in process.
package bridge

import (
	"errors"
	"slices"

	"catalina/game"
	"catalina/player"
)

var (
	ErrNoActions = errors.New("no playable actions")
	ErrNoState   = errors.New("missing state")
)

// DecideRequest is one decision point as the host sees it.
type DecideRequest struct {
	GameID          string        `json:"game_id,omitempty"`
	Player          string        `json:"player,omitempty"` // Registered name, player.Default when empty
	State           *game.State   `json:"state"`
	PlayableActions []game.Action `json:"playable_actions"`
}

type DecideResponse struct {
	GameID string      `json:"game_id"`
	Index  int         `json:"index"`
	Action game.Action `json:"action"`
}

func (r DecideRequest) validate() error {
	if r.State == nil {
		return ErrNoState
	}
	if len(r.PlayableActions) == 0 {
		return ErrNoActions
	}
	return nil
}

// Decide runs p on the request and locates the chosen action among the
// playable ones.
func Decide(p player.Player, req DecideRequest) (DecideResponse, error) {
	if err := req.validate(); err != nil {
		return DecideResponse{}, err
	}
	chosen := p.Decide(game.NewSnapshot(req.State), req.PlayableActions)
	index := slices.IndexFunc(req.PlayableActions, chosen.Equal)
	if index < 0 {
		// Players only return what they were given
		index = 0
		chosen = req.PlayableActions[0]
	}
	return DecideResponse{GameID: req.GameID, Index: index, Action: chosen}, nil
}
