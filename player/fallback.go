package player

import (
	"slices"

	"catalina/game"
)

// fallback picks an action without scoring: rolling the dice first, then
// anything but ending the turn when preferActing is set, else the first.
func fallback(actions []game.Action, preferActing bool) int {
	if i := slices.IndexFunc(actions, func(a game.Action) bool { return a.Type == game.Roll }); i >= 0 {
		return i
	}
	if preferActing {
		if i := slices.IndexFunc(actions, func(a game.Action) bool { return a.Type != game.EndTurn }); i >= 0 {
			return i
		}
	}
	return 0
}
