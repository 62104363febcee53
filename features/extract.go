package features

import (
	"slices"

	"catalina/game"

	"github.com/rs/zerolog/log"
)

// DevCardVictoryPoints is the expected score of a development card: five of
// the twenty-five cards in the deck are victory points.
const DevCardVictoryPoints = 5.0 / 25.0

// Extract computes the feature vector of a build or buy action from the
// acting player's perspective. It returns false for actions that are not
// scored (rolls, trades, robber moves, card plays, ending the turn) and for
// build actions whose payload cannot be read. Where a piece may go next is
// asked of the game, so the host's placement rules apply.
func Extract(g game.Game, a game.Action) (Vector, bool) {
	var v Vector
	if !a.Type.IsBuild() {
		return v, false
	}
	state := g.State()

	switch a.Type {
	case game.BuildSettlement:
		node, err := a.Node()
		if err != nil {
			log.Warn().Err(err).Msg("skipping unreadable settlement action")
			return v, false
		}
		v[VictoryPoints] = 1
		v[Pips] = nodePips(state.Board, node)
		v[Diversity] = nodeDiversity(state.Board, node, a.Color)
		v[Accessibility] = float64(openEdges(g.After(a), node, a.Color))
	case game.BuildCity:
		node, err := a.Node()
		if err != nil {
			log.Warn().Err(err).Msg("skipping unreadable city action")
			return v, false
		}
		// A city doubles the settlement's yield, so it gains the node's pips again
		v[VictoryPoints] = 1
		v[Pips] = nodePips(state.Board, node)
		v[Diversity] = nodeDiversity(state.Board, node, a.Color)
	case game.BuildRoad:
		edge, err := a.Edge()
		if err != nil {
			log.Warn().Err(err).Msg("skipping unreadable road action")
			return v, false
		}
		if !state.Board.HasEdge(edge[0], edge[1]) {
			log.Warn().Stringer("edge", edge).Msg("skipping road off the board")
			return v, false
		}
		extractRoad(g, a, edge, &v)
	case game.BuyDevelopmentCard:
		v[VictoryPoints] = DevCardVictoryPoints
		v[Potential] = 1
	}

	v[Cost] = cost(state, a.Type)
	return v, true
}

// extractRoad scores a road by the settlement spots it opens at its far end:
// the far node itself once the road is down, or a neighbour one more road
// away. Pips and diversity come from the far node when it is a spot, else
// from the richest spot.
func extractRoad(g game.Game, a game.Action, edge game.EdgeID, v *Vector) {
	board := g.State().Board
	// The far end is the endpoint the network does not reach yet
	far := edge[1]
	if !board.IsConnected(edge[0], a.Color) {
		far = edge[0]
	}

	after := g.After(a)
	var spots []game.NodeID
	if slices.Contains(after.BuildableNodes(a.Color), far) {
		spots = append(spots, far)
	}
	for _, e := range after.BuildableEdges(a.Color) {
		if !e.Has(far) {
			continue
		}
		next := e.Other(far)
		further := after.After(game.RoadAction(a.Color, far, next))
		if slices.Contains(further.BuildableNodes(a.Color), next) {
			spots = append(spots, next)
		}
	}

	v[Accessibility] = float64(len(spots))
	if len(spots) == 0 {
		return
	}
	best := spots[0]
	if best != far {
		for _, n := range spots[1:] {
			if nodePips(board, n) > nodePips(board, best) {
				best = n
			}
		}
	}
	v[Pips] = nodePips(board, best)
	v[Diversity] = nodeDiversity(board, best, a.Color)
	v[Potential] = 1
}

// nodePips sums the pips of the producing tiles around a node.
func nodePips(board *game.Board, node game.NodeID) float64 {
	total := 0
	for _, tile := range board.AdjacentTiles(node) {
		if tile.IsDesert() || tile.ID == board.Robber {
			continue
		}
		total += game.Pips(tile.Number)
	}
	return float64(total)
}

// nodeDiversity counts the distinct resources around a node, counting twice
// those color does not produce yet.
func nodeDiversity(board *game.Board, node game.NodeID, color game.Color) float64 {
	produced := board.Production(color)
	seen := make(map[game.Resource]bool)
	score := 0
	for _, tile := range board.AdjacentTiles(node) {
		if tile.IsDesert() || seen[tile.Resource] {
			continue
		}
		seen[tile.Resource] = true
		score++
		if produced[tile.Resource] == 0 {
			score++
		}
	}
	return float64(score)
}

// openEdges counts the roads color could build from a node.
func openEdges(g game.Game, node game.NodeID, color game.Color) int {
	open := 0
	for _, e := range g.BuildableEdges(color) {
		if e.Has(node) {
			open++
		}
	}
	return open
}

// cost is free during the opening placement.
func cost(state *game.State, t game.ActionType) float64 {
	if state.Initial {
		return 0
	}
	return float64(game.Cost(t))
}
