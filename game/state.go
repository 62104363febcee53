// Package game holds the read-only snapshot of a Catan game the host engine
// hands to a player each decision, and the board helpers players score with.
package game

import (
	"maps"
	"slices"
)

// PlayerState is the public and private view of one seat. Piece counts are
// the pieces still in the player's supply.
type PlayerState struct {
	Color         Color            `json:"color"`
	VictoryPoints int              `json:"victory_points"`
	Resources     map[Resource]int `json:"resources"`
	DevCards      int              `json:"dev_cards"`
	Settlements   int              `json:"settlements"`
	Cities        int              `json:"cities"`
	Roads         int              `json:"roads"`
}

// State is the read-only snapshot the host hands out at each decision point.
// Initial is set during the opening placement rounds, when builds are free and
// settlements need not connect to a road.
type State struct {
	Board   *Board        `json:"board"`
	Current Color         `json:"current"`
	Players []PlayerState `json:"players"`
	Turn    int           `json:"turn"`
	Initial bool          `json:"initial"`
}

// Game is what a player may ask of the host at a decision point. Buildable
// nodes and edges follow the host's placement rules for the given color.
// After answers the same queries for the game once a build action is played,
// without touching the current one.
type Game interface {
	State() *State
	BuildableNodes(color Color) []NodeID
	BuildableEdges(color Color) []EdgeID
	After(a Action) Game
}

// Snapshot answers Game queries from a decoded State alone, for players that
// run out of the host's process.
type Snapshot struct {
	state *State
}

func NewSnapshot(state *State) *Snapshot {
	if state.Board == nil {
		state.Board = NewBoard()
	}
	return &Snapshot{state: state}
}

func (s *Snapshot) State() *State {
	return s.state
}

// After places the piece of a settlement, city or road action on a copy of
// the board. Other actions, and build actions whose payload cannot be read,
// leave the copy as it is.
func (s *Snapshot) After(a Action) Game {
	board := *s.state.Board
	board.Buildings = maps.Clone(board.Buildings)
	board.Roads = maps.Clone(board.Roads)
	if board.Buildings == nil {
		board.Buildings = make(map[NodeID]Building)
	}
	if board.Roads == nil {
		board.Roads = make(map[EdgeID]Color)
	}

	switch a.Type {
	case BuildSettlement, BuildCity:
		kind := Settlement
		if a.Type == BuildCity {
			kind = City
		}
		if node, err := a.Node(); err == nil {
			board.Place(node, a.Color, kind)
		}
	case BuildRoad:
		if edge, err := a.Edge(); err == nil {
			board.Roads[edge] = a.Color
		}
	}

	state := *s.state
	state.Board = &board
	return &Snapshot{state: &state}
}

// BuildableNodes returns, in ascending order, the nodes where color may settle:
// the distance rule holds and, outside the opening, its roads reach the node.
func (s *Snapshot) BuildableNodes(color Color) []NodeID {
	board := s.state.Board
	nodes := []NodeID{}
	for _, id := range board.NodeIDs() {
		if !board.SatisfiesDistanceRule(id) {
			continue
		}
		if !s.state.Initial && !board.HasRoadAt(id, color) {
			continue
		}
		nodes = append(nodes, id)
	}
	return nodes
}

// BuildableEdges returns, in ascending order, the free edges that extend
// color's network. A road cannot pass through another player's building.
func (s *Snapshot) BuildableEdges(color Color) []EdgeID {
	board := s.state.Board
	seen := make(map[EdgeID]bool)
	edges := []EdgeID{}
	for _, id := range board.NodeIDs() {
		if !board.IsConnected(id, color) {
			continue
		}
		if building, ok := board.Buildings[id]; ok && building.Color != color {
			continue
		}
		for _, e := range board.Edges(id) {
			if _, taken := board.Roads[e]; taken || seen[e] {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}
	slices.SortFunc(edges, func(a, b EdgeID) int {
		if a[0] != b[0] {
			return int(a[0] - b[0])
		}
		return int(a[1] - b[1])
	})
	return edges
}
