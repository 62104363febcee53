package game

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type TileID int

type NodeID int

// EdgeID identifies the edge between two nodes. The lower node always comes first.
type EdgeID [2]NodeID

func NewEdge(a, b NodeID) EdgeID {
	if a > b {
		a, b = b, a
	}
	return EdgeID{a, b}
}

// Has reports whether n is one of the edge's endpoints.
func (e EdgeID) Has(n NodeID) bool {
	return e[0] == n || e[1] == n
}

// Other returns the endpoint opposite to n.
func (e EdgeID) Other(n NodeID) NodeID {
	if e[0] == n {
		return e[1]
	}
	return e[0]
}

func (e EdgeID) String() string {
	return fmt.Sprintf("%d-%d", e[0], e[1])
}

// MarshalText lets edges key JSON objects ("3-7").
func (e EdgeID) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *EdgeID) UnmarshalText(text []byte) error {
	a, b, ok := strings.Cut(string(text), "-")
	if !ok {
		return fmt.Errorf("invalid edge %q", text)
	}
	x, err := strconv.Atoi(a)
	if err != nil {
		return fmt.Errorf("invalid edge %q: %w", text, err)
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return fmt.Errorf("invalid edge %q: %w", text, err)
	}
	*e = NewEdge(NodeID(x), NodeID(y))
	return nil
}

type Tile struct {
	ID       TileID   `json:"id"`
	Resource Resource `json:"resource"` // Empty for the desert
	Number   int      `json:"number"`
}

type Node struct {
	ID          NodeID   `json:"id"`
	TileIDs     []TileID `json:"tiles"`    // Tiles touching the node
	AdjacentIDs []NodeID `json:"adjacent"` // Nodes one edge away
}

// Board is the host's board graph as seen by a player: tiles, the node graph
// and everything built on it.
type Board struct {
	Tiles     map[TileID]*Tile    `json:"tiles"`
	Nodes     map[NodeID]*Node    `json:"nodes"`
	Buildings map[NodeID]Building `json:"buildings"`
	Roads     map[EdgeID]Color    `json:"roads"`
	Robber    TileID              `json:"robber"`
}

// NewBoard creates and returns an empty Board. The robber starts off-board.
func NewBoard() *Board {
	return &Board{
		Tiles:     make(map[TileID]*Tile),
		Nodes:     make(map[NodeID]*Node),
		Buildings: make(map[NodeID]Building),
		Roads:     make(map[EdgeID]Color),
		Robber:    -1,
	}
}

// AddTile adds a tile to the board.
func (b *Board) AddTile(tile *Tile) {
	b.Tiles[tile.ID] = tile
}

// AddNode adds a node touching the given tiles. Adding an existing node
// merges the tile lists.
func (b *Board) AddNode(id NodeID, tiles ...TileID) {
	node, ok := b.Nodes[id]
	if !ok {
		node = &Node{ID: id, TileIDs: []TileID{}, AdjacentIDs: []NodeID{}}
		b.Nodes[id] = node
	}
	for _, t := range tiles {
		if !slices.Contains(node.TileIDs, t) {
			node.TileIDs = append(node.TileIDs, t)
		}
	}
}

// AddEdge adds a bidirectional edge between two nodes, creating them if needed.
func (b *Board) AddEdge(n1, n2 NodeID) {
	b.AddNode(n1)
	b.AddNode(n2)
	if !slices.Contains(b.Nodes[n1].AdjacentIDs, n2) {
		b.Nodes[n1].AdjacentIDs = append(b.Nodes[n1].AdjacentIDs, n2)
	}
	if !slices.Contains(b.Nodes[n2].AdjacentIDs, n1) {
		b.Nodes[n2].AdjacentIDs = append(b.Nodes[n2].AdjacentIDs, n1)
	}
}

// Place puts a building of the given kind on a node.
func (b *Board) Place(node NodeID, color Color, kind BuildingKind) {
	b.Buildings[node] = Building{Color: color, Kind: kind}
}

// PlaceRoad puts a road on the edge between two nodes.
func (b *Board) PlaceRoad(n1, n2 NodeID, color Color) {
	b.Roads[NewEdge(n1, n2)] = color
}

// HasEdge checks if two nodes are adjacent on the board.
func (b *Board) HasEdge(n1, n2 NodeID) bool {
	node, ok := b.Nodes[n1]
	return ok && slices.Contains(node.AdjacentIDs, n2)
}

// AdjacentTiles returns the tiles touching a node, in insertion order.
func (b *Board) AdjacentTiles(id NodeID) []*Tile {
	node, ok := b.Nodes[id]
	if !ok {
		return nil
	}
	tiles := make([]*Tile, 0, len(node.TileIDs))
	for _, t := range node.TileIDs {
		if tile, ok := b.Tiles[t]; ok {
			tiles = append(tiles, tile)
		}
	}
	return tiles
}

// Neighbors returns the nodes one edge away from id.
func (b *Board) Neighbors(id NodeID) []NodeID {
	node, ok := b.Nodes[id]
	if !ok {
		return nil
	}
	return node.AdjacentIDs
}

// Edges returns the edges touching a node.
func (b *Board) Edges(id NodeID) []EdgeID {
	neighbors := b.Neighbors(id)
	edges := make([]EdgeID, 0, len(neighbors))
	for _, n := range neighbors {
		edges = append(edges, NewEdge(id, n))
	}
	return edges
}

// IsOccupied checks if a node holds a building.
func (b *Board) IsOccupied(id NodeID) bool {
	_, ok := b.Buildings[id]
	return ok
}

// SatisfiesDistanceRule reports whether a node and all its neighbours are free.
func (b *Board) SatisfiesDistanceRule(id NodeID) bool {
	if _, ok := b.Nodes[id]; !ok || b.IsOccupied(id) {
		return false
	}
	for _, n := range b.Neighbors(id) {
		if b.IsOccupied(n) {
			return false
		}
	}
	return true
}

// HasRoadAt checks if color owns a road touching the node.
func (b *Board) HasRoadAt(id NodeID, color Color) bool {
	for _, e := range b.Edges(id) {
		if c, ok := b.Roads[e]; ok && c == color {
			return true
		}
	}
	return false
}

// IsConnected reports whether color's network reaches the node, either through
// one of its buildings or one of its roads.
func (b *Board) IsConnected(id NodeID, color Color) bool {
	if building, ok := b.Buildings[id]; ok && building.Color == color {
		return true
	}
	return b.HasRoadAt(id, color)
}

// Production tallies the pips each resource yields to color. Cities count
// double and the tile under the robber yields nothing.
func (b *Board) Production(color Color) map[Resource]float64 {
	production := make(map[Resource]float64)
	for id, building := range b.Buildings {
		if building.Color != color {
			continue
		}
		multiplier := 1.0
		if building.Kind == City {
			multiplier = 2.0
		}
		for _, tile := range b.AdjacentTiles(id) {
			if tile.IsDesert() || tile.ID == b.Robber {
				continue
			}
			production[tile.Resource] += multiplier * float64(Pips(tile.Number))
		}
	}
	return production
}

// NodeIDs returns all node ids in ascending order.
func (b *Board) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(b.Nodes))
	for id := range b.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
