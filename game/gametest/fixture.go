// Package gametest provides a small hand-built board for tests.
package gametest

import "catalina/game"

// Tile ids on the fixture board.
const (
	WheatSix  game.TileID = 0
	OreEight  game.TileID = 1
	WoodThree game.TileID = 2
	Desert    game.TileID = 3
)

// NewBoard returns a seven node board:
//
//	4 - 1 - 6
//	    |   |
//	    0 - 2
//	    |
//	5 - 3
//
// Node 0 touches wheat 6, ore 8 and wood 3 (12 pips); node 1 wheat and ore
// (10); node 2 ore and wood (7); node 3 wheat and wood (7); node 4 wheat (5);
// node 5 wood and the desert (2); node 6 ore (5).
func NewBoard() *game.Board {
	b := game.NewBoard()
	b.AddTile(&game.Tile{ID: WheatSix, Resource: game.Wheat, Number: 6})
	b.AddTile(&game.Tile{ID: OreEight, Resource: game.Ore, Number: 8})
	b.AddTile(&game.Tile{ID: WoodThree, Resource: game.Wood, Number: 3})
	b.AddTile(&game.Tile{ID: Desert})
	b.Robber = Desert

	b.AddNode(0, WheatSix, OreEight, WoodThree)
	b.AddNode(1, WheatSix, OreEight)
	b.AddNode(2, OreEight, WoodThree)
	b.AddNode(3, WheatSix, WoodThree)
	b.AddNode(4, WheatSix)
	b.AddNode(5, WoodThree, Desert)
	b.AddNode(6, OreEight)

	for _, e := range [][2]game.NodeID{{0, 1}, {0, 2}, {0, 3}, {1, 4}, {1, 6}, {2, 6}, {3, 5}} {
		b.AddEdge(e[0], e[1])
	}
	return b
}

// NewState returns a mid-game state on the fixture board: red has a
// settlement on 5 with a road to 3, blue a settlement on 6 with a road to 2.
// Red is to move and holds enough cards for any purchase.
func NewState() *game.State {
	b := NewBoard()
	b.Place(5, game.Red, game.Settlement)
	b.PlaceRoad(3, 5, game.Red)
	b.Place(6, game.Blue, game.Settlement)
	b.PlaceRoad(2, 6, game.Blue)

	return &game.State{
		Board:   b,
		Current: game.Red,
		Turn:    12,
		Players: []game.PlayerState{
			{
				Color:         game.Red,
				VictoryPoints: 2,
				Resources:     map[game.Resource]int{game.Wood: 2, game.Brick: 2, game.Sheep: 2, game.Wheat: 2, game.Ore: 3},
				Settlements:   4,
				Cities:        4,
				Roads:         13,
			},
			{
				Color:         game.Blue,
				VictoryPoints: 2,
				Resources:     map[game.Resource]int{},
				Settlements:   4,
				Cities:        4,
				Roads:         13,
			},
		},
	}
}

// NewOpeningState returns an empty fixture board in the opening placement round.
func NewOpeningState() *game.State {
	return &game.State{
		Board:   NewBoard(),
		Current: game.Red,
		Initial: true,
		Players: []game.PlayerState{
			{Color: game.Red, Settlements: 5, Cities: 4, Roads: 15},
			{Color: game.Blue, Settlements: 5, Cities: 4, Roads: 15},
		},
	}
}
