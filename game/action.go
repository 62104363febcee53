package game

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ActionType represents the type of action a player can perform.
type ActionType string

const (
	Roll               ActionType = "ROLL"
	EndTurn            ActionType = "END_TURN"
	BuildSettlement    ActionType = "BUILD_SETTLEMENT"
	BuildCity          ActionType = "BUILD_CITY"
	BuildRoad          ActionType = "BUILD_ROAD"
	BuyDevelopmentCard ActionType = "BUY_DEVELOPMENT_CARD"
	MoveRobber         ActionType = "MOVE_ROBBER"
	Discard            ActionType = "DISCARD"
	MaritimeTrade      ActionType = "MARITIME_TRADE"
	PlayKnightCard     ActionType = "PLAY_KNIGHT_CARD"
	PlayYearOfPlenty   ActionType = "PLAY_YEAR_OF_PLENTY"
	PlayMonopoly       ActionType = "PLAY_MONOPOLY"
	PlayRoadBuilding   ActionType = "PLAY_ROAD_BUILDING"
)

// IsBuild reports whether the action places a piece or buys a card.
func (t ActionType) IsBuild() bool {
	switch t {
	case BuildSettlement, BuildCity, BuildRoad, BuyDevelopmentCard:
		return true
	}
	return false
}

// Action is one legal option offered by the host. Value carries the
// type-specific payload untouched: a node id for settlements and cities, a
// two-node array for roads.
type Action struct {
	Color Color           `json:"color"`
	Type  ActionType      `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// NewAction builds an action, encoding value as its payload. A nil value
// leaves the payload empty.
func NewAction(color Color, t ActionType, value any) Action {
	a := Action{Color: color, Type: t}
	if value == nil {
		return a
	}
	raw, err := json.Marshal(value)
	if err != nil {
		panic(fmt.Sprintf("cannot encode %s payload: %v", t, err))
	}
	a.Value = raw
	return a
}

// SettlementAction, CityAction and RoadAction are shorthands for the build actions.
func SettlementAction(color Color, node NodeID) Action {
	return NewAction(color, BuildSettlement, node)
}

func CityAction(color Color, node NodeID) Action {
	return NewAction(color, BuildCity, node)
}

func RoadAction(color Color, a, b NodeID) Action {
	return NewAction(color, BuildRoad, [2]NodeID{a, b})
}

// Node decodes the payload of a settlement or city action.
func (a Action) Node() (NodeID, error) {
	var id NodeID
	if err := json.Unmarshal(a.Value, &id); err != nil {
		return 0, fmt.Errorf("%s: invalid node payload %q: %w", a.Type, a.Value, err)
	}
	return id, nil
}

// Edge decodes the payload of a road action.
func (a Action) Edge() (EdgeID, error) {
	var pair [2]NodeID
	if err := json.Unmarshal(a.Value, &pair); err != nil {
		return EdgeID{}, fmt.Errorf("%s: invalid edge payload %q: %w", a.Type, a.Value, err)
	}
	return NewEdge(pair[0], pair[1]), nil
}

// Equal compares actions by color, type and payload bytes.
func (a Action) Equal(other Action) bool {
	return a.Color == other.Color && a.Type == other.Type && bytes.Equal(a.Value, other.Value)
}

func (a Action) String() string {
	if len(a.Value) == 0 {
		return fmt.Sprintf("%s %s", a.Color, a.Type)
	}
	return fmt.Sprintf("%s %s %s", a.Color, a.Type, a.Value)
}
