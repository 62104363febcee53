package game

// Color identifies a player seat, as the host names it.
type Color string

const (
	Red    Color = "RED"
	Blue   Color = "BLUE"
	Orange Color = "ORANGE"
	White  Color = "WHITE"
)

type Resource string

const (
	Wood  Resource = "WOOD"
	Brick Resource = "BRICK"
	Sheep Resource = "SHEEP"
	Wheat Resource = "WHEAT"
	Ore   Resource = "ORE"
)

type BuildingKind string

const (
	Settlement BuildingKind = "SETTLEMENT"
	City       BuildingKind = "CITY"
)

type Building struct {
	Color Color        `json:"color"`
	Kind  BuildingKind `json:"kind"`
}

func (t Tile) IsDesert() bool {
	return t.Resource == ""
}

// Pips returns the number of dots printed on a dice number token, i.e. the
// number of ways two dice roll it out of 36. Seven and off-range numbers
// produce nothing.
func Pips(number int) int {
	if number < 2 || number > 12 || number == 7 {
		return 0
	}
	if number < 7 {
		return number - 1
	}
	return 13 - number
}

// costs holds the resources each purchase consumes.
var costs = map[ActionType]map[Resource]int{
	BuildSettlement:    {Wood: 1, Brick: 1, Sheep: 1, Wheat: 1},
	BuildCity:          {Wheat: 2, Ore: 3},
	BuildRoad:          {Wood: 1, Brick: 1},
	BuyDevelopmentCard: {Sheep: 1, Wheat: 1, Ore: 1},
}

// Cost returns the total number of resource cards an action spends.
func Cost(t ActionType) int {
	total := 0
	for _, n := range costs[t] {
		total += n
	}
	return total
}
