package features

import "fmt"

// Criterion indexes one column of the decision matrix.
type Criterion int

const (
	VictoryPoints Criterion = iota // Points the action scores outright
	Pips                           // Production probability gained or reached
	Diversity                      // Resource spread gained, favouring new resources
	Accessibility                  // Room left to expand from the new piece
	Potential                      // Road and development-card upside
	Cost                           // Resource cards spent
	NumCriteria
)

var criterionNames = [NumCriteria]string{
	"victory_points",
	"pips",
	"diversity",
	"accessibility",
	"potential",
	"cost",
}

func (c Criterion) String() string {
	if c < 0 || c >= NumCriteria {
		return fmt.Sprintf("criterion(%d)", int(c))
	}
	return criterionNames[c]
}

// IsCost reports whether lower values of the criterion are better.
func (c Criterion) IsCost() bool {
	return c == Cost
}

// ParseCriterion maps a criterion name back to its column.
func ParseCriterion(name string) (Criterion, bool) {
	for i, n := range criterionNames {
		if n == name {
			return Criterion(i), true
		}
	}
	return 0, false
}

// Vector holds one action's features in column order.
type Vector [NumCriteria]float64

// Weights holds the relative importance of each criterion.
type Weights [NumCriteria]float64

// DefaultWeights favour points and production over everything else.
var DefaultWeights = Weights{
	VictoryPoints: 0.30,
	Pips:          0.25,
	Diversity:     0.15,
	Accessibility: 0.10,
	Potential:     0.10,
	Cost:          0.10,
}
