package game

// Kind identifies a tower type.
type Kind int

const (
	KindBasic Kind = iota
	KindSniper
	KindCannon
	KindMulti
	KindFreeze

	numKinds
)

// ValidKind reports whether k addresses a known tower type.
func ValidKind(k int) bool {
	return k >= 0 && k < int(numKinds)
}

// towerSpec holds the per-level stats of a tower type.
// Range is in cells, cooldown in ticks.
type towerSpec struct {
	Cost     int
	Range    float64
	Damage   float64
	Cooldown int
}

// Upgrade paths per kind. The level-0 cost is also the sell refund.
var towerLevels = [numKinds][]towerSpec{
	KindBasic: {
		{Cost: 50, Range: 3.5, Damage: 10, Cooldown: 30},
		{Cost: 60, Range: 4.0, Damage: 16, Cooldown: 27},
		{Cost: 90, Range: 4.5, Damage: 26, Cooldown: 24},
	},
	KindSniper: {
		{Cost: 80, Range: 9.0, Damage: 35, Cooldown: 90},
		{Cost: 100, Range: 10.0, Damage: 60, Cooldown: 85},
		{Cost: 150, Range: 11.0, Damage: 100, Cooldown: 80},
	},
	KindCannon: {
		{Cost: 120, Range: 4.0, Damage: 22, Cooldown: 60},
		{Cost: 150, Range: 4.5, Damage: 38, Cooldown: 55},
		{Cost: 220, Range: 5.0, Damage: 62, Cooldown: 50},
	},
	KindMulti: {
		{Cost: 140, Range: 3.0, Damage: 8, Cooldown: 12},
		{Cost: 170, Range: 3.5, Damage: 13, Cooldown: 10},
		{Cost: 250, Range: 4.0, Damage: 20, Cooldown: 8},
	},
	KindFreeze: {
		{Cost: 100, Range: 3.0, Damage: 2, Cooldown: 20},
		{Cost: 130, Range: 3.5, Damage: 4, Cooldown: 18},
		{Cost: 190, Range: 4.0, Damage: 7, Cooldown: 16},
	},
}

// BuildCost returns the cost of placing a level-0 tower of the given kind.
func BuildCost(k Kind) int {
	return towerLevels[k][0].Cost
}

// UpgradeCost returns the cost of the next level, or -1 if the tower is
// already at the top of its upgrade path.
func UpgradeCost(k Kind, currentLevel int) int {
	next := currentLevel + 1
	if next >= len(towerLevels[k]) {
		return -1
	}
	return towerLevels[k][next].Cost
}
