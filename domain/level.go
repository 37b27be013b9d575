package domain

// LevelCostBase is the XP cost of advancing from level 1 to level 2; the cost
// of advancing from level L to L+1 is LevelCostBase * L.
const LevelCostBase int64 = 100

// LevelForXP derives the level reached with the given cumulative XP.
// Levels start at 1 and XP never maps below it. The per-level cost grows
// linearly, so the walk is O(sqrt(xp)) and safe in int64 for any realistic
// total.
func LevelForXP(xp int64) int {
	if xp < 0 {
		return 1
	}
	level := int64(1)
	cost := LevelCostBase
	for xp >= cost {
		xp -= cost
		level++
		cost = LevelCostBase * level
	}
	return int(level)
}

// XPForLevel returns the cumulative XP threshold at which the given level is
// first reached. Levels at or below 1 require no XP.
func XPForLevel(level int) int64 {
	var total int64
	for l := int64(1); l < int64(level); l++ {
		total += LevelCostBase * l
	}
	return total
}
