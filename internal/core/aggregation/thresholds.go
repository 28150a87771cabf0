package aggregation

// Thresholds controls season unlocking: a season unlocks once the learner's count of
// distinct completed games reaches Required[season]. Order lists seasons in unlock order.
type Thresholds struct {
	Order    []Season
	Required map[Season]int
}

// DefaultThresholds spaces the seasons one catalogue-season apart:
// Required[order[i]] = i * gamesPerSeason, so the first season is always unlocked.
func DefaultThresholds(order []Season, gamesPerSeason int) Thresholds {
	if len(order) == 0 {
		order = DefaultSeasonOrder
	}
	if gamesPerSeason < 0 {
		gamesPerSeason = 0
	}
	required := make(map[Season]int, len(order))
	for i, s := range order {
		required[s] = i * gamesPerSeason
	}
	return Thresholds{Order: append([]Season(nil), order...), Required: required}
}
