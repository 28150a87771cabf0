package aggregation

import (
	"slices"
)

// Apply returns the aggregate with one more completion folded in: count incremented,
// entry appended, best time min-merged, best score max-merged, last played overwritten.
// The receiver is not modified.
func (g GameAggregate) Apply(entry CompletionEntry) GameAggregate {
	next := g
	next.Completed = g.Completed + 1
	next.BestTime = FoldOptional(OpMin, g.BestTime, entry.CompletionTimeMs)
	next.BestScore = FoldOptional(OpMax, g.BestScore, entry.Score)
	played := entry.Timestamp
	next.LastPlayed = &played
	next.Completions = append(slices.Clone(g.Completions), entry)
	return next
}

// Apply returns the stats with one more completion counted.
func (s OverallStats) Apply(entry CompletionEntry) OverallStats {
	next := s
	next.TotalGamesCompleted = s.TotalGamesCompleted + 1
	if entry.CompletionTimeMs != nil {
		next.TotalPlayTimeMs = OpSum.Merge(s.TotalPlayTimeMs, *entry.CompletionTimeMs)
	}
	at := entry.Timestamp
	next.LastSessionAt = &at
	return next
}

// Game returns the aggregate entry for (season, gameID). Missing entries read as zero.
func (a SeasonedAggregate) Game(season Season, gameID string) (GameAggregate, bool) {
	if a == nil {
		return GameAggregate{}, false
	}
	games, ok := a[season]
	if !ok {
		return GameAggregate{}, false
	}
	g, ok := games[gameID]
	return g, ok
}

// Put stores an aggregate entry, allocating the season map on first use.
func (a SeasonedAggregate) Put(season Season, gameID string, g GameAggregate) {
	games, ok := a[season]
	if !ok {
		games = make(map[string]GameAggregate)
		a[season] = games
	}
	games[gameID] = g
}

// Clone deep-copies the aggregate so callers can hand it out without sharing state.
func (a SeasonedAggregate) Clone() SeasonedAggregate {
	out := make(SeasonedAggregate, len(a))
	for season, games := range a {
		copied := make(map[string]GameAggregate, len(games))
		for id, g := range games {
			g.Completions = slices.Clone(g.Completions)
			copied[id] = g
		}
		out[season] = copied
	}
	return out
}
