package projection

import (
	"sort"

	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
)

// gamesPerMedal is how many distinct completed games earn one medal.
const gamesPerMedal = 3

// Summarize derives the learner-facing summary from an aggregate. It is pure and total:
// nil maps, negative counts and unknown seasons never panic, and missing entries count
// as not completed.
func Summarize(agg aggregation.SeasonedAggregate, thresholds aggregation.Thresholds) Summary {
	order := thresholds.Order
	if len(order) == 0 {
		order = aggregation.DefaultSeasonOrder
	}

	completed := completedGames(agg, order)
	count := len(completed)

	unlocked := unlockedSeasons(count, order, thresholds.Required)
	var current aggregation.Season
	if len(unlocked) > 0 {
		current = unlocked[len(unlocked)-1]
	}

	return Summary{
		CompletedGames:  completed,
		CompletedCount:  count,
		MedalCount:      count / gamesPerMedal,
		UnlockedSeasons: unlocked,
		CurrentSeason:   current,
	}
}

// completedGames lists distinct (season, game) pairs with at least one completion,
// ordered by season unlock order then game id.
func completedGames(agg aggregation.SeasonedAggregate, order []aggregation.Season) []GameRef {
	rank := make(map[aggregation.Season]int, len(order))
	for i, s := range order {
		rank[s] = i
	}

	refs := make([]GameRef, 0)
	for season, games := range agg {
		if !season.Valid() {
			continue
		}
		for gameID, g := range games {
			if gameID == "" || g.Completed <= 0 {
				continue
			}
			refs = append(refs, GameRef{Season: season, GameID: gameID})
		}
	}

	sort.Slice(refs, func(i, j int) bool {
		ri, iok := rank[refs[i].Season]
		rj, jok := rank[refs[j].Season]
		if iok != jok {
			return iok
		}
		if ri != rj {
			return ri < rj
		}
		if refs[i].Season != refs[j].Season {
			return refs[i].Season < refs[j].Season
		}
		return refs[i].GameID < refs[j].GameID
	})
	return refs
}

// unlockedSeasons returns the prefix of order ending at the last season whose threshold
// is met. A later season unlocking therefore implies every earlier one is unlocked too.
// Seasons without a configured threshold need zero games.
func unlockedSeasons(completedCount int, order []aggregation.Season, required map[aggregation.Season]int) []aggregation.Season {
	last := -1
	for i, s := range order {
		if completedCount >= required[s] {
			last = i
		}
	}
	return append([]aggregation.Season{}, order[:last+1]...)
}
