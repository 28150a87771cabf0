package aggregation

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompletionEntry is one element of an aggregate's completions array.
type CompletionEntry struct {
	Timestamp        time.Time        `json:"timestamp"`
	CompletionTimeMs *decimal.Decimal `json:"completionTimeMs,omitempty"`
	Score            *decimal.Decimal `json:"score,omitempty"`
}

// GameAggregate is the denormalized per-(season, game) summary of a learner's results.
// JSON names match the persisted document shape so stored data stays interchangeable.
//
// Invariants: Completed == len(Completions); BestTime is the minimum CompletionTimeMs
// ever recorded (nil if none was supplied). Never decremented.
type GameAggregate struct {
	Completed   int64             `json:"completed"`
	BestTime    *decimal.Decimal  `json:"bestTime"`
	BestScore   *decimal.Decimal  `json:"bestScore"`
	LastPlayed  *time.Time        `json:"lastPlayed"`
	Completions []CompletionEntry `json:"completions"`
}

// SeasonedAggregate maps season → game id → aggregate entry.
type SeasonedAggregate map[Season]map[string]GameAggregate

// OverallStats is the per-learner lifetime rollup, maintained at write time.
type OverallStats struct {
	TotalGamesCompleted int64           `json:"totalGamesCompleted"`
	TotalPlayTimeMs     decimal.Decimal `json:"totalPlayTimeMs"`
	LastSessionAt       *time.Time      `json:"lastSessionAt"`
}
