package projection

import (
	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
)

// GameRef names one completed (season, game) pair.
type GameRef struct {
	Season aggregation.Season `json:"season"`
	GameID string             `json:"game_id"`
}

// Summary is the learner-facing view derived from the aggregate document.
type Summary struct {
	CompletedGames  []GameRef            `json:"completed_games"`
	CompletedCount  int                  `json:"completed_count"`
	MedalCount      int                  `json:"medal_count"`
	UnlockedSeasons []aggregation.Season `json:"unlocked_seasons"`
	CurrentSeason   aggregation.Season   `json:"current_season,omitempty"`
}

// ProgressResponse is returned by GET /v1/progress.
type ProgressResponse struct {
	LearnerID string                        `json:"learner_id,omitempty"`
	Summary   Summary                       `json:"summary"`
	Seasons   aggregation.SeasonedAggregate `json:"seasons"`
	Stats     aggregation.OverallStats      `json:"stats"`
}
