package v1

import (
	"fmt"
	"time"

	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

// CompletionEvent is one finished mini-game session. Events are immutable and only
// ever appended to the completion log.
type CompletionEvent struct {
	// ID is generated by the recorder (uuid) so a log row can be traced in audits.
	ID string `json:"id"`

	// LearnerID is the opaque identity supplied by the identity provider.
	LearnerID string `json:"learner_id"`

	GameID string             `json:"game_id"`
	Season aggregation.Season `json:"season"`

	// OccurredAt is the server-side timestamp of the completion.
	OccurredAt time.Time `json:"occurred_at"`

	// CompletionTimeMs and Score are optional measures reported by the game.
	CompletionTimeMs *decimal.Decimal `json:"completion_time_ms,omitempty"`
	Score            *decimal.Decimal `json:"score,omitempty"`

	// LogSeq is a monotonic sequence number assigned by the store on append.
	// It provides strict total ordering for audit pagination.
	LogSeq int64 `json:"-"`
}

// Validate ensures the event carries everything the store needs.
func (e *CompletionEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("id is required")
	}
	if e.LearnerID == "" {
		return fmt.Errorf("learner_id is required")
	}
	if e.GameID == "" {
		return fmt.Errorf("game_id is required")
	}
	if !e.Season.Valid() {
		return fmt.Errorf("%w: %q", aggregation.ErrUnknownSeason, e.Season)
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("occurred_at is required")
	}
	if e.CompletionTimeMs != nil && e.CompletionTimeMs.IsNegative() {
		return fmt.Errorf("completion_time_ms must not be negative")
	}
	if e.Score != nil && e.Score.IsNegative() {
		return fmt.Errorf("score must not be negative")
	}
	return nil
}

// Entry converts the event into the element appended to an aggregate's completions array.
func (e *CompletionEvent) Entry() aggregation.CompletionEntry {
	return aggregation.CompletionEntry{
		Timestamp:        e.OccurredAt,
		CompletionTimeMs: e.CompletionTimeMs,
		Score:            e.Score,
	}
}

// Profile is the storage record an opaque learner id resolves to.
// Aggregates and overall stats hang off the profile.
type Profile struct {
	ID          string    `json:"id"`
	LearnerID   string    `json:"learner_id"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
