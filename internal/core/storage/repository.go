package storage

import (
	"context"
	"errors"

	v1 "github.com/projecteax/mozgnamaxa/internal/api/v1"
	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
)

// ErrProfileNotFound is returned when a learner id does not resolve to a stored profile.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore resolves opaque learner ids to profile records.
type ProfileStore interface {
	// ResolveProfile returns ErrProfileNotFound when no profile exists for learnerID.
	ResolveProfile(ctx context.Context, learnerID string) (*v1.Profile, error)

	// EnsureProfile creates the profile if missing and returns it. Idempotent.
	EnsureProfile(ctx context.Context, learnerID, displayName string) (*v1.Profile, error)
}

// CompletionLog is the append-only record of every completion event.
type CompletionLog interface {
	// AppendCompletion stores the event and sets its LogSeq.
	AppendCompletion(ctx context.Context, event *v1.CompletionEvent) error

	// RetrieveCompletionsAfterCursor fetches events after a cursor (log_seq) in strict total order.
	// cursor=0 means "from the beginning"
	RetrieveCompletionsAfterCursor(ctx context.Context, cursor int64, limit int) ([]*v1.CompletionEvent, error)
}

// AggregateStore maintains the denormalized per-learner progress document.
type AggregateStore interface {
	// UpsertAggregate folds one completion into the (season, game) entry of the profile:
	// completed incremented, entry appended, best time min-merged, last played overwritten.
	// SQL backends apply this atomically per row so concurrent writers never lose entries.
	UpsertAggregate(ctx context.Context, profile *v1.Profile, event *v1.CompletionEvent) error

	// UpdateOverallStats folds one completion into the profile's lifetime stats.
	UpdateOverallStats(ctx context.Context, profile *v1.Profile, event *v1.CompletionEvent) error

	// LoadAggregate returns the learner's full aggregate. Returns ErrProfileNotFound when
	// the learner has no profile; an empty aggregate when nothing was played yet.
	LoadAggregate(ctx context.Context, learnerID string) (aggregation.SeasonedAggregate, error)

	// LoadGameAggregate returns one entry, or nil (no error) when the game was never played.
	LoadGameAggregate(ctx context.Context, learnerID string, season aggregation.Season, gameID string) (*aggregation.GameAggregate, error)

	// LoadOverallStats returns the learner's lifetime stats (zero value if none recorded).
	LoadOverallStats(ctx context.Context, learnerID string) (aggregation.OverallStats, error)
}

// CompletionStore is the persistent record of completion events and per-learner aggregates.
type CompletionStore interface {
	ProfileStore
	CompletionLog
	AggregateStore

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error

	Close() error
}
