package recording

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	v1 "github.com/projecteax/mozgnamaxa/internal/api/v1"
	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/projecteax/mozgnamaxa/internal/core/catalogue"
	"github.com/projecteax/mozgnamaxa/internal/core/storage"
	"github.com/projecteax/mozgnamaxa/internal/identity"
	"github.com/projecteax/mozgnamaxa/internal/notify"
	"github.com/shopspring/decimal"
)

// ErrInvalidCompletion marks a malformed record request (missing game, unknown season,
// negative measures). It is a caller bug, so it propagates instead of becoming an Outcome.
var ErrInvalidCompletion = errors.New("invalid completion")

// Reason explains why a completion was not recorded.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonNoIdentity       Reason = "no_identity"
	ReasonProfileNotFound  Reason = "profile_not_found"
	ReasonStoreUnavailable Reason = "store_unavailable"
)

// RecordRequest is one finished game session.
type RecordRequest struct {
	LearnerID        string
	GameID           string
	Season           aggregation.Season
	CompletionTimeMs *decimal.Decimal
	Score            *decimal.Decimal
}

// Outcome is the result of Record. Recorded is false whenever Reason is set.
type Outcome struct {
	Recorded bool
	Reason   Reason
}

type Service struct {
	store            storage.CompletionStore
	catalogue        *catalogue.Catalogue
	identity         identity.Provider
	bus              notify.Bus
	maxBodySizeBytes int

	nowFn func() time.Time
	idFn  func() string
}

// NewService builds the recorder. bus may be nil when no cache needs invalidating.
func NewService(store storage.CompletionStore, cat *catalogue.Catalogue, ident identity.Provider, bus notify.Bus, maxBodySizeMB int) *Service {
	if store == nil {
		panic("recording: store must not be nil")
	}
	if cat == nil {
		cat = catalogue.Default()
	}
	if ident == nil {
		ident = identity.ContextProvider{}
	}
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		catalogue:        cat,
		identity:         ident,
		bus:              bus,
		maxBodySizeBytes: maxBodySizeMB * 1024 * 1024,
		nowFn:            func() time.Time { return time.Now().UTC() },
		idFn:             uuid.NewString,
	}
}

// RegisterRoutes registers the recording routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/completions", s.RecordHandler)
	r.PUT("/v1/profile", s.EnsureProfileHandler)
}

// Record writes one completion: (1) append to the log, (2) resolve the learner's profile,
// (3) fold into the season aggregate, (4) update overall stats. The steps are not
// transactional; a failure after (1) leaves the log ahead of the aggregate, which the
// drift auditor reports. No step is retried, and repeated calls count repeated plays.
func (s *Service) Record(ctx context.Context, req RecordRequest) (Outcome, error) {
	if req.LearnerID == "" {
		slog.Debug("[Recorder] No identity, completion not recorded", "game_id", req.GameID, "season", req.Season)
		return Outcome{Reason: ReasonNoIdentity}, nil
	}

	evt, err := s.newEvent(req)
	if err != nil {
		return Outcome{}, err
	}

	if err := s.store.AppendCompletion(ctx, evt); err != nil {
		slog.Error("[Recorder] Failed to append completion", "error", err, "learner_id", evt.LearnerID, "game_id", evt.GameID)
		return Outcome{Reason: ReasonStoreUnavailable}, nil
	}

	profile, err := s.store.ResolveProfile(ctx, evt.LearnerID)
	if errors.Is(err, storage.ErrProfileNotFound) {
		slog.Warn("[Recorder] No profile for learner, aggregate update skipped",
			"learner_id", evt.LearnerID,
			"game_id", evt.GameID,
			"season", evt.Season,
			"log_seq", evt.LogSeq)
		return Outcome{Reason: ReasonProfileNotFound}, nil
	}
	if err != nil {
		slog.Error("[Recorder] Failed to resolve profile", "error", err, "learner_id", evt.LearnerID)
		return Outcome{Reason: ReasonStoreUnavailable}, nil
	}

	if err := s.store.UpsertAggregate(ctx, profile, evt); err != nil {
		slog.Error("[Recorder] Failed to upsert aggregate", "error", err,
			"learner_id", evt.LearnerID, "game_id", evt.GameID, "season", evt.Season, "log_seq", evt.LogSeq)
		return Outcome{Reason: ReasonStoreUnavailable}, nil
	}

	if err := s.store.UpdateOverallStats(ctx, profile, evt); err != nil {
		slog.Error("[Recorder] Failed to update overall stats", "error", err, "learner_id", evt.LearnerID, "log_seq", evt.LogSeq)
		return Outcome{Reason: ReasonStoreUnavailable}, nil
	}

	slog.Info("[Recorder] Recorded completion",
		"learner_id", evt.LearnerID,
		"game_id", evt.GameID,
		"season", evt.Season,
		"log_seq", evt.LogSeq)

	s.publish(ctx, evt)
	return Outcome{Recorded: true}, nil
}

// EnsureProfile creates the learner's profile if missing.
func (s *Service) EnsureProfile(ctx context.Context, learnerID, displayName string) (*v1.Profile, error) {
	if learnerID == "" {
		return nil, fmt.Errorf("%w: learner id is required", ErrInvalidCompletion)
	}
	return s.store.EnsureProfile(ctx, learnerID, displayName)
}

func (s *Service) newEvent(req RecordRequest) (*v1.CompletionEvent, error) {
	if !s.catalogue.KnownSeason(req.Season) {
		return nil, fmt.Errorf("%w: %w: %q", ErrInvalidCompletion, aggregation.ErrUnknownSeason, req.Season)
	}
	if req.GameID != "" && !s.catalogue.KnownGame(req.GameID) {
		return nil, fmt.Errorf("%w: unknown game %q", ErrInvalidCompletion, req.GameID)
	}

	evt := &v1.CompletionEvent{
		ID:               s.idFn(),
		LearnerID:        req.LearnerID,
		GameID:           req.GameID,
		Season:           req.Season,
		OccurredAt:       s.nowFn(),
		CompletionTimeMs: req.CompletionTimeMs,
		Score:            req.Score,
	}
	if err := evt.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCompletion, err)
	}
	return evt, nil
}

// publish tells history caches the key changed. Failure only delays cache freshness.
func (s *Service) publish(ctx context.Context, evt *v1.CompletionEvent) {
	if s.bus == nil {
		return
	}
	inv := notify.Invalidation{LearnerID: evt.LearnerID, GameID: evt.GameID, Season: evt.Season}
	if err := s.bus.Publish(ctx, inv); err != nil {
		slog.Warn("[Recorder] Failed to publish invalidation", "error", err, "learner_id", evt.LearnerID, "game_id", evt.GameID)
	}
}
