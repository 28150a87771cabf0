package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/projecteax/mozgnamaxa/internal/core/catalogue"
	"github.com/projecteax/mozgnamaxa/internal/core/storage"
	"github.com/projecteax/mozgnamaxa/internal/identity"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// AggregateReader is the read side of the completion store used by progress queries.
type AggregateReader interface {
	LoadAggregate(ctx context.Context, learnerID string) (aggregation.SeasonedAggregate, error)
	LoadOverallStats(ctx context.Context, learnerID string) (aggregation.OverallStats, error)
}

// Service implements the progress read path. It owns no storage; every response is
// recomputed from the aggregate document.
type Service struct {
	reader     AggregateReader
	thresholds aggregation.Thresholds
	identity   identity.Provider

	// loads collapses concurrent progress reads for one learner into a single store round trip.
	loads singleflight.Group
}

// NewService creates a new projection service.
func NewService(reader AggregateReader, thresholds aggregation.Thresholds, ident identity.Provider) *Service {
	if ident == nil {
		ident = identity.ContextProvider{}
	}
	if len(thresholds.Order) == 0 {
		thresholds = catalogue.Default().Thresholds()
	}
	return &Service{
		reader:     reader,
		thresholds: thresholds,
		identity:   ident,
	}
}

type loaded struct {
	agg   aggregation.SeasonedAggregate
	stats aggregation.OverallStats
}

// Progress returns the learner's summary, aggregate and lifetime stats. A learner without
// identity or without a profile gets empty progress, not an error.
func (s *Service) Progress(ctx context.Context, learnerID string) (*ProgressResponse, error) {
	if learnerID == "" {
		return s.empty(""), nil
	}

	v, err, _ := s.loads.Do(learnerID, func() (interface{}, error) {
		return s.load(ctx, learnerID)
	})
	if errors.Is(err, storage.ErrProfileNotFound) {
		slog.Debug("[Progress] No profile for learner, returning empty progress", "learner_id", learnerID)
		return s.empty(learnerID), nil
	}
	if err != nil {
		return nil, err
	}

	res := v.(*loaded)
	return &ProgressResponse{
		LearnerID: learnerID,
		Summary:   Summarize(res.agg, s.thresholds),
		Seasons:   res.agg.Clone(),
		Stats:     res.stats,
	}, nil
}

func (s *Service) load(ctx context.Context, learnerID string) (*loaded, error) {
	var res loaded
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		agg, err := s.reader.LoadAggregate(gctx, learnerID)
		if err != nil {
			return fmt.Errorf("load aggregate: %w", err)
		}
		res.agg = agg
		return nil
	})
	g.Go(func() error {
		stats, err := s.reader.LoadOverallStats(gctx, learnerID)
		if err != nil {
			return fmt.Errorf("load overall stats: %w", err)
		}
		res.stats = stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if res.agg == nil {
		res.agg = aggregation.SeasonedAggregate{}
	}
	return &res, nil
}

func (s *Service) empty(learnerID string) *ProgressResponse {
	return &ProgressResponse{
		LearnerID: learnerID,
		Summary:   Summarize(nil, s.thresholds),
		Seasons:   aggregation.SeasonedAggregate{},
	}
}
