package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	v1 "github.com/projecteax/mozgnamaxa/internal/api/v1"
	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/projecteax/mozgnamaxa/internal/core/storage"
)

// Store is an in-process storage.CompletionStore. Useful for tests and single-node demos;
// nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]*v1.Profile // keyed by learner id
	log      []*v1.CompletionEvent
	aggs     map[string]aggregation.SeasonedAggregate // keyed by profile id
	stats    map[string]aggregation.OverallStats      // keyed by profile id
}

var _ storage.CompletionStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		profiles: make(map[string]*v1.Profile),
		aggs:     make(map[string]aggregation.SeasonedAggregate),
		stats:    make(map[string]aggregation.OverallStats),
	}
}

func (s *Store) ResolveProfile(_ context.Context, learnerID string) (*v1.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[learnerID]
	if !ok {
		return nil, storage.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) EnsureProfile(_ context.Context, learnerID, displayName string) (*v1.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[learnerID]
	if !ok {
		p = &v1.Profile{
			ID:        uuid.NewString(),
			LearnerID: learnerID,
			CreatedAt: time.Now().UTC(),
		}
		s.profiles[learnerID] = p
	}
	if displayName != "" {
		p.DisplayName = displayName
	}
	cp := *p
	return &cp, nil
}

func (s *Store) AppendCompletion(_ context.Context, event *v1.CompletionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.LogSeq = int64(len(s.log) + 1)
	cp := *event
	s.log = append(s.log, &cp)
	return nil
}

func (s *Store) RetrieveCompletionsAfterCursor(_ context.Context, cursor int64, limit int) ([]*v1.CompletionEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// LogSeq is the 1-based slice index.
	start := int(cursor)
	if start < 0 {
		start = 0
	}
	if start >= len(s.log) {
		return nil, nil
	}
	end := len(s.log)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	out := make([]*v1.CompletionEvent, 0, end-start)
	for _, e := range s.log[start:end] {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) UpsertAggregate(_ context.Context, profile *v1.Profile, event *v1.CompletionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	agg, ok := s.aggs[profile.ID]
	if !ok {
		agg = make(aggregation.SeasonedAggregate)
		s.aggs[profile.ID] = agg
	}
	g, _ := agg.Game(event.Season, event.GameID)
	agg.Put(event.Season, event.GameID, g.Apply(event.Entry()))
	return nil
}

func (s *Store) UpdateOverallStats(_ context.Context, profile *v1.Profile, event *v1.CompletionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats[profile.ID] = s.stats[profile.ID].Apply(event.Entry())
	return nil
}

func (s *Store) LoadAggregate(_ context.Context, learnerID string) (aggregation.SeasonedAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[learnerID]
	if !ok {
		return nil, storage.ErrProfileNotFound
	}
	return s.aggs[p.ID].Clone(), nil
}

func (s *Store) LoadGameAggregate(_ context.Context, learnerID string, season aggregation.Season, gameID string) (*aggregation.GameAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[learnerID]
	if !ok {
		return nil, storage.ErrProfileNotFound
	}
	g, ok := s.aggs[p.ID].Game(season, gameID)
	if !ok {
		return nil, nil
	}
	g.Completions = append([]aggregation.CompletionEntry(nil), g.Completions...)
	return &g, nil
}

func (s *Store) LoadOverallStats(_ context.Context, learnerID string) (aggregation.OverallStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[learnerID]
	if !ok {
		return aggregation.OverallStats{}, storage.ErrProfileNotFound
	}
	return s.stats[p.ID], nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }
