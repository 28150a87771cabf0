package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	v1 "github.com/projecteax/mozgnamaxa/internal/api/v1"
	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/projecteax/mozgnamaxa/internal/core/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func ms(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestStore_RecordsAcrossSeasons(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	profile, err := s.EnsureProfile(ctx, "learner-1", "")
	require.NoError(t, err)

	now := time.Now().UTC()
	for _, timeMs := range []*decimal.Decimal{ms(4200), ms(3100)} {
		evt := &v1.CompletionEvent{ID: "e", LearnerID: "learner-1", GameID: "maze-game", Season: aggregation.SeasonWiosna, OccurredAt: now, CompletionTimeMs: timeMs}
		require.NoError(t, s.AppendCompletion(ctx, evt))
		require.NoError(t, s.UpsertAggregate(ctx, profile, evt))
		require.NoError(t, s.UpdateOverallStats(ctx, profile, evt))
	}

	g, err := s.LoadGameAggregate(ctx, "learner-1", aggregation.SeasonWiosna, "maze-game")
	require.NoError(t, err)
	require.Equal(t, int64(2), g.Completed)
	require.True(t, decimal.NewFromInt(3100).Equal(*g.BestTime))

	none, err := s.LoadGameAggregate(ctx, "learner-1", aggregation.SeasonZima, "maze-game")
	require.NoError(t, err)
	require.Nil(t, none)

	stats, err := s.LoadOverallStats(ctx, "learner-1")
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalGamesCompleted)
}

func TestStore_ReturnedAggregateIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	profile, _ := s.EnsureProfile(ctx, "learner-1", "")

	evt := &v1.CompletionEvent{LearnerID: "learner-1", GameID: "puzzle", Season: aggregation.SeasonLato, OccurredAt: time.Now()}
	require.NoError(t, s.UpsertAggregate(ctx, profile, evt))

	agg, err := s.LoadAggregate(ctx, "learner-1")
	require.NoError(t, err)
	agg.Put(aggregation.SeasonLato, "puzzle", aggregation.GameAggregate{Completed: 99})

	again, err := s.LoadAggregate(ctx, "learner-1")
	require.NoError(t, err)
	g, _ := again.Game(aggregation.SeasonLato, "puzzle")
	require.Equal(t, int64(1), g.Completed)
}

func TestStore_UnknownLearner(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.ResolveProfile(ctx, "ghost")
	require.ErrorIs(t, err, storage.ErrProfileNotFound)
	_, err = s.LoadAggregate(ctx, "ghost")
	require.ErrorIs(t, err, storage.ErrProfileNotFound)
}

func TestStore_LogCursor(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for i := 0; i < 4; i++ {
		require.NoError(t, s.AppendCompletion(ctx, &v1.CompletionEvent{LearnerID: "l", GameID: "g", Season: aggregation.SeasonZima}))
	}

	page, err := s.RetrieveCompletionsAfterCursor(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, int64(2), page[0].LogSeq)
	require.Equal(t, int64(3), page[1].LogSeq)

	tail, err := s.RetrieveCompletionsAfterCursor(ctx, 4, 10)
	require.NoError(t, err)
	require.Empty(t, tail)
}

func TestStore_ConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	profile, _ := s.EnsureProfile(ctx, "learner-1", "")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			evt := &v1.CompletionEvent{LearnerID: "learner-1", GameID: "maze-game", Season: aggregation.SeasonWiosna, OccurredAt: time.Now()}
			_ = s.UpsertAggregate(ctx, profile, evt)
		}()
	}
	wg.Wait()

	g, err := s.LoadGameAggregate(ctx, "learner-1", aggregation.SeasonWiosna, "maze-game")
	require.NoError(t, err)
	require.Equal(t, int64(50), g.Completed)
	require.Len(t, g.Completions, 50)
}
