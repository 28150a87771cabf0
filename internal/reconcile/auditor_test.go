package reconcile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	v1 "github.com/projecteax/mozgnamaxa/internal/api/v1"
	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/projecteax/mozgnamaxa/internal/core/storage/memory"
	storagemocks "github.com/projecteax/mozgnamaxa/internal/mocks/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t     *testing.T
	store *memory.Store
	seq   int
}

func newFixture(t *testing.T, learners ...string) *fixture {
	store := memory.NewStore()
	for _, l := range learners {
		_, err := store.EnsureProfile(context.Background(), l, "")
		require.NoError(t, err)
	}
	return &fixture{t: t, store: store}
}

func (f *fixture) event(learnerID string, season aggregation.Season, gameID string, timeMs int64) *v1.CompletionEvent {
	f.seq++
	evt := &v1.CompletionEvent{
		ID:         fmt.Sprintf("evt-%d", f.seq),
		LearnerID:  learnerID,
		GameID:     gameID,
		Season:     season,
		OccurredAt: time.Date(2026, 5, 1, 10, f.seq, 0, 0, time.UTC),
	}
	if timeMs > 0 {
		d := decimal.NewFromInt(timeMs)
		evt.CompletionTimeMs = &d
	}
	return evt
}

// recordBoth performs the full dual write.
func (f *fixture) recordBoth(evt *v1.CompletionEvent) {
	f.appendOnly(evt)
	f.upsertOnly(evt)
}

func (f *fixture) appendOnly(evt *v1.CompletionEvent) {
	require.NoError(f.t, f.store.AppendCompletion(context.Background(), evt))
}

func (f *fixture) upsertOnly(evt *v1.CompletionEvent) {
	ctx := context.Background()
	profile, err := f.store.ResolveProfile(ctx, evt.LearnerID)
	require.NoError(f.t, err)
	require.NoError(f.t, f.store.UpsertAggregate(ctx, profile, evt))
}

func TestAuditor_NoDriftWhenConsistent(t *testing.T) {
	f := newFixture(t, "learner-1", "learner-2")
	f.recordBoth(f.event("learner-1", aggregation.SeasonWiosna, "maze-game", 4200))
	f.recordBoth(f.event("learner-1", aggregation.SeasonWiosna, "maze-game", 3100))
	f.recordBoth(f.event("learner-1", aggregation.SeasonZima, "maze-game", 0))
	f.recordBoth(f.event("learner-2", aggregation.SeasonLato, "memory", 900))

	auditor := NewAuditor(f.store, Options{BatchSize: 2, WorkerCount: 2})
	report, err := auditor.Audit(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Drifts)
	assert.Equal(t, 4, report.EventsScanned)
	assert.Equal(t, 2, report.LearnersChecked)
	assert.Equal(t, int64(4), report.Cursor)
	assert.Same(t, report, auditor.Latest())
}

func TestAuditor_DetectsDrift(t *testing.T) {
	f := newFixture(t, "learner-1")

	// log ahead: upsert failed after append
	f.recordBoth(f.event("learner-1", aggregation.SeasonWiosna, "maze-game", 4200))
	f.appendOnly(f.event("learner-1", aggregation.SeasonWiosna, "maze-game", 3100))

	// aggregate ahead: entry with no log rows
	f.upsertOnly(f.event("learner-1", aggregation.SeasonLato, "memory", 0))

	// best time mismatch: same count, different times
	f.appendOnly(f.event("learner-1", aggregation.SeasonJesien, "puzzle", 1000))
	f.upsertOnly(f.event("learner-1", aggregation.SeasonJesien, "puzzle", 2000))

	// profile missing
	f.appendOnly(f.event("ghost", aggregation.SeasonZima, "maze-game", 0))

	report, err := NewAuditor(f.store, Options{}).Audit(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Drifts, 4)

	kinds := map[string]DriftKind{}
	for _, d := range report.Drifts {
		kinds[d.LearnerID+"/"+string(d.Season)+"/"+d.GameID] = d.Kind
	}
	assert.Equal(t, map[string]DriftKind{
		"ghost//":                    DriftProfileMissing,
		"learner-1/wiosna/maze-game": DriftLogAhead,
		"learner-1/lato/memory":      DriftAggregateAhead,
		"learner-1/jesien/puzzle":    DriftBestTime,
	}, kinds)

	for _, d := range report.Drifts {
		if d.Kind == DriftLogAhead {
			assert.Equal(t, int64(2), d.LogCount)
			assert.Equal(t, int64(1), d.AggregateCount)
			assert.True(t, decimal.NewFromInt(3100).Equal(*d.LogBestTime))
		}
	}
}

func TestAuditor_StoreErrors(t *testing.T) {
	t.Run("log query fails", func(t *testing.T) {
		store := storagemocks.NewCompletionStore(t)
		store.EXPECT().RetrieveCompletionsAfterCursor(mock.Anything, int64(0), 10).Return(nil, errors.New("timeout")).Once()

		_, err := NewAuditor(store, Options{BatchSize: 10}).Audit(context.Background())
		require.ErrorContains(t, err, "query completions")
	})

	t.Run("aggregate load fails", func(t *testing.T) {
		store := storagemocks.NewCompletionStore(t)
		store.EXPECT().RetrieveCompletionsAfterCursor(mock.Anything, int64(0), 10).
			Return([]*v1.CompletionEvent{{ID: "e1", LearnerID: "l", GameID: "g", Season: aggregation.SeasonLato, LogSeq: 1}}, nil).Once()
		store.EXPECT().LoadAggregate(mock.Anything, "l").Return(nil, errors.New("timeout")).Once()

		auditor := NewAuditor(store, Options{BatchSize: 10})
		_, err := auditor.Audit(context.Background())
		require.ErrorContains(t, err, "load aggregate for l")
		assert.Nil(t, auditor.Latest())
	})
}

func TestAuditor_MaxBatches(t *testing.T) {
	f := newFixture(t, "learner-1")
	for i := 0; i < 5; i++ {
		f.recordBoth(f.event("learner-1", aggregation.SeasonWiosna, "maze-game", 0))
	}

	_, err := NewAuditor(f.store, Options{BatchSize: 1, MaxBatches: 3}).Audit(context.Background())
	require.ErrorContains(t, err, "exceeded 3 batches")
}

func TestAuditor_StartRunsImmediately(t *testing.T) {
	f := newFixture(t, "learner-1")
	f.recordBoth(f.event("learner-1", aggregation.SeasonWiosna, "maze-game", 0))

	auditor := NewAuditor(f.store, Options{Interval: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- auditor.Start(ctx) }()

	require.Eventually(t, func() bool { return auditor.Latest() != nil }, 2*time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestAuditor_HandleDrift(t *testing.T) {
	gin.SetMode(gin.TestMode)

	f := newFixture(t, "learner-1")
	f.appendOnly(f.event("learner-1", aggregation.SeasonWiosna, "maze-game", 0))

	auditor := NewAuditor(f.store, Options{})
	r := gin.New()
	auditor.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/drift", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"log_ahead"`)

	f.upsertOnly(f.event("learner-1", aggregation.SeasonWiosna, "maze-game", 0))

	// Cached report until refresh is requested.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/drift", nil))
	assert.Contains(t, w.Body.String(), `"kind":"log_ahead"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/admin/drift?refresh=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"drifts":[]`)
}
