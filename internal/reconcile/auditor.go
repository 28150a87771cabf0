// Package reconcile audits the completion log against the denormalized aggregate.
//
// The recorder writes the log and the aggregate in two non-transactional steps, so the two
// can drift (a failed upsert, a learner without a profile). The rule is: the aggregate is
// authoritative for the UI, the log is authoritative for audit. The auditor only reports
// drift; it never rewrites the aggregate.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	v1 "github.com/projecteax/mozgnamaxa/internal/api/v1"
	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/projecteax/mozgnamaxa/internal/core/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchSize   = 5000
	defaultWorkerCount = 8
	defaultMaxBatches  = 1000
	defaultInterval    = 15 * time.Minute
)

// DriftKind classifies a mismatch between the log and the aggregate.
type DriftKind string

const (
	// DriftLogAhead: the log has more completions than the aggregate counts.
	DriftLogAhead DriftKind = "log_ahead"
	// DriftAggregateAhead: the aggregate counts completions the log does not have.
	DriftAggregateAhead DriftKind = "aggregate_ahead"
	// DriftBestTime: counts agree but the stored best time is not the log minimum.
	DriftBestTime DriftKind = "best_time_mismatch"
	// DriftProfileMissing: the log has completions for a learner with no profile.
	DriftProfileMissing DriftKind = "profile_missing"
)

// Store is the subset of the completion store the auditor reads.
type Store interface {
	RetrieveCompletionsAfterCursor(ctx context.Context, cursor int64, limit int) ([]*v1.CompletionEvent, error)
	LoadAggregate(ctx context.Context, learnerID string) (aggregation.SeasonedAggregate, error)
}

// Options controls audit throughput.
type Options struct {
	Interval    time.Duration
	BatchSize   int
	WorkerCount int

	// MaxBatches caps a single log scan; an audit that hits it fails rather than
	// comparing a partial fold.
	MaxBatches int
}

func DefaultOptions() Options {
	return Options{
		Interval:    defaultInterval,
		BatchSize:   defaultBatchSize,
		WorkerCount: defaultWorkerCount,
		MaxBatches:  defaultMaxBatches,
	}
}

func (o Options) normalized() Options {
	n := o
	if n.Interval <= 0 {
		n.Interval = defaultInterval
	}
	if n.BatchSize <= 0 {
		n.BatchSize = defaultBatchSize
	}
	if n.WorkerCount <= 0 {
		n.WorkerCount = defaultWorkerCount
	}
	if n.MaxBatches <= 0 {
		n.MaxBatches = defaultMaxBatches
	}
	return n
}

// Drift is one mismatch for a (learner, season, game) key. Season and GameID are empty
// for DriftProfileMissing.
type Drift struct {
	LearnerID         string             `json:"learner_id"`
	Season            aggregation.Season `json:"season,omitempty"`
	GameID            string             `json:"game_id,omitempty"`
	Kind              DriftKind          `json:"kind"`
	LogCount          int64              `json:"log_count"`
	AggregateCount    int64              `json:"aggregate_count"`
	LogBestTime       *decimal.Decimal   `json:"log_best_time,omitempty"`
	AggregateBestTime *decimal.Decimal   `json:"aggregate_best_time,omitempty"`
}

// Report is the result of one audit.
type Report struct {
	StartedAt       time.Time     `json:"started_at"`
	Duration        time.Duration `json:"duration_ns"`
	Cursor          int64         `json:"cursor"`
	EventsScanned   int           `json:"events_scanned"`
	LearnersChecked int           `json:"learners_checked"`
	Drifts          []Drift       `json:"drifts"`
}

// tallyKey identifies one aggregate entry within a learner.
type tallyKey struct {
	Season aggregation.Season
	GameID string
}

// tally is the expected aggregate entry folded from the log.
type tally struct {
	count    decimal.Decimal
	bestTime *decimal.Decimal
}

// Auditor compares the log with the stored aggregates.
type Auditor struct {
	store Store
	opts  Options
	nowFn func() time.Time

	mu     sync.RWMutex
	latest *Report
}

func NewAuditor(store Store, opts Options) *Auditor {
	return &Auditor{
		store: store,
		opts:  opts.normalized(),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

// Latest returns the most recent completed report, or nil if no audit has run.
func (a *Auditor) Latest() *Report {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.latest
}

// Audit scans the whole log, folds it per learner and compares the result with each
// learner's stored aggregate.
func (a *Auditor) Audit(ctx context.Context) (*Report, error) {
	started := a.nowFn()

	byLearner, cursor, scanned, err := a.scanLog(ctx)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		drifts []Drift
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.WorkerCount)

	for learnerID, events := range byLearner {
		learnerID, events := learnerID, events
		g.Go(func() error {
			found, err := a.checkLearner(gctx, learnerID, events)
			if err != nil {
				return err
			}
			if len(found) > 0 {
				mu.Lock()
				drifts = append(drifts, found...)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if drifts == nil {
		drifts = []Drift{}
	}
	sortDrifts(drifts)
	report := &Report{
		StartedAt:       started,
		Duration:        a.nowFn().Sub(started),
		Cursor:          cursor,
		EventsScanned:   scanned,
		LearnersChecked: len(byLearner),
		Drifts:          drifts,
	}

	a.mu.Lock()
	a.latest = report
	a.mu.Unlock()

	slog.Info("[Auditor] Audit complete",
		"events_scanned", scanned,
		"learners_checked", len(byLearner),
		"drifts", len(drifts),
		"cursor", cursor,
	)
	return report, nil
}

// scanLog pages the log by cursor and groups events by learner.
func (a *Auditor) scanLog(ctx context.Context) (map[string][]*v1.CompletionEvent, int64, int, error) {
	byLearner := make(map[string][]*v1.CompletionEvent)
	var cursor int64
	scanned := 0

	for batch := 0; ; batch++ {
		if batch >= a.opts.MaxBatches {
			slog.Warn("[Auditor] Log scan reached maximum batch limit",
				"max_batches", a.opts.MaxBatches,
				"events_scanned", scanned,
			)
			return nil, 0, 0, fmt.Errorf("log scan exceeded %d batches (%d events)", a.opts.MaxBatches, scanned)
		}

		events, err := a.store.RetrieveCompletionsAfterCursor(ctx, cursor, a.opts.BatchSize)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("query completions: %w", err)
		}
		for _, evt := range events {
			byLearner[evt.LearnerID] = append(byLearner[evt.LearnerID], evt)
		}
		scanned += len(events)
		if len(events) > 0 {
			cursor = events[len(events)-1].LogSeq
		}
		if len(events) < a.opts.BatchSize {
			return byLearner, cursor, scanned, nil
		}
	}
}

func (a *Auditor) checkLearner(ctx context.Context, learnerID string, events []*v1.CompletionEvent) ([]Drift, error) {
	expected := foldEvents(events)

	stored, err := a.store.LoadAggregate(ctx, learnerID)
	if errors.Is(err, storage.ErrProfileNotFound) {
		return []Drift{{
			LearnerID: learnerID,
			Kind:      DriftProfileMissing,
			LogCount:  int64(len(events)),
		}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load aggregate for %s: %w", learnerID, err)
	}

	return compare(learnerID, expected, stored), nil
}

// foldEvents rebuilds the expected per-(season, game) tallies with the same fold
// operators the write path uses.
func foldEvents(events []*v1.CompletionEvent) map[tallyKey]tally {
	out := make(map[tallyKey]tally)
	for _, evt := range events {
		key := tallyKey{Season: evt.Season, GameID: evt.GameID}
		t, ok := out[key]
		if !ok {
			t.count = aggregation.OpCount.Seed(decimal.Zero)
		} else {
			t.count = aggregation.OpCount.Merge(t.count, decimal.Zero)
		}
		t.bestTime = aggregation.FoldOptional(aggregation.OpMin, t.bestTime, evt.CompletionTimeMs)
		out[key] = t
	}
	return out
}

func compare(learnerID string, expected map[tallyKey]tally, stored aggregation.SeasonedAggregate) []Drift {
	var drifts []Drift

	for key, want := range expected {
		got, _ := stored.Game(key.Season, key.GameID)
		logCount := want.count.IntPart()

		d := Drift{
			LearnerID:         learnerID,
			Season:            key.Season,
			GameID:            key.GameID,
			LogCount:          logCount,
			AggregateCount:    got.Completed,
			LogBestTime:       want.bestTime,
			AggregateBestTime: got.BestTime,
		}
		switch {
		case got.Completed < logCount:
			d.Kind = DriftLogAhead
		case got.Completed > logCount:
			d.Kind = DriftAggregateAhead
		case !sameDecimal(want.bestTime, got.BestTime):
			d.Kind = DriftBestTime
		default:
			continue
		}
		drifts = append(drifts, d)
	}

	for season, games := range stored {
		for gameID, got := range games {
			if got.Completed <= 0 {
				continue
			}
			if _, ok := expected[tallyKey{Season: season, GameID: gameID}]; ok {
				continue
			}
			drifts = append(drifts, Drift{
				LearnerID:         learnerID,
				Season:            season,
				GameID:            gameID,
				Kind:              DriftAggregateAhead,
				AggregateCount:    got.Completed,
				AggregateBestTime: got.BestTime,
			})
		}
	}
	return drifts
}

func sameDecimal(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func sortDrifts(drifts []Drift) {
	sort.Slice(drifts, func(i, j int) bool {
		if drifts[i].LearnerID != drifts[j].LearnerID {
			return drifts[i].LearnerID < drifts[j].LearnerID
		}
		if drifts[i].Season != drifts[j].Season {
			return drifts[i].Season < drifts[j].Season
		}
		return drifts[i].GameID < drifts[j].GameID
	})
}
