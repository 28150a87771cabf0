package v1

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func validEvent() CompletionEvent {
	return CompletionEvent{
		ID:         "0b7d3c5e-2d1f-4f57-9a3c-7a2c1c2b9d11",
		LearnerID:  "learner-1",
		GameID:     "maze-game",
		Season:     aggregation.SeasonWiosna,
		OccurredAt: time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC),
	}
}

func TestCompletionEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CompletionEvent)
		wantErr bool
	}{
		{name: "valid without measures", mutate: func(*CompletionEvent) {}},
		{name: "valid with measures", mutate: func(e *CompletionEvent) {
			e.CompletionTimeMs = dec(4200)
			e.Score = dec(0)
		}},
		{name: "missing id", mutate: func(e *CompletionEvent) { e.ID = "" }, wantErr: true},
		{name: "missing learner", mutate: func(e *CompletionEvent) { e.LearnerID = "" }, wantErr: true},
		{name: "missing game", mutate: func(e *CompletionEvent) { e.GameID = "" }, wantErr: true},
		{name: "unknown season", mutate: func(e *CompletionEvent) { e.Season = "monsun" }, wantErr: true},
		{name: "missing occurred_at", mutate: func(e *CompletionEvent) { e.OccurredAt = time.Time{} }, wantErr: true},
		{name: "negative time", mutate: func(e *CompletionEvent) { e.CompletionTimeMs = dec(-1) }, wantErr: true},
		{name: "negative score", mutate: func(e *CompletionEvent) { e.Score = dec(-5) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt := validEvent()
			tt.mutate(&evt)
			err := evt.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCompletionEvent_UnknownSeasonWrapsSentinel(t *testing.T) {
	evt := validEvent()
	evt.Season = "Wiosna"
	require.ErrorIs(t, evt.Validate(), aggregation.ErrUnknownSeason)
}

func TestCompletionEvent_Entry(t *testing.T) {
	evt := validEvent()
	evt.CompletionTimeMs = dec(3100)

	entry := evt.Entry()
	require.Equal(t, evt.OccurredAt, entry.Timestamp)
	require.True(t, decimal.NewFromInt(3100).Equal(*entry.CompletionTimeMs))
	require.Nil(t, entry.Score)
}

func TestCompletionEvent_LogSeqNotSerialized(t *testing.T) {
	evt := validEvent()
	evt.LogSeq = 42

	raw, err := json.Marshal(evt)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "42")
	require.Contains(t, string(raw), `"season":"wiosna"`)
	require.NotContains(t, string(raw), "completion_time_ms")
}
