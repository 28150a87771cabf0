package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/stretchr/testify/require"
)

func TestLocal_FansOutToSubscribers(t *testing.T) {
	bus := NewLocal()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []Invalidation
	for i := 0; i < 2; i++ {
		require.NoError(t, bus.Subscribe(ctx, func(inv Invalidation) {
			mu.Lock()
			got = append(got, inv)
			mu.Unlock()
		}))
	}

	inv := Invalidation{LearnerID: "learner-1", GameID: "maze-game", Season: aggregation.SeasonWiosna}
	require.NoError(t, bus.Publish(context.Background(), inv))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []Invalidation{inv, inv}, got)
}

func TestLocal_CancelledSubscriberStopsReceiving(t *testing.T) {
	bus := NewLocal()
	ctx, cancel := context.WithCancel(context.Background())

	calls := make(chan Invalidation, 4)
	require.NoError(t, bus.Subscribe(ctx, func(inv Invalidation) { calls <- inv }))
	cancel()

	require.Eventually(t, func() bool {
		bus.mu.RLock()
		defer bus.mu.RUnlock()
		return len(bus.subs) == 0
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.Publish(context.Background(), Invalidation{LearnerID: "l", GameID: "g", Season: aggregation.SeasonLato}))
	require.Empty(t, calls)
}

func TestLocal_Closed(t *testing.T) {
	bus := NewLocal()
	require.NoError(t, bus.Close())

	require.ErrorIs(t, bus.Publish(context.Background(), Invalidation{}), ErrClosed)
	require.ErrorIs(t, bus.Subscribe(context.Background(), func(Invalidation) {}), ErrClosed)
}

func TestInvalidationCodec(t *testing.T) {
	inv := Invalidation{LearnerID: "learner-1", GameID: "maze-game", Season: aggregation.SeasonZima}

	raw, err := encodeInvalidation(inv)
	require.NoError(t, err)
	require.JSONEq(t, `{"learner_id":"learner-1","game_id":"maze-game","season":"zima"}`, string(raw))

	decoded, err := decodeInvalidation(string(raw))
	require.NoError(t, err)
	require.Equal(t, inv, decoded)

	for _, bad := range []string{
		`not json`,
		`{"learner_id":"","game_id":"g","season":"zima"}`,
		`{"learner_id":"l","game_id":"g","season":"monsun"}`,
	} {
		_, err := decodeInvalidation(bad)
		require.Error(t, err, bad)
	}
}

func TestNewRedis_RequiresAddress(t *testing.T) {
	_, err := NewRedis("  ", "")
	require.ErrorContains(t, err, "address required")
}
