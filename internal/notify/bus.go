package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
)

// ErrClosed is returned when publishing on or subscribing to a closed bus.
var ErrClosed = errors.New("notify: bus closed")

// Invalidation tells history caches that a (learner, game, season) entry changed.
type Invalidation struct {
	LearnerID string             `json:"learner_id"`
	GameID    string             `json:"game_id"`
	Season    aggregation.Season `json:"season"`
}

// Bus fans invalidations out to every subscriber, possibly across instances.
type Bus interface {
	Publish(ctx context.Context, inv Invalidation) error
	// Subscribe registers fn until ctx is cancelled. fn must not block.
	Subscribe(ctx context.Context, fn func(Invalidation)) error
	Close() error
}

// Local is an in-process Bus. Publish calls subscribers synchronously.
type Local struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(Invalidation)
	closed bool
}

var _ Bus = (*Local)(nil)

func NewLocal() *Local {
	return &Local{subs: make(map[int]func(Invalidation))}
}

func (l *Local) Publish(_ context.Context, inv Invalidation) error {
	l.mu.RLock()
	if l.closed {
		l.mu.RUnlock()
		return ErrClosed
	}
	subs := make([]func(Invalidation), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.RUnlock()

	for _, fn := range subs {
		fn(inv)
	}
	slog.Debug("[Notify] Published invalidation",
		"learner_id", inv.LearnerID,
		"game_id", inv.GameID,
		"season", inv.Season,
		"subscribers", len(subs))
	return nil
}

func (l *Local) Subscribe(ctx context.Context, fn func(Invalidation)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrClosed
	}

	id := l.nextID
	l.nextID++
	l.subs[id] = fn

	go func() {
		<-ctx.Done()
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}()
	return nil
}

func (l *Local) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.subs = make(map[int]func(Invalidation))
	return nil
}
