package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel used when none is configured.
const DefaultChannel = "mozgnamaxa:invalidations"

// Redis is a Bus backed by Redis pub/sub, so a completion recorded on one instance
// invalidates history caches on every other instance.
type Redis struct {
	rdb     *goredis.Client
	channel string
}

var _ Bus = (*Redis)(nil)

// NewRedis connects to addr and verifies the connection with a ping.
func NewRedis(addr, channel string) (*Redis, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("notify: redis address required")
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		channel = DefaultChannel
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	slog.Info("[Notify] Redis bus connected", "addr", addr, "channel", channel)
	return &Redis{rdb: rdb, channel: channel}, nil
}

func (b *Redis) Publish(ctx context.Context, inv Invalidation) error {
	raw, err := encodeInvalidation(inv)
	if err != nil {
		return err
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

func (b *Redis) Subscribe(ctx context.Context, fn func(Invalidation)) error {
	if fn == nil {
		return fmt.Errorf("notify: subscriber callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				inv, err := decodeInvalidation(m.Payload)
				if err != nil {
					slog.Warn("[Notify] Bad invalidation payload", "error", err)
					continue
				}
				fn(inv)
			}
		}
	}()

	return nil
}

func (b *Redis) Close() error {
	return b.rdb.Close()
}

func encodeInvalidation(inv Invalidation) ([]byte, error) {
	raw, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("encode invalidation: %w", err)
	}
	return raw, nil
}

func decodeInvalidation(payload string) (Invalidation, error) {
	var inv Invalidation
	if err := json.Unmarshal([]byte(payload), &inv); err != nil {
		return Invalidation{}, fmt.Errorf("decode invalidation: %w", err)
	}
	if inv.LearnerID == "" || inv.GameID == "" || !inv.Season.Valid() {
		return Invalidation{}, fmt.Errorf("decode invalidation: incomplete key %+v", inv)
	}
	return inv, nil
}
