package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	v1 "github.com/projecteax/mozgnamaxa/internal/api/v1"
	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/projecteax/mozgnamaxa/internal/core/partition"
	"github.com/projecteax/mozgnamaxa/internal/core/storage"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Register sqlite driver
)

const timeLayout = time.RFC3339Nano

// Store implements storage.CompletionStore on an embedded SQLite file.
// SQLite has a single writer, so the pool is pinned to one connection and every
// aggregate fold runs as read-modify-write inside a transaction on that connection.
type Store struct {
	db *sql.DB
}

var _ storage.CompletionStore = (*Store)(nil)

// Open creates or opens the database at path and applies pragmas.
// Schema is managed by migrations; call after RunMigrations on DB().
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Single writer to avoid SQLITE_BUSY errors
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	slog.Info("[SQLite] Database opened", "path", path)
	return &Store{db: db}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// DB returns the underlying *sql.DB for migrations.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// AppendCompletion inserts the event into the log and sets LogSeq from the rowid.
func (s *Store) AppendCompletion(ctx context.Context, event *v1.CompletionEvent) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO completion_log(id, learner_id, game_id, season, occurred_at, completion_time_ms, score)
		VALUES(?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.LearnerID,
		event.GameID,
		event.Season.String(),
		event.OccurredAt.UTC().Format(timeLayout),
		decimalText(event.CompletionTimeMs),
		decimalText(event.Score),
	)
	if err != nil {
		return fmt.Errorf("failed to append completion: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read log_seq: %w", err)
	}
	event.LogSeq = seq
	return nil
}

// RetrieveCompletionsAfterCursor fetches log rows after a cursor (log_seq) in strict total order.
func (s *Store) RetrieveCompletionsAfterCursor(ctx context.Context, cursor int64, limit int) ([]*v1.CompletionEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, learner_id, game_id, season, occurred_at, completion_time_ms, score, log_seq
		FROM completion_log
		WHERE log_seq > ?
		ORDER BY log_seq ASC
		LIMIT ?`, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions by cursor: %w", err)
	}
	defer rows.Close()

	var events []*v1.CompletionEvent
	for rows.Next() {
		var (
			evt                   v1.CompletionEvent
			season, occurredAt    string
			completionTime, score sql.NullString
		)
		if err := rows.Scan(&evt.ID, &evt.LearnerID, &evt.GameID, &season, &occurredAt, &completionTime, &score, &evt.LogSeq); err != nil {
			return nil, fmt.Errorf("failed to scan completion row: %w", err)
		}
		evt.Season = aggregation.Season(season)
		if evt.OccurredAt, err = time.Parse(timeLayout, occurredAt); err != nil {
			return nil, fmt.Errorf("parse occurred_at %q: %w", occurredAt, err)
		}
		if evt.CompletionTimeMs, err = parseDecimalText(completionTime); err != nil {
			return nil, err
		}
		if evt.Score, err = parseDecimalText(score); err != nil {
			return nil, err
		}
		events = append(events, &evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating completions: %w", err)
	}
	return events, nil
}

// ResolveProfile returns storage.ErrProfileNotFound when the learner has no profile.
func (s *Store) ResolveProfile(ctx context.Context, learnerID string) (*v1.Profile, error) {
	return s.resolveProfile(ctx, s.db, learnerID)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) resolveProfile(ctx context.Context, q queryer, learnerID string) (*v1.Profile, error) {
	var (
		p         v1.Profile
		createdAt string
	)
	err := q.QueryRowContext(ctx,
		`SELECT id, learner_id, display_name, created_at FROM profiles WHERE learner_id = ?`,
		learnerID,
	).Scan(&p.ID, &p.LearnerID, &p.DisplayName, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile: %w", err)
	}
	if p.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return &p, nil
}

// EnsureProfile creates the profile if missing; a non-empty displayName replaces the stored one.
func (s *Store) EnsureProfile(ctx context.Context, learnerID, displayName string) (*v1.Profile, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles(id, learner_id, display_name, created_at)
		VALUES(?, ?, ?, ?)
		ON CONFLICT(learner_id) DO UPDATE SET
			display_name = CASE
				WHEN excluded.display_name <> '' THEN excluded.display_name
				ELSE profiles.display_name
			END`,
		uuid.NewString(),
		learnerID,
		displayName,
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}
	return s.ResolveProfile(ctx, learnerID)
}

// UpsertAggregate folds the completion into the (profile, season, game) row with
// aggregation.GameAggregate.Apply, inside one transaction.
func (s *Store) UpsertAggregate(ctx context.Context, profile *v1.Profile, event *v1.CompletionEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("game_aggregate upsert: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	current, err := loadGameRow(ctx, tx, profile.ID, event.Season, event.GameID)
	if err != nil {
		return fmt.Errorf("game_aggregate upsert: %w", err)
	}
	var base aggregation.GameAggregate
	if current != nil {
		base = *current
	}
	next := base.Apply(event.Entry())

	completionsJSON, err := json.Marshal(next.Completions)
	if err != nil {
		return fmt.Errorf("game_aggregate upsert: marshal completions: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO game_aggregates(
			partition_id, profile_id, season, game_id,
			completed, best_time, best_score, last_played, completions, updated_at
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_id, season, game_id) DO UPDATE SET
			completed   = excluded.completed,
			best_time   = excluded.best_time,
			best_score  = excluded.best_score,
			last_played = excluded.last_played,
			completions = excluded.completions,
			updated_at  = excluded.updated_at`,
		partition.For(profile.LearnerID),
		profile.ID,
		event.Season.String(),
		event.GameID,
		next.Completed,
		decimalText(next.BestTime),
		decimalText(next.BestScore),
		next.LastPlayed.UTC().Format(timeLayout),
		string(completionsJSON),
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("game_aggregate upsert %s/%s: %w", event.Season, event.GameID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("game_aggregate upsert: commit: %w", err)
	}
	return nil
}

// UpdateOverallStats folds the completion into the profile's lifetime stats.
func (s *Store) UpdateOverallStats(ctx context.Context, profile *v1.Profile, event *v1.CompletionEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("overall_stats upsert: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	current, err := loadStatsRow(ctx, tx, profile.ID)
	if err != nil {
		return fmt.Errorf("overall_stats upsert: %w", err)
	}
	next := current.Apply(event.Entry())

	_, err = tx.ExecContext(ctx, `
		INSERT INTO overall_stats(profile_id, total_games_completed, total_play_time_ms, last_session_at, updated_at)
		VALUES(?, ?, ?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET
			total_games_completed = excluded.total_games_completed,
			total_play_time_ms    = excluded.total_play_time_ms,
			last_session_at       = excluded.last_session_at,
			updated_at            = excluded.updated_at`,
		profile.ID,
		next.TotalGamesCompleted,
		next.TotalPlayTimeMs.String(),
		next.LastSessionAt.UTC().Format(timeLayout),
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("overall_stats upsert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("overall_stats upsert: commit: %w", err)
	}
	return nil
}

// LoadAggregate returns every (season, game) entry stored for the learner.
func (s *Store) LoadAggregate(ctx context.Context, learnerID string) (aggregation.SeasonedAggregate, error) {
	profile, err := s.ResolveProfile(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT season, game_id, completed, best_time, best_score, last_played, completions
		FROM game_aggregates
		WHERE profile_id = ?
		ORDER BY season ASC, game_id ASC`, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("load aggregate: %w", err)
	}
	defer rows.Close()

	agg := make(aggregation.SeasonedAggregate)
	for rows.Next() {
		var season, gameID string
		var r gameRow
		if err := rows.Scan(&season, &gameID, &r.completed, &r.bestTime, &r.bestScore, &r.lastPlayed, &r.completions); err != nil {
			return nil, fmt.Errorf("load aggregate: scan row: %w", err)
		}
		g, err := r.build()
		if err != nil {
			return nil, fmt.Errorf("load aggregate %s/%s: %w", season, gameID, err)
		}
		agg.Put(aggregation.Season(season), gameID, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load aggregate: iterate rows: %w", err)
	}
	return agg, nil
}

// LoadGameAggregate returns one entry, or nil when the game was never played.
func (s *Store) LoadGameAggregate(ctx context.Context, learnerID string, season aggregation.Season, gameID string) (*aggregation.GameAggregate, error) {
	profile, err := s.ResolveProfile(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	g, err := loadGameRow(ctx, s.db, profile.ID, season, gameID)
	if err != nil {
		return nil, fmt.Errorf("load game aggregate: %w", err)
	}
	return g, nil
}

// LoadOverallStats returns zero-valued stats when nothing was recorded yet.
func (s *Store) LoadOverallStats(ctx context.Context, learnerID string) (aggregation.OverallStats, error) {
	profile, err := s.ResolveProfile(ctx, learnerID)
	if err != nil {
		return aggregation.OverallStats{}, err
	}
	stats, err := loadStatsRow(ctx, s.db, profile.ID)
	if err != nil {
		return aggregation.OverallStats{}, fmt.Errorf("load overall stats: %w", err)
	}
	return stats, nil
}

type gameRow struct {
	completed   int64
	bestTime    sql.NullString
	bestScore   sql.NullString
	lastPlayed  string
	completions string
}

func (r gameRow) build() (aggregation.GameAggregate, error) {
	g := aggregation.GameAggregate{Completed: r.completed}

	var err error
	if g.BestTime, err = parseDecimalText(r.bestTime); err != nil {
		return g, err
	}
	if g.BestScore, err = parseDecimalText(r.bestScore); err != nil {
		return g, err
	}
	if r.lastPlayed != "" {
		t, err := time.Parse(timeLayout, r.lastPlayed)
		if err != nil {
			return g, fmt.Errorf("parse last_played %q: %w", r.lastPlayed, err)
		}
		g.LastPlayed = &t
	}
	if err := json.Unmarshal([]byte(r.completions), &g.Completions); err != nil {
		return g, fmt.Errorf("unmarshal completions: %w", err)
	}
	return g, nil
}

func loadGameRow(ctx context.Context, q queryer, profileID string, season aggregation.Season, gameID string) (*aggregation.GameAggregate, error) {
	var r gameRow
	err := q.QueryRowContext(ctx, `
		SELECT completed, best_time, best_score, last_played, completions
		FROM game_aggregates
		WHERE profile_id = ? AND season = ? AND game_id = ?`,
		profileID, season.String(), gameID,
	).Scan(&r.completed, &r.bestTime, &r.bestScore, &r.lastPlayed, &r.completions)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g, err := r.build()
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func loadStatsRow(ctx context.Context, q queryer, profileID string) (aggregation.OverallStats, error) {
	var (
		stats       aggregation.OverallStats
		playTime    string
		lastSession sql.NullString
	)
	err := q.QueryRowContext(ctx, `
		SELECT total_games_completed, total_play_time_ms, last_session_at
		FROM overall_stats
		WHERE profile_id = ?`, profileID,
	).Scan(&stats.TotalGamesCompleted, &playTime, &lastSession)
	if errors.Is(err, sql.ErrNoRows) {
		return aggregation.OverallStats{}, nil
	}
	if err != nil {
		return stats, err
	}
	if stats.TotalPlayTimeMs, err = decimal.NewFromString(playTime); err != nil {
		return stats, fmt.Errorf("parse total_play_time_ms %q: %w", playTime, err)
	}
	if lastSession.Valid {
		t, err := time.Parse(timeLayout, lastSession.String)
		if err != nil {
			return stats, fmt.Errorf("parse last_session_at %q: %w", lastSession.String, err)
		}
		stats.LastSessionAt = &t
	}
	return stats, nil
}

// decimalText stores optional measures as exact decimal strings (nil → NULL).
func decimalText(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseDecimalText(s sql.NullString) (*decimal.Decimal, error) {
	if !s.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return nil, fmt.Errorf("parse decimal %q: %w", s.String, err)
	}
	return &d, nil
}
