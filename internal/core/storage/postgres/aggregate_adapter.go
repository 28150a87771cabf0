package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/projecteax/mozgnamaxa/internal/api/v1"
	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/projecteax/mozgnamaxa/internal/core/partition"
	"github.com/projecteax/mozgnamaxa/internal/core/storage"
	"github.com/shopspring/decimal"
)

const (
	// queryUpsertGameAggregate folds one completion into a (profile, season, game) row.
	// The merge runs inside a single statement, so concurrent writers serialize on the
	// row lock and no completion entry is lost. LEAST/GREATEST ignore NULL inputs, which
	// keeps best_time unchanged when a completion carries no time.
	queryUpsertGameAggregate = `
		INSERT INTO game_aggregates (
			partition_id, profile_id, season, game_id,
			completed, best_time, best_score, last_played, completions, updated_at
		) VALUES ($1, $2, $3, $4, 1, $5, $6, $7, $8::jsonb, $9)
		ON CONFLICT (profile_id, season, game_id)
		DO UPDATE SET
			completed   = game_aggregates.completed + 1,
			best_time   = LEAST(game_aggregates.best_time, EXCLUDED.best_time),
			best_score  = GREATEST(game_aggregates.best_score, EXCLUDED.best_score),
			last_played = EXCLUDED.last_played,
			completions = game_aggregates.completions || EXCLUDED.completions,
			updated_at  = EXCLUDED.updated_at
	`

	queryUpsertOverallStats = `
		INSERT INTO overall_stats (
			profile_id, total_games_completed, total_play_time_ms, last_session_at, updated_at
		) VALUES ($1, 1, $2, $3, $4)
		ON CONFLICT (profile_id)
		DO UPDATE SET
			total_games_completed = overall_stats.total_games_completed + 1,
			total_play_time_ms    = overall_stats.total_play_time_ms + EXCLUDED.total_play_time_ms,
			last_session_at       = EXCLUDED.last_session_at,
			updated_at            = EXCLUDED.updated_at
	`

	queryLoadAggregate = `
		SELECT
			season, game_id, completed, best_time, best_score, last_played, completions
		FROM game_aggregates
		WHERE profile_id = $1
		ORDER BY season ASC, game_id ASC
	`

	// queryLoadGameAggregate distinguishes "no profile" (no row) from "never played"
	// (one row with NULL aggregate columns) in a single round trip.
	queryLoadGameAggregate = `
		SELECT
			p.id,
			a.completed,
			a.best_time,
			a.best_score,
			a.last_played,
			a.completions
		FROM profiles p
		LEFT JOIN game_aggregates a
		  ON a.profile_id = p.id
		 AND a.season = $2
		 AND a.game_id = $3
		WHERE p.learner_id = $1
	`

	queryLoadOverallStats = `
		SELECT
			p.id,
			s.total_games_completed,
			s.total_play_time_ms,
			s.last_session_at
		FROM profiles p
		LEFT JOIN overall_stats s ON s.profile_id = p.id
		WHERE p.learner_id = $1
	`
)

// AggregateAdapter implements storage.AggregateStore using PostgreSQL.
type AggregateAdapter struct {
	db *sql.DB
}

// NewAggregateAdapter creates a new AggregateAdapter sharing the given connection.
func NewAggregateAdapter(db *sql.DB) *AggregateAdapter {
	return &AggregateAdapter{db: db}
}

// UpsertAggregate folds one completion into the learner's (season, game) row.
func (a *AggregateAdapter) UpsertAggregate(ctx context.Context, profile *v1.Profile, event *v1.CompletionEvent) error {
	entryJSON, err := marshalEntryJSON(event)
	if err != nil {
		return err
	}

	_, err = a.db.ExecContext(ctx, queryUpsertGameAggregate,
		partition.For(profile.LearnerID),
		profile.ID,
		event.Season.String(),
		event.GameID,
		nullDecimal(event.CompletionTimeMs),
		nullDecimal(event.Score),
		event.OccurredAt,
		string(entryJSON),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("game_aggregate upsert %s/%s: %w", event.Season, event.GameID, err)
	}

	slog.Debug("[AggregateAdapter] Upserted aggregate",
		"profile_id", profile.ID,
		"season", event.Season,
		"game_id", event.GameID)
	return nil
}

// UpdateOverallStats folds one completion into the profile's lifetime stats.
func (a *AggregateAdapter) UpdateOverallStats(ctx context.Context, profile *v1.Profile, event *v1.CompletionEvent) error {
	playTime := decimal.Zero
	if event.CompletionTimeMs != nil {
		playTime = *event.CompletionTimeMs
	}

	_, err := a.db.ExecContext(ctx, queryUpsertOverallStats,
		profile.ID,
		playTime,
		event.OccurredAt,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("overall_stats upsert: %w", err)
	}
	return nil
}

// LoadAggregate returns every (season, game) entry stored for the learner.
func (a *AggregateAdapter) LoadAggregate(ctx context.Context, learnerID string) (aggregation.SeasonedAggregate, error) {
	var profileID string
	err := a.db.QueryRowContext(ctx, `SELECT id FROM profiles WHERE learner_id = $1`, learnerID).Scan(&profileID)
	if err == sql.ErrNoRows {
		return nil, storage.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load aggregate: resolve profile: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, queryLoadAggregate, profileID)
	if err != nil {
		return nil, fmt.Errorf("load aggregate: %w", err)
	}
	defer rows.Close()

	agg := make(aggregation.SeasonedAggregate)
	for rows.Next() {
		var (
			season, gameID      string
			completed           int64
			bestTime, bestScore decimal.NullDecimal
			lastPlayed          sql.NullTime
			completionsJSON     []byte
		)
		if err := rows.Scan(&season, &gameID, &completed, &bestTime, &bestScore, &lastPlayed, &completionsJSON); err != nil {
			return nil, fmt.Errorf("load aggregate: scan row: %w", err)
		}

		g, err := buildGameAggregate(completed, bestTime, bestScore, lastPlayed, completionsJSON)
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

// LoadGameAggregate returns one (season, game) entry, or nil when it was never played.
func (a *AggregateAdapter) LoadGameAggregate(
	ctx context.Context,
	learnerID string,
	season aggregation.Season,
	gameID string,
) (*aggregation.GameAggregate, error) {
	var (
		profileID           string
		completed           sql.NullInt64
		bestTime, bestScore decimal.NullDecimal
		lastPlayed          sql.NullTime
		completionsJSON     []byte
	)

	err := a.db.QueryRowContext(ctx, queryLoadGameAggregate, learnerID, season.String(), gameID).Scan(
		&profileID,
		&completed,
		&bestTime,
		&bestScore,
		&lastPlayed,
		&completionsJSON,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game aggregate: %w", err)
	}

	// LEFT JOIN emits NULL aggregate columns when the game was never played.
	if !completed.Valid {
		return nil, nil
	}

	g, err := buildGameAggregate(completed.Int64, bestTime, bestScore, lastPlayed, completionsJSON)
	if err != nil {
		return nil, fmt.Errorf("load game aggregate %s/%s: %w", season, gameID, err)
	}
	return &g, nil
}

// LoadOverallStats returns the learner's lifetime stats, zero-valued when nothing was recorded.
func (a *AggregateAdapter) LoadOverallStats(ctx context.Context, learnerID string) (aggregation.OverallStats, error) {
	var (
		profileID   string
		total       sql.NullInt64
		playTime    decimal.NullDecimal
		lastSession sql.NullTime
	)

	err := a.db.QueryRowContext(ctx, queryLoadOverallStats, learnerID).Scan(&profileID, &total, &playTime, &lastSession)
	if err == sql.ErrNoRows {
		return aggregation.OverallStats{}, storage.ErrProfileNotFound
	}
	if err != nil {
		return aggregation.OverallStats{}, fmt.Errorf("load overall stats: %w", err)
	}

	stats := aggregation.OverallStats{
		TotalGamesCompleted: total.Int64,
		TotalPlayTimeMs:     playTime.Decimal,
	}
	if lastSession.Valid {
		t := lastSession.Time
		stats.LastSessionAt = &t
	}
	return stats, nil
}

func buildGameAggregate(
	completed int64,
	bestTime, bestScore decimal.NullDecimal,
	lastPlayed sql.NullTime,
	completionsJSON []byte,
) (aggregation.GameAggregate, error) {
	entries, err := unmarshalCompletions(completionsJSON)
	if err != nil {
		return aggregation.GameAggregate{}, err
	}

	g := aggregation.GameAggregate{
		Completed:   completed,
		BestTime:    decimalPtr(bestTime),
		BestScore:   decimalPtr(bestScore),
		Completions: entries,
	}
	if lastPlayed.Valid {
		t := lastPlayed.Time
		g.LastPlayed = &t
	}
	return g, nil
}
