package postgres

// SQL queries for the completion log and learner profiles

const (
	// queryAppendCompletion inserts one completion into the append-only log.
	// RETURNING clause retrieves the auto-generated log_seq for cursor tracking.
	queryAppendCompletion = `
		INSERT INTO completion_log (
			id, learner_id, game_id, season,
			occurred_at, completion_time_ms, score
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING log_seq
	`

	// queryRetrieveCompletionsAfterCursor fetches log rows after a cursor (log_seq).
	// Used by the drift auditor to page the log in strict total order.
	// Note: Fetches rows for ALL learners.
	queryRetrieveCompletionsAfterCursor = `
		SELECT
			id, learner_id, game_id, season,
			occurred_at, completion_time_ms, score, log_seq
		FROM completion_log
		WHERE log_seq > $1
		ORDER BY log_seq ASC
		LIMIT $2
	`

	queryResolveProfile = `
		SELECT id, learner_id, display_name, created_at
		FROM profiles
		WHERE learner_id = $1
	`

	// queryEnsureProfile creates the profile or returns the existing one.
	// The no-op DO UPDATE makes RETURNING emit the row on conflict too.
	queryEnsureProfile = `
		INSERT INTO profiles (id, learner_id, display_name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (learner_id)
		DO UPDATE SET display_name = CASE
			WHEN EXCLUDED.display_name <> '' THEN EXCLUDED.display_name
			ELSE profiles.display_name
		END
		RETURNING id, learner_id, display_name, created_at
	`
)
