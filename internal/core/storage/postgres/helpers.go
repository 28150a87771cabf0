package postgres

import (
	"encoding/json"
	"fmt"

	v1 "github.com/projecteax/mozgnamaxa/internal/api/v1"
	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/shopspring/decimal"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// nullDecimal maps an optional measure onto a NUMERIC parameter (nil → SQL NULL).
func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

// marshalEntryJSON encodes the completions-array element for an event as a one-element
// JSON array so it can be concatenated onto the stored array.
func marshalEntryJSON(event *v1.CompletionEvent) ([]byte, error) {
	data, err := json.Marshal([]aggregation.CompletionEntry{event.Entry()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion entry: %w", err)
	}
	return data, nil
}

// scanCompletionRow scans a log row into a CompletionEvent.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanCompletionRow(row scanner) (*v1.CompletionEvent, error) {
	var evt v1.CompletionEvent
	var season string
	var completionTime, score decimal.NullDecimal

	err := row.Scan(
		&evt.ID,
		&evt.LearnerID,
		&evt.GameID,
		&season,
		&evt.OccurredAt,
		&completionTime,
		&score,
		&evt.LogSeq,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan completion row: %w", err)
	}

	evt.Season = aggregation.Season(season)
	evt.CompletionTimeMs = decimalPtr(completionTime)
	evt.Score = decimalPtr(score)
	return &evt, nil
}

func scanProfileRow(row scanner) (*v1.Profile, error) {
	var p v1.Profile
	if err := row.Scan(&p.ID, &p.LearnerID, &p.DisplayName, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func unmarshalCompletions(raw []byte) ([]aggregation.CompletionEntry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var entries []aggregation.CompletionEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal completions: %w", err)
	}
	return entries, nil
}
