package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun creates or updates a run summary. Outcomes are stored separately.
func (s *runStore) SaveRun(ctx context.Context, r *domain.RunReport) error {
	if r == nil || r.ID == "" {
		return fmt.Errorf("%w: run id required", domain.ErrInvalidInput)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO harvest_runs (id, collection, parent_id, state, started_at, ended_at,
			fetched, indexed, eligible, duplicates,
			submitted, rejected, failed, unknown, enrichment_fails, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			state = excluded.state,
			ended_at = excluded.ended_at,
			fetched = excluded.fetched,
			indexed = excluded.indexed,
			eligible = excluded.eligible,
			duplicates = excluded.duplicates,
			submitted = excluded.submitted,
			rejected = excluded.rejected,
			failed = excluded.failed,
			unknown = excluded.unknown,
			enrichment_fails = excluded.enrichment_fails,
			error = excluded.error
	`, r.ID, string(r.Collection), r.ParentID, string(r.State), r.StartedAt.UTC(), nullTime(r.EndedAt),
		r.Fetched, r.Indexed, r.Eligible, r.Duplicates,
		r.Submitted, r.Rejected, r.Failed, r.Unknown, r.EnrichmentFails, r.Error)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// RecordOutcome appends one per-record outcome.
func (s *runStore) RecordOutcome(ctx context.Context, o domain.RecordOutcome) error {
	if o.RunID == "" {
		return fmt.Errorf("%w: run id required", domain.ErrInvalidInput)
	}
	at := o.At
	if at.IsZero() {
		at = s.store.now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO record_outcomes (run_id, collection, record_id, stage, status, source, item_url, error, at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.RunID, string(o.Collection), o.RecordID, string(o.Stage), string(o.Status),
		o.Source, o.ItemURL, o.Error, at.UTC())
	if err != nil {
		return fmt.Errorf("recording outcome: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *runStore) ListRuns(ctx context.Context, collection domain.CollectionType, limit int) ([]domain.RunReport, error) {
	query := `
		SELECT id, collection, parent_id, state, started_at, ended_at,
			fetched, indexed, eligible, duplicates,
			submitted, rejected, failed, unknown, enrichment_fails, error
		FROM harvest_runs`
	var args []any
	if collection != "" {
		query += " WHERE collection = ?"
		args = append(args, string(collection))
	}
	query += " ORDER BY started_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunReport
	for rows.Next() {
		var r domain.RunReport
		var ct, state string
		var endedAt sql.NullTime
		if err := rows.Scan(&r.ID, &ct, &r.ParentID, &state, &r.StartedAt, &endedAt,
			&r.Fetched, &r.Indexed, &r.Eligible, &r.Duplicates,
			&r.Submitted, &r.Rejected, &r.Failed, &r.Unknown, &r.EnrichmentFails, &r.Error); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Collection = domain.CollectionType(ct)
		r.State = domain.RunState(state)
		if endedAt.Valid {
			r.EndedAt = endedAt.Time
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Outcomes returns the outcomes recorded for a run, oldest first.
func (s *runStore) Outcomes(ctx context.Context, runID string) ([]domain.RecordOutcome, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT run_id, collection, record_id, stage, status, source, item_url, error, at
		FROM record_outcomes WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []domain.RecordOutcome
	for rows.Next() {
		var o domain.RecordOutcome
		var ct, stage, status string
		if err := rows.Scan(&o.RunID, &ct, &o.RecordID, &stage, &status,
			&o.Source, &o.ItemURL, &o.Error, &o.At); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		o.Collection = domain.CollectionType(ct)
		o.Stage = domain.Stage(stage)
		o.Status = domain.OutcomeStatus(status)
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(outcomes) == 0 {
		var exists int
		err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM harvest_runs WHERE id = ?", runID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("checking run: %w", err)
		}
		if exists == 0 {
			return nil, domain.ErrNotFound
		}
	}
	return outcomes, nil
}

// nullTime converts a zero time to NULL.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
