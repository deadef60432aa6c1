package driven

import (
	"context"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

// RunStore persists harvest run reports and per-record outcomes for triage.
type RunStore interface {
	// SaveRun creates or updates a run summary.
	SaveRun(ctx context.Context, report *domain.RunReport) error

	// RecordOutcome appends one per-record outcome.
	RecordOutcome(ctx context.Context, outcome domain.RecordOutcome) error

	// ListRuns returns the most recent runs, newest first.
	// A zero collection lists runs of every collection.
	ListRuns(ctx context.Context, collection domain.CollectionType, limit int) ([]domain.RunReport, error)

	// Outcomes returns the outcomes recorded for a run, oldest first.
	Outcomes(ctx context.Context, runID string) ([]domain.RecordOutcome, error)
}
