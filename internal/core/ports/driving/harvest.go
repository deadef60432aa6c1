package driving

import (
	"context"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

// HarvestOrchestrator runs the fetch, reconcile, map, enrich and submit
// pipeline for collections. Runs are sequential; callers must not run two
// orchestrators against the same destination collection at once.
type HarvestOrchestrator interface {
	// Run harvests one collection. A run-level failure (fetch or index build)
	// aborts and is returned alongside the report; record-level failures are
	// only reported.
	Run(ctx context.Context, collection domain.CollectionType) (*domain.RunReport, error)

	// RunAll harvests every configured collection in order.
	RunAll(ctx context.Context) ([]*domain.RunReport, error)

	// Plan fetches and reconciles without submitting anything.
	Plan(ctx context.Context, collection domain.CollectionType) (*Plan, error)

	// Status returns the state of the active or last run of a collection.
	Status(ctx context.Context, collection domain.CollectionType) (*HarvestStatus, error)
}

// Plan describes what a run would submit.
type Plan struct {
	Collection domain.CollectionType
	ParentID   string
	Fetched    int
	Indexed    int
	Duplicates int

	// Enrichers names the enrichment sources a run would query, in order.
	Enrichers []string

	// Eligible lists the primary identifiers still to be submitted, in fetch order.
	Eligible []string
}

// HarvestStatus represents the current state of a harvest run.
type HarvestStatus struct {
	Collection domain.CollectionType
	State      domain.RunState
	RunID      string

	// Processed is the count of eligible records attempted so far.
	Processed int

	// Eligible is the number of records the run will attempt.
	Eligible int

	// ErrorCount is the number of record-level failures so far.
	ErrorCount int
}

// RunHistory exposes persisted run reports.
type RunHistory interface {
	// Recent returns the most recent runs, newest first.
	Recent(ctx context.Context, collection domain.CollectionType, limit int) ([]domain.RunReport, error)

	// Outcomes returns the per-record outcomes of a run.
	Outcomes(ctx context.Context, runID string) ([]domain.RecordOutcome, error)
}
