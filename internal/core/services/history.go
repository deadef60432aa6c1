package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driving"
)

// Ensure RunHistory implements the interface.
var _ driving.RunHistory = (*RunHistory)(nil)

// DefaultHistoryLimit is the number of runs listed when no limit is given.
const DefaultHistoryLimit = 10

// RunHistory reads persisted run reports.
type RunHistory struct {
	store driven.RunStore
}

// NewRunHistory creates a run history over a run store.
func NewRunHistory(store driven.RunStore) *RunHistory {
	return &RunHistory{store: store}
}

// Recent returns the latest runs of a collection, or of all collections
// when collection is empty.
func (h *RunHistory) Recent(ctx context.Context, collection domain.CollectionType, limit int) ([]domain.RunReport, error) {
	if collection != "" && !collection.IsValid() {
		return nil, fmt.Errorf("%w: collection %q", domain.ErrUnsupportedType, collection)
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return h.store.ListRuns(ctx, collection, limit)
}

// Outcomes returns the per-record outcomes of a run.
func (h *RunHistory) Outcomes(ctx context.Context, runID string) ([]domain.RecordOutcome, error) {
	if runID == "" {
		return nil, fmt.Errorf("%w: run id required", domain.ErrInvalidInput)
	}
	return h.store.Outcomes(ctx, runID)
}
