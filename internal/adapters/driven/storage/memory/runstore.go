package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/crc-harvest/internal/core/domain"
	"github.com/custodia-labs/crc-harvest/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu       sync.RWMutex
	runs     map[string]domain.RunReport
	outcomes map[string][]domain.RecordOutcome
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs:     make(map[string]domain.RunReport),
		outcomes: make(map[string][]domain.RecordOutcome),
	}
}

// SaveRun creates or updates a run summary. Outcomes are stored separately.
func (s *RunStore) SaveRun(_ context.Context, report *domain.RunReport) error {
	if report == nil || report.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *report
	r.Outcomes = nil
	s.runs[r.ID] = r
	return nil
}

// RecordOutcome appends one outcome.
func (s *RunStore) RecordOutcome(_ context.Context, outcome domain.RecordOutcome) error {
	if outcome.RunID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes[outcome.RunID] = append(s.outcomes[outcome.RunID], outcome)
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *RunStore) ListRuns(_ context.Context, collection domain.CollectionType, limit int) ([]domain.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.RunReport, 0, len(s.runs))
	for _, r := range s.runs {
		if collection == "" || r.Collection == collection {
			runs = append(runs, r)
		}
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Outcomes returns the outcomes of a run, oldest first.
func (s *RunStore) Outcomes(_ context.Context, runID string) ([]domain.RecordOutcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.runs[runID]; !ok && len(s.outcomes[runID]) == 0 {
		return nil, domain.ErrNotFound
	}
	return append([]domain.RecordOutcome(nil), s.outcomes[runID]...), nil
}
