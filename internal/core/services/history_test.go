package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/crc-harvest/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/crc-harvest/internal/core/domain"
)

func TestRunHistory_Recent(t *testing.T) {
	store := memory.NewRunStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 12 {
		ct := domain.CollectionCore
		if i%2 == 1 {
			ct = domain.CollectionCutting
		}
		require.NoError(t, store.SaveRun(t.Context(), &domain.RunReport{
			ID:         fmt.Sprintf("run-%02d", i),
			Collection: ct,
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}
	history := NewRunHistory(store)

	all, err := history.Recent(t.Context(), "", 0)
	require.NoError(t, err)
	assert.Len(t, all, DefaultHistoryLimit)
	assert.Equal(t, "run-11", all[0].ID)

	core, err := history.Recent(t.Context(), domain.CollectionCore, 2)
	require.NoError(t, err)
	require.Len(t, core, 2)
	assert.Equal(t, "run-10", core[0].ID)
	assert.Equal(t, "run-08", core[1].ID)

	_, err = history.Recent(t.Context(), domain.CollectionType("slab"), 1)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRunHistory_Outcomes(t *testing.T) {
	store := memory.NewRunStore()
	history := NewRunHistory(store)
	require.NoError(t, store.RecordOutcome(t.Context(), domain.RecordOutcome{
		RunID: "r1", RecordID: "A2", Status: domain.OutcomeSubmitted,
	}))

	outcomes, err := history.Outcomes(t.Context(), "r1")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "A2", outcomes[0].RecordID)

	_, err = history.Outcomes(t.Context(), "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = history.Outcomes(t.Context(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
