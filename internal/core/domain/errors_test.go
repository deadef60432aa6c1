package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrRunInProgress", ErrRunInProgress},
		{"ErrFetchFailed", ErrFetchFailed},
		{"ErrIndexBuildFailed", ErrIndexBuildFailed},
		{"ErrMappingFailed", ErrMappingFailed},
		{"ErrEnrichmentFailed", ErrEnrichmentFailed},
		{"ErrNoEnrichmentData", ErrNoEnrichmentData},
		{"ErrSubmissionFailed", ErrSubmissionFailed},
		{"ErrAmbiguousOutcome", ErrAmbiguousOutcome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestStageError_Is(t *testing.T) {
	tests := []struct {
		stage Stage
		match error
	}{
		{StageFetch, ErrFetchFailed},
		{StageIndex, ErrIndexBuildFailed},
		{StageMap, ErrMappingFailed},
		{StageEnrich, ErrEnrichmentFailed},
		{StageSubmit, ErrSubmissionFailed},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			err := &StageError{Stage: tt.stage, Collection: CollectionCore, RecordID: "42", Err: errors.New("boom")}
			assert.ErrorIs(t, err, tt.match)
			assert.NotErrorIs(t, err, ErrAmbiguousOutcome)
		})
	}
}

func TestStageError_AmbiguousSubmitIsNotFailure(t *testing.T) {
	err := &StageError{Stage: StageSubmit, RecordID: "42", Err: fmt.Errorf("post item: %w", ErrAmbiguousOutcome)}

	assert.ErrorIs(t, err, ErrAmbiguousOutcome)
	assert.NotErrorIs(t, err, ErrSubmissionFailed)
}

func TestStageError_Message(t *testing.T) {
	err := &StageError{
		Stage:      StageEnrich,
		Collection: CollectionCutting,
		RecordID:   "A2",
		Source:     "macrostrat",
		Err:        errors.New("timeout"),
	}

	assert.Equal(t, "enrich cutting record A2 (macrostrat): timeout", err.Error())
	assert.Equal(t, "timeout", errors.Unwrap(err).Error())
}
