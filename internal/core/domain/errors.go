package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown collection type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrRunInProgress indicates a harvest run is already active for a collection.
	ErrRunInProgress = errors.New("run in progress")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthRequired indicates the catalog requires authentication but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrMalformedResponse indicates a service answered with a body that
	// could not be decoded. Retrying the same request does not help.
	ErrMalformedResponse = errors.New("malformed response")

	// Pipeline Errors.

	// ErrFetchFailed indicates a feature service page request failed or
	// returned malformed data. The whole run is aborted.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrIndexBuildFailed indicates the destination catalog could not be read.
	// The whole run is aborted.
	ErrIndexBuildFailed = errors.New("index build failed")

	// ErrMappingFailed indicates a record lacks its primary identifier.
	ErrMappingFailed = errors.New("mapping failed")

	// ErrEnrichmentFailed indicates a secondary service call failed.
	ErrEnrichmentFailed = errors.New("enrichment failed")

	// ErrNoEnrichmentData indicates a secondary service had nothing for the record.
	ErrNoEnrichmentData = errors.New("no enrichment data")

	// ErrSubmissionFailed indicates the catalog explicitly rejected a create call.
	ErrSubmissionFailed = errors.New("submission failed")

	// ErrAmbiguousOutcome indicates a create call may or may not have succeeded.
	// The next run's reconciliation decides.
	ErrAmbiguousOutcome = errors.New("submission outcome unknown")
)

// Stage names a step of the per-record pipeline.
type Stage string

// Pipeline stages.
const (
	StageFetch  Stage = "fetch"
	StageIndex  Stage = "index"
	StageMap    Stage = "map"
	StageEnrich Stage = "enrich"
	StageSubmit Stage = "submit"
)

// StageError carries enough context to triage a failure by hand.
type StageError struct {
	Stage      Stage
	Collection CollectionType
	RecordID   string
	Source     string // enricher or service name, if any
	Err        error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Stage, e.Collection)
	if e.RecordID != "" {
		msg += " record " + e.RecordID
	}
	if e.Source != "" {
		msg += " (" + e.Source + ")"
	}
	return msg + ": " + e.Err.Error()
}

// Unwrap implements errors.Unwrap.
func (e *StageError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel belonging to the stage.
func (e *StageError) Is(target error) bool {
	switch e.Stage {
	case StageFetch:
		return target == ErrFetchFailed
	case StageIndex:
		return target == ErrIndexBuildFailed
	case StageMap:
		return target == ErrMappingFailed
	case StageEnrich:
		return target == ErrEnrichmentFailed
	case StageSubmit:
		return target == ErrSubmissionFailed && !errors.Is(e.Err, ErrAmbiguousOutcome)
	default:
		return false
	}
}
