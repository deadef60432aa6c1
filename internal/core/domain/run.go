package domain

import "time"

// RunState is a state of the per-collection harvest state machine.
type RunState string

// Harvest run states.
const (
	RunIdle        RunState = "idle"
	RunFetching    RunState = "fetching"
	RunReconciling RunState = "reconciling"
	RunProcessing  RunState = "processing"
	RunDone        RunState = "done"
	RunAborted     RunState = "aborted"
)

// IsTerminal reports whether no further transition is possible.
func (s RunState) IsTerminal() bool {
	return s == RunDone || s == RunAborted
}

// CanTransition reports whether moving from s to next is allowed.
// Aborted is reachable from every non-terminal state.
func (s RunState) CanTransition(next RunState) bool {
	if next == RunAborted {
		return !s.IsTerminal()
	}
	switch s {
	case RunIdle:
		return next == RunFetching
	case RunFetching:
		return next == RunReconciling
	case RunReconciling:
		return next == RunProcessing || next == RunDone
	case RunProcessing:
		return next == RunDone
	default:
		return false
	}
}

// OutcomeStatus classifies what happened to one record in a run.
type OutcomeStatus string

// Record outcome statuses.
const (
	OutcomeSubmitted OutcomeStatus = "submitted"
	OutcomeRejected  OutcomeStatus = "rejected"
	OutcomeFailed    OutcomeStatus = "failed"
	OutcomeUnknown   OutcomeStatus = "unknown"
	OutcomeDegraded  OutcomeStatus = "degraded" // enrichment failed, record continued
)

// RecordOutcome is one triage line of a run.
type RecordOutcome struct {
	RunID      string
	Collection CollectionType
	RecordID   string
	Stage      Stage
	Status     OutcomeStatus
	Source     string
	ItemURL    string
	Error      string
	At         time.Time
}

// RunReport summarises one harvest run of a collection.
type RunReport struct {
	ID         string
	Collection CollectionType
	ParentID   string
	State      RunState
	StartedAt  time.Time
	EndedAt    time.Time

	Fetched    int
	Indexed    int
	Eligible   int
	Duplicates int

	Submitted       int
	Rejected        int
	Failed          int
	Unknown         int
	EnrichmentFails int

	// Error is the run-level failure when State is RunAborted.
	Error string

	// Outcomes holds one entry per submission attempt, rejection or
	// enrichment failure.
	Outcomes []RecordOutcome
}

// Attempted returns the number of records that reached submission.
func (r *RunReport) Attempted() int {
	return r.Submitted + r.Failed + r.Unknown
}
