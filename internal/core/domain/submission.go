package domain

// SubmissionStatus classifies the outcome of one catalog create call.
type SubmissionStatus int

const (
	// SubmissionUnspecified is the zero value. A result left in this state
	// is treated as a failure.
	SubmissionUnspecified SubmissionStatus = iota

	// SubmissionCreated indicates the item was stored.
	SubmissionCreated

	// SubmissionFailed indicates the catalog explicitly rejected the item.
	// Nothing was stored; the record stays eligible for the next run.
	SubmissionFailed

	// SubmissionUnknown indicates the outcome could not be determined,
	// e.g. the connection dropped after the request was sent.
	SubmissionUnknown
)

// String returns the string representation.
func (s SubmissionStatus) String() string {
	switch s {
	case SubmissionUnspecified:
		return "unspecified"
	case SubmissionCreated:
		return "created"
	case SubmissionFailed:
		return "failed"
	case SubmissionUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// SubmissionResult is the outcome of submitting one record.
type SubmissionResult struct {
	// RecordID is the primary identifier of the submitted record.
	RecordID string

	// ItemID is the catalog's id for the stored item.
	ItemID string

	// URL is the canonical reference to the stored item.
	URL string

	// Status classifies the outcome.
	Status SubmissionStatus

	// Err is set when Status is not SubmissionCreated.
	Err error
}

// OK reports whether the item was created.
func (r SubmissionResult) OK() bool {
	return r.Status == SubmissionCreated
}
