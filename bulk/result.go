package bulk

// Rejection and failure reasons. The set is closed.
const (
	ReasonDuplicateInBatch = "duplicate within batch"
	ReasonAlreadyExists    = "already exists"
	ReasonCouldNotDelete   = "could not delete"
)

// Status summarizes a batch result so callers can pick a response code.
type Status int

const (
	// StatusEmpty is reported for an empty batch.
	StatusEmpty Status = iota
	// StatusComplete means every item succeeded.
	StatusComplete
	// StatusPartial means some items succeeded and some did not.
	StatusPartial
	// StatusFailed means no item succeeded.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusComplete:
		return "complete"
	case StatusPartial:
		return "partial"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func statusOf(succeeded, failed int) Status {
	switch {
	case succeeded == 0 && failed == 0:
		return StatusEmpty
	case failed == 0:
		return StatusComplete
	case succeeded == 0:
		return StatusFailed
	default:
		return StatusPartial
	}
}

// Rejection is an input that was not created, with the reason why.
type Rejection[I any] struct {
	Input  I      `json:"input"`
	Reason string `json:"reason"`
}

// Outcome is the decision taken for one input: exactly one of Entity or
// Reason is set.
type Outcome[I any, E any] struct {
	Input   I
	Entity  E
	Created bool
	Reason  string
}

// CreationResult partitions a creation batch.
type CreationResult[I any, E any] struct {
	Created  []E            `json:"created"`
	Rejected []Rejection[I] `json:"rejected"`
	// Outcomes holds one entry per input, in input order.
	Outcomes []Outcome[I, E] `json:"-"`
}

// Status reports whether the batch was fully, partially or not created.
func (r CreationResult[I, E]) Status() Status {
	return statusOf(len(r.Created), len(r.Rejected))
}

// Failure pairs an identifier with the reason it was not deleted.
type Failure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// DeletionResult partitions a deletion request. Every requested identifier
// appears in exactly one of the three lists.
type DeletionResult struct {
	SuccessIDs []string  `json:"successIds"`
	NotFound   []Failure `json:"notFound"`
	Failed     []Failure `json:"failed"`
}

// Status reports whether the request was fully, partially or not deleted.
func (r DeletionResult) Status() Status {
	return statusOf(len(r.SuccessIDs), len(r.NotFound)+len(r.Failed))
}

// Failures returns not found and failed identifiers together.
func (r DeletionResult) Failures() []Failure {
	out := make([]Failure, 0, len(r.NotFound)+len(r.Failed))
	out = append(out, r.NotFound...)
	return append(out, r.Failed...)
}
