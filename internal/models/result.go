package models

// Status classifies the outcome of one draft submission
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// SubmissionResult is the per-contact outcome of the draft submitter. Exactly one
// of DraftID (on success) or Detail (on failure) carries information.
type SubmissionResult struct {
	Status  Status
	DraftID string
	Detail  string
}

// Success builds a successful result carrying the provider-assigned draft ID
func Success(draftID string) SubmissionResult {
	return SubmissionResult{Status: StatusSuccess, DraftID: draftID}
}

// Failure builds a failed result carrying a human-readable error detail
func Failure(detail string) SubmissionResult {
	return SubmissionResult{Status: StatusError, Detail: detail}
}
