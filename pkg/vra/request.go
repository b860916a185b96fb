package vra

import "time"

// Request states reported by the catalog service.
const (
	RequestStateSubmitted       = "SUBMITTED"
	RequestStatePendingPre      = "PENDING_PRE_APPROVAL"
	RequestStateInProgress      = "IN_PROGRESS"
	RequestStatePendingPost     = "PENDING_POST_APPROVAL"
	RequestStateSuccessful      = "SUCCESSFUL"
	RequestStatePartiallyFailed = "PARTIAL"
	RequestStateFailed          = "FAILED"
	RequestStateRejected        = "REJECTED"
)

// Request is the handle for an asynchronous catalog operation, returned when
// an action or catalog item request is submitted and trackable by ID.
type Request struct {
	ID                string             `json:"id"`
	RequestNumber     int                `json:"requestNumber,omitempty"`
	State             string             `json:"state"`
	Description       string             `json:"description,omitempty"`
	Reasons           string             `json:"reasons,omitempty"`
	RequestedFor      string             `json:"requestedFor,omitempty"`
	RequestedBy       string             `json:"requestedBy,omitempty"`
	Organization      *Organization      `json:"organization,omitempty"`
	CatalogItemRef    *LabelRef          `json:"catalogItemRef,omitempty"`
	RequestCompletion *RequestCompletion `json:"requestCompletion,omitempty"`
	DateCreated       *time.Time         `json:"dateCreated,omitempty"`
	DateSubmitted     *time.Time         `json:"dateSubmitted,omitempty"`
	DateCompleted     *time.Time         `json:"dateCompleted,omitempty"`
	LastUpdated       *time.Time         `json:"lastUpdated,omitempty"`
	Phase             string             `json:"phase,omitempty"`
}

// RequestCompletion carries the outcome of a finished request.
type RequestCompletion struct {
	RequestCompletionState string `json:"requestCompletionState,omitempty"`
	CompletionDetails      string `json:"completionDetails,omitempty"`
}

// Completed reports whether the request reached a terminal state.
func (r *Request) Completed() bool {
	switch r.State {
	case RequestStateSuccessful, RequestStatePartiallyFailed, RequestStateFailed, RequestStateRejected:
		return true
	default:
		return false
	}
}

// Successful reports whether the request completed successfully.
func (r *Request) Successful() bool {
	return r.State == RequestStateSuccessful
}

// Failed reports whether the request completed unsuccessfully.
func (r *Request) Failed() bool {
	return r.Completed() && !r.Successful()
}

// CompletionDetails returns the outcome details of a finished request, or ""
// while the request is still running.
func (r *Request) CompletionDetails() string {
	if r.RequestCompletion == nil {
		return ""
	}

	return r.RequestCompletion.CompletionDetails
}
