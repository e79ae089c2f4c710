package gateway

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clinicware/portal-client/internal/portal"
)

// ErrAuthExpired is returned after the backend rejects the session credential.
// By the time a caller sees it the session has already been cleared and the
// user context redirected to the login boundary.
var ErrAuthExpired = errors.New("session expired")

// NetworkError means no response was received at all. It is distinct from a
// server rejection: there is no status and no payload.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("Network Error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// BackendRejection is any non-success response other than an auth rejection.
// Raw keeps the unparsed payload for the audit view; Detail is the backend's
// human-readable message when the body carried one.
type BackendRejection struct {
	Status int
	Detail string
	Raw    json.RawMessage
}

func (e *BackendRejection) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend rejected request: status=%d detail=%s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend rejected request: status=%d", e.Status)
}

func newBackendRejection(status int, raw []byte) *BackendRejection {
	rej := &BackendRejection{Status: status, Raw: raw}
	var body portal.ErrorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		rej.Detail = body.Detail
	}
	return rej
}
