// Package workflow implements the three user-initiated submission cycles of
// the portal client: register patient, book appointment and check appointment
// status. Each follows one state machine, Idle -> Validating -> Submitting ->
// (Success | Failed) -> Idle, and produces exactly one notification and at
// most one backend request per submission.
package workflow

import (
	"context"
	"errors"
	"sync"

	"github.com/clinicware/portal-client/internal/gateway"
	"github.com/clinicware/portal-client/internal/portal"
	"github.com/clinicware/portal-client/internal/session"
	"github.com/clinicware/portal-client/internal/ui"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// ErrSubmissionInFlight rejects a submission triggered while the same
// workflow is still submitting. The rejected trigger issues no request and no
// notification; the in-flight one still produces exactly one of each.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// ValidationError is a client-side rejection. It never reaches the gateway.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Requester is the session gateway surface the workflows submit through.
type Requester interface {
	Do(ctx context.Context, method, path string, body any) (*gateway.Response, error)
}

// Notifier is the notification channel.
type Notifier interface {
	Notify(message string, severity ui.Severity)
}

// AuditView renders raw backend payloads for audit/debugging.
type AuditView interface {
	RenderRaw(payload []byte)
}

// Forms is the input-surface boundary. Workflows reset the submitting form on
// success and preserve it on failure so the operator can correct and resubmit.
type Forms interface {
	ResetRegisterForm()
	ResetAppointmentForm()
	ResetStatusForm()
	SetAppointmentPatientUID(uid int64)
}

// SlipGenerator produces the printable artifact for a completed booking.
type SlipGenerator interface {
	Generate(res portal.AppointmentResult) (string, error)
}

// machine serializes submissions of one workflow and tracks its state.
type machine struct {
	mu    sync.Mutex
	state State
}

func newMachine() machine {
	return machine{state: StateIdle}
}

func (m *machine) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateIdle {
		return ErrSubmissionInFlight
	}
	m.state = StateValidating
	return nil
}

func (m *machine) to(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *machine) finish() {
	m.to(StateIdle)
}

func (m *machine) current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// rejectInvalid handles a client-side validation failure: one error
// notification, form preserved, zero requests.
func rejectInvalid(m *machine, notifier Notifier, msg string) error {
	m.to(StateFailed)
	notifier.Notify(msg, ui.SeverityError)
	return &ValidationError{Msg: msg}
}

// dispatchFailure converts a gateway error into the user-visible outcome.
// Auth expiry is already handled centrally by the gateway (session cleared,
// user redirected), so it short-circuits the workflow's own error path.
func dispatchFailure(m *machine, notifier Notifier, audit AuditView, err error, fallback string) error {
	m.to(StateFailed)

	if errors.Is(err, gateway.ErrAuthExpired) || errors.Is(err, session.ErrNoSession) {
		return err
	}

	var rej *gateway.BackendRejection
	if errors.As(err, &rej) {
		audit.RenderRaw(rej.Raw)
		detail := rej.Detail
		if detail == "" {
			detail = fallback
		}
		notifier.Notify("Error: "+detail, ui.SeverityError)
		return err
	}

	var netErr *gateway.NetworkError
	if errors.As(err, &netErr) {
		audit.RenderRaw([]byte(netErr.Error()))
		notifier.Notify(netErr.Error(), ui.SeverityError)
		return err
	}

	notifier.Notify("Error: "+fallback, ui.SeverityError)
	return err
}
