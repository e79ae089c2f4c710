package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/clinicware/portal-client/internal/gateway"
	"github.com/clinicware/portal-client/internal/portal"
	"github.com/clinicware/portal-client/internal/ui"
)

// fakeGateway scripts one response per submission and records every request.
type fakeGateway struct {
	mu       sync.Mutex
	calls    []fakeCall
	response *gateway.Response
	err      error

	// blockCh, when set, makes Do wait until the channel is closed. Used to
	// hold a submission in Submitting.
	blockCh chan struct{}
}

type fakeCall struct {
	method string
	path   string
	body   any
}

func (f *fakeGateway) Do(ctx context.Context, method, path string, body any) (*gateway.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{method: method, path: path, body: body})
	block := f.blockCh
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return f.response, f.err
}

func (f *fakeGateway) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func okResponse(v any) *gateway.Response {
	raw, _ := json.Marshal(v)
	return &gateway.Response{Status: http.StatusOK, Raw: raw}
}

func rejection(status int, detail string) *gateway.BackendRejection {
	body := portal.ErrorBody{Detail: detail}
	raw, _ := json.Marshal(body)
	rej := &gateway.BackendRejection{Status: status, Raw: raw, Detail: detail}
	if detail == "" {
		rej.Raw = []byte(`{}`)
	}
	return rej
}

type notification struct {
	message  string
	severity ui.Severity
}

type fakeNotifier struct {
	mu            sync.Mutex
	notifications []notification
}

func (f *fakeNotifier) Notify(message string, severity ui.Severity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, notification{message: message, severity: severity})
}

func (f *fakeNotifier) last() (notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.notifications) == 0 {
		return notification{}, false
	}
	return f.notifications[len(f.notifications)-1], true
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notifications)
}

type fakeAudit struct {
	rendered [][]byte
}

func (f *fakeAudit) RenderRaw(payload []byte) {
	f.rendered = append(f.rendered, payload)
}

type fakeForms struct {
	registerResets    int
	appointmentResets int
	statusResets      int
	patientUID        int64
	patientUIDSet     bool
}

func (f *fakeForms) ResetRegisterForm()    { f.registerResets++ }
func (f *fakeForms) ResetAppointmentForm() { f.appointmentResets++ }
func (f *fakeForms) ResetStatusForm()      { f.statusResets++ }
func (f *fakeForms) SetAppointmentPatientUID(uid int64) {
	f.patientUID = uid
	f.patientUIDSet = true
}

type fakeSlips struct {
	results []portal.AppointmentResult
	err     error
}

func (f *fakeSlips) Generate(res portal.AppointmentResult) (string, error) {
	f.results = append(f.results, res)
	return "appointment_" + res.ID + ".pdf", f.err
}

func validDraft() portal.PatientDraft {
	return portal.PatientDraft{
		FirstName:     "Jane",
		LastName:      "Doe",
		DOB:           "1990-01-01",
		ContactNumber: "555-1234",
		Address:       "1 Main St",
	}
}
