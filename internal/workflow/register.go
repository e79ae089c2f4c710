package workflow

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/clinicware/portal-client/internal/portal"
	"github.com/clinicware/portal-client/internal/ui"
)

const registerFallback = "Unknown error"

// RegisterPatient submits new patient records. All five fields are required
// non-empty after trimming and the date of birth must be a real calendar date
// before any request is issued.
type RegisterPatient struct {
	gw       Requester
	notifier Notifier
	audit    AuditView
	forms    Forms
	m        machine
}

func NewRegisterPatient(gw Requester, notifier Notifier, audit AuditView, forms Forms) *RegisterPatient {
	return &RegisterPatient{gw: gw, notifier: notifier, audit: audit, forms: forms, m: newMachine()}
}

func (w *RegisterPatient) State() State { return w.m.current() }

func (w *RegisterPatient) Submit(ctx context.Context, draft portal.PatientDraft) error {
	if err := w.m.begin(); err != nil {
		return err
	}
	defer w.m.finish()

	draft = trimPatientDraft(draft)
	if msg, ok := validatePatientDraft(draft); !ok {
		return rejectInvalid(&w.m, w.notifier, msg)
	}

	w.m.to(StateSubmitting)
	resp, err := w.gw.Do(ctx, http.MethodPost, "/api/v1/patients/register", draft)
	if err != nil {
		return dispatchFailure(&w.m, w.notifier, w.audit, err, registerFallback)
	}

	w.audit.RenderRaw(resp.Raw)

	var result portal.RegisterResult
	if err := resp.Decode(&result); err != nil {
		return dispatchFailure(&w.m, w.notifier, w.audit, err, registerFallback)
	}

	w.m.to(StateSuccess)
	w.notifier.Notify(fmt.Sprintf("Patient registered successfully! Patient ID: %d", result.PatientUID), ui.SeveritySuccess)
	w.forms.ResetRegisterForm()
	w.forms.SetAppointmentPatientUID(result.PatientUID)
	return nil
}

func trimPatientDraft(d portal.PatientDraft) portal.PatientDraft {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.DOB = strings.TrimSpace(d.DOB)
	d.ContactNumber = strings.TrimSpace(d.ContactNumber)
	d.Address = strings.TrimSpace(d.Address)
	return d
}

func validatePatientDraft(d portal.PatientDraft) (string, bool) {
	if d.FirstName == "" || d.LastName == "" || d.DOB == "" || d.ContactNumber == "" || d.Address == "" {
		return "All patient fields are required.", false
	}
	if _, err := time.Parse("2006-01-02", d.DOB); err != nil {
		return "Date of Birth must be a valid date.", false
	}
	return "", true
}
