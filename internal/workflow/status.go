package workflow

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/clinicware/portal-client/internal/portal"
	"github.com/clinicware/portal-client/internal/ui"
)

const statusFallback = "Appointment not found"

// CheckStatus looks up the current state of a booked appointment by id.
type CheckStatus struct {
	gw       Requester
	notifier Notifier
	audit    AuditView
	forms    Forms
	m        machine
}

func NewCheckStatus(gw Requester, notifier Notifier, audit AuditView, forms Forms) *CheckStatus {
	return &CheckStatus{gw: gw, notifier: notifier, audit: audit, forms: forms, m: newMachine()}
}

func (w *CheckStatus) State() State { return w.m.current() }

func (w *CheckStatus) Submit(ctx context.Context, appointmentID string) error {
	if err := w.m.begin(); err != nil {
		return err
	}
	defer w.m.finish()

	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" {
		return rejectInvalid(&w.m, w.notifier, "Please enter an Appointment ID.")
	}

	w.m.to(StateSubmitting)
	resp, err := w.gw.Do(ctx, http.MethodGet, "/api/v1/appointments/"+url.PathEscape(appointmentID), nil)
	if err != nil {
		return dispatchFailure(&w.m, w.notifier, w.audit, err, statusFallback)
	}

	w.audit.RenderRaw(resp.Raw)

	var result portal.StatusResult
	if err := resp.Decode(&result); err != nil {
		return dispatchFailure(&w.m, w.notifier, w.audit, err, statusFallback)
	}

	w.m.to(StateSuccess)
	w.notifier.Notify(fmt.Sprintf("Status for %s: %s", result.ID, result.Status), ui.SeveritySuccess)
	w.forms.ResetStatusForm()
	return nil
}
