package workflow

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/clinicware/portal-client/internal/portal"
	"github.com/clinicware/portal-client/internal/ui"
)

const bookingFallback = "Unknown error"

// BookingInput is the appointment form as entered. Only the patient id is
// validated client-side; doctor availability, time conflicts and patient
// existence are the backend's authority.
type BookingInput struct {
	PatientUID      string
	DoctorID        string
	AppointmentTime string
	Status          portal.AppointmentStatus
}

// BookAppointment submits bookings and renders the printable slip for each
// completed one.
type BookAppointment struct {
	gw       Requester
	notifier Notifier
	audit    AuditView
	forms    Forms
	slips    SlipGenerator
	m        machine
}

func NewBookAppointment(gw Requester, notifier Notifier, audit AuditView, forms Forms, slips SlipGenerator) *BookAppointment {
	return &BookAppointment{gw: gw, notifier: notifier, audit: audit, forms: forms, slips: slips, m: newMachine()}
}

func (w *BookAppointment) State() State { return w.m.current() }

func (w *BookAppointment) Submit(ctx context.Context, input BookingInput) error {
	if err := w.m.begin(); err != nil {
		return err
	}
	defer w.m.finish()

	uid, err := strconv.ParseInt(strings.TrimSpace(input.PatientUID), 10, 64)
	if err != nil || uid < 1 {
		return rejectInvalid(&w.m, w.notifier, "Patient ID must be a positive number.")
	}

	draft := portal.AppointmentDraft{
		PatientUID:      uid,
		DoctorID:        input.DoctorID,
		AppointmentTime: input.AppointmentTime,
		Status:          input.Status,
	}

	w.m.to(StateSubmitting)
	resp, err := w.gw.Do(ctx, http.MethodPost, "/api/v1/appointments/book", draft)
	if err != nil {
		return dispatchFailure(&w.m, w.notifier, w.audit, err, bookingFallback)
	}

	w.audit.RenderRaw(resp.Raw)

	var result portal.AppointmentResult
	if err := resp.Decode(&result); err != nil {
		return dispatchFailure(&w.m, w.notifier, w.audit, err, bookingFallback)
	}

	w.m.to(StateSuccess)
	w.notifier.Notify(fmt.Sprintf("Appointment booked successfully! Queue Token: %s", result.QueueToken), ui.SeveritySuccess)
	w.forms.ResetAppointmentForm()

	// The booking already succeeded; a slip failure must not fail it.
	if _, err := w.slips.Generate(result); err != nil {
		log.Printf("appointment slip generation failed: id=%s err=%v", result.ID, err)
	}
	return nil
}
