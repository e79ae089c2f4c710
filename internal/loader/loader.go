// Package loader holds the idempotent read paths that fill the dashboard and
// the patient roster when their sections activate. Loaders never mutate
// session or form state and swallow failures into inline placeholders.
package loader

import (
	"context"
	"net/http"

	"github.com/clinicware/portal-client/internal/gateway"
	"github.com/clinicware/portal-client/internal/portal"
)

type Requester interface {
	Do(ctx context.Context, method, path string, body any) (*gateway.Response, error)
}

type DashboardView interface {
	RenderStats(stats portal.DashboardStats)
	RenderStatsError(placeholder string)
}

type RosterView interface {
	RenderPatients(patients []portal.PatientSummary)
	RenderPatientsError(placeholder string)
}

type Loader struct {
	gw Requester
}

func New(gw Requester) *Loader {
	return &Loader{gw: gw}
}

// LoadDashboard fetches aggregate counts once. No caching, no refresh
// scheduling; a failed fetch renders a placeholder and nothing else.
func (l *Loader) LoadDashboard(ctx context.Context, view DashboardView) {
	resp, err := l.gw.Do(ctx, http.MethodGet, "/api/v1/dashboard/stats", nil)
	if err != nil {
		view.RenderStatsError("Failed to load dashboard stats")
		return
	}

	var stats portal.DashboardStats
	if err := resp.Decode(&stats); err != nil {
		view.RenderStatsError("Failed to load dashboard stats")
		return
	}

	view.RenderStats(stats)
}

// LoadPatients fetches the patient roster once.
func (l *Loader) LoadPatients(ctx context.Context, view RosterView) {
	resp, err := l.gw.Do(ctx, http.MethodGet, "/api/v1/patients", nil)
	if err != nil {
		view.RenderPatientsError("Failed to load patients")
		return
	}

	var patients []portal.PatientSummary
	if err := resp.Decode(&patients); err != nil {
		view.RenderPatientsError("Failed to load patients")
		return
	}

	view.RenderPatients(patients)
}
