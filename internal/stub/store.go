// Package stub is an in-memory development backend implementing the portal
// REST contract, so the client can be exercised without the real service.
package stub

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/clinicware/portal-client/internal/portal"
	"github.com/clinicware/portal-client/internal/session"
)

type User struct {
	Username string
	Password string
	Role     session.Role
}

// Store holds all backend state behind one mutex. Deliberately in-memory:
// the stub exists to serve the client during development and tests.
type Store struct {
	mu           sync.Mutex
	users        map[string]User
	patients     map[int64]portal.PatientSummary
	appointments map[string]portal.AppointmentResult
	nextUID      int64
}

func NewStore() *Store {
	s := &Store{
		users:        make(map[string]User),
		patients:     make(map[int64]portal.PatientSummary),
		appointments: make(map[string]portal.AppointmentResult),
		nextUID:      1,
	}
	for _, u := range []User{
		{Username: "frontdesk", Password: "frontdesk123", Role: session.RoleFrontDesk},
		{Username: "nurse1", Password: "nurse123", Role: session.RoleNurse},
		{Username: "drsmith", Password: "doctor123", Role: session.RoleDoctor},
	} {
		s.users[u.Username] = u
	}
	return s
}

func (s *Store) FindUser(username string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	return u, ok
}

func (s *Store) AddPatient(draft portal.PatientDraft) portal.PatientSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := portal.PatientSummary{
		PatientUID:    s.nextUID,
		FirstName:     draft.FirstName,
		LastName:      draft.LastName,
		DOB:           draft.DOB,
		ContactNumber: draft.ContactNumber,
		Address:       draft.Address,
	}
	s.patients[p.PatientUID] = p
	s.nextUID++
	return p
}

func (s *Store) GetPatient(uid int64) (portal.PatientSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[uid]
	return p, ok
}

func (s *Store) ListPatients() []portal.PatientSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]portal.PatientSummary, 0, len(s.patients))
	for uid := int64(1); uid < s.nextUID; uid++ {
		if p, ok := s.patients[uid]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) AddAppointment(draft portal.AppointmentDraft) portal.AppointmentResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := draft.Status
	if status == "" {
		status = portal.StatusPending
	}

	res := portal.AppointmentResult{
		ID:              uuid.NewString(),
		PatientUID:      draft.PatientUID,
		DoctorID:        draft.DoctorID,
		AppointmentTime: mustParseTime(draft.AppointmentTime),
		Status:          status,
		QueueToken:      queueToken(status),
	}
	s.appointments[res.ID] = res
	return res
}

func (s *Store) GetAppointment(id string) (portal.AppointmentResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	return a, ok
}

func (s *Store) Stats(now time.Time) portal.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := portal.DashboardStats{TotalPatients: len(s.patients)}
	today := now.Format("2006-01-02")
	for _, a := range s.appointments {
		if a.AppointmentTime.Format("2006-01-02") == today {
			stats.TodayAppointments++
		}
		if a.Status == portal.StatusPending {
			stats.PendingQueue++
		}
	}
	return stats
}

// Seed fills the store with fake patients and a few appointments for today.
func (s *Store) Seed(patients int) {
	for i := 0; i < patients; i++ {
		p := s.AddPatient(portal.PatientDraft{
			FirstName:     gofakeit.FirstName(),
			LastName:      gofakeit.LastName(),
			DOB:           gofakeit.DateRange(time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC)).Format("2006-01-02"),
			ContactNumber: gofakeit.Phone(),
			Address:       gofakeit.Address().Address,
		})

		if i%4 == 0 {
			s.AddAppointment(portal.AppointmentDraft{
				PatientUID:      p.PatientUID,
				DoctorID:        fmt.Sprintf("DR-%03d", gofakeit.Number(1, 20)),
				AppointmentTime: time.Now().Add(time.Duration(gofakeit.Number(1, 8)) * time.Hour).Format(time.RFC3339),
				Status:          portal.StatusPending,
			})
		}
	}
}

// queueToken mirrors the production format: STATUS dash six uppercase hex.
func queueToken(status portal.AppointmentStatus) string {
	id := uuid.New()
	return fmt.Sprintf("%s-%s", status, strings.ToUpper(fmt.Sprintf("%x", id[:3])))
}

func mustParseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
