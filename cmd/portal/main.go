package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/clinicware/portal-client/internal/artifact"
	"github.com/clinicware/portal-client/internal/config"
	"github.com/clinicware/portal-client/internal/gateway"
	"github.com/clinicware/portal-client/internal/loader"
	"github.com/clinicware/portal-client/internal/portal"
	"github.com/clinicware/portal-client/internal/session"
	"github.com/clinicware/portal-client/internal/ui"
	"github.com/clinicware/portal-client/internal/workflow"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	store, cleanup, err := buildSessionStore(cfg)
	if err != nil {
		log.Fatalf("session store error: %v", err)
	}
	defer cleanup()

	term := newTerminal(os.Stdin, os.Stdout)

	gw := gateway.New(cfg.APIBaseURL, store, cfg.RequestTimeout, func() {
		term.printf("Session expired or missing. Use 'login' to sign in.")
	})

	notifier := ui.NewNotifier(cfg.NotificationTTL, func(n ui.Notification) {
		if n.Visible {
			term.printf("[%s] %s", n.Severity, n.Message)
		}
	})

	loaders := loader.New(gw)
	nav := ui.NewNavigator(func(s ui.Section) {
		term.enterSection(context.Background(), s, loaders)
	})

	slips := artifact.NewGenerator(cfg.ArtifactDir)
	register := workflow.NewRegisterPatient(gw, notifier, term, term)
	booking := workflow.NewBookAppointment(gw, notifier, term, term, slips)
	status := workflow.NewCheckStatus(gw, notifier, term, term)

	term.printf("clinic portal client (backend %s)", cfg.APIBaseURL)
	if sess, err := store.Load(context.Background()); err == nil {
		term.printf("signed in as %s (%s)", sess.DisplayName, sess.Role)
	} else {
		term.printf("no active session; use 'login' to sign in")
	}

	ctx := context.Background()
	for {
		fmt.Fprintf(term.out, "%s> ", nav.Active())
		line, ok := term.readLine()
		if !ok {
			return
		}

		switch line {
		case "":
		case "login":
			username := term.prompt("Username")
			password := term.prompt("Password")
			sess, err := gw.Login(ctx, username, password)
			if err != nil {
				notifier.Notify(loginErrorMessage(err), ui.SeverityError)
				continue
			}
			notifier.Notify(fmt.Sprintf("Signed in as %s (%s)", sess.DisplayName, sess.Role), ui.SeveritySuccess)
			term.enterSection(ctx, nav.Active(), loaders)
		case "logout":
			if err := gw.Logout(ctx); err != nil {
				term.printf("logout failed: %v", err)
				continue
			}
			term.printf("signed out")
		case "register":
			draft := portal.PatientDraft{
				FirstName:     term.prompt("First name"),
				LastName:      term.prompt("Last name"),
				DOB:           term.prompt("Date of birth (YYYY-MM-DD)"),
				ContactNumber: term.prompt("Contact number"),
				Address:       term.prompt("Address"),
			}
			_ = register.Submit(ctx, draft)
		case "book":
			input := workflow.BookingInput{
				PatientUID:      term.promptDefault("Patient ID", term.patientUIDPrefill),
				DoctorID:        term.prompt("Doctor ID"),
				AppointmentTime: term.prompt("Appointment time (RFC 3339)"),
				Status:          portal.AppointmentStatus(term.promptDefault("Status", string(portal.StatusPending))),
			}
			_ = booking.Submit(ctx, input)
		case "status":
			_ = status.Submit(ctx, term.prompt("Appointment ID"))
		case "quit", "exit":
			return
		case "help":
			term.printf("commands: login logout register book status goto <section> help quit")
			term.printf("sections: dashboard register appointments status patients")
		default:
			if target, ok := strings.CutPrefix(line, "goto "); ok {
				if err := nav.Activate(ui.Section(strings.TrimSpace(target))); err != nil {
					term.printf("unknown section %q", target)
				}
				continue
			}
			term.printf("unknown command %q (try 'help')", line)
		}
	}
}

func buildSessionStore(cfg config.Config) (session.Store, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		client, err := session.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Printf("error closing redis: %v", err)
			}
		}
		return session.NewRedisStore(client, cfg.TerminalID), cleanup, nil
	case config.SessionStoreMemory:
		return session.NewMemoryStore(), func() {}, nil
	default:
		return session.NewFileStore(cfg.SessionFile), func() {}, nil
	}
}

func loginErrorMessage(err error) string {
	var rej *gateway.BackendRejection
	if errors.As(err, &rej) && rej.Detail != "" {
		return "Error: " + rej.Detail
	}
	var netErr *gateway.NetworkError
	if errors.As(err, &netErr) {
		return netErr.Error()
	}
	return "Error: login failed"
}

// terminal is the UI adapter: it implements the forms, audit and loader view
// boundaries over plain line-based input/output.
type terminal struct {
	in  *bufio.Scanner
	out *os.File

	patientUIDPrefill string
}

func newTerminal(in *os.File, out *os.File) *terminal {
	return &terminal{in: bufio.NewScanner(in), out: out}
}

func (t *terminal) readLine() (string, bool) {
	if !t.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}

func (t *terminal) prompt(label string) string {
	fmt.Fprintf(t.out, "%s: ", label)
	line, _ := t.readLine()
	return line
}

func (t *terminal) promptDefault(label, def string) string {
	if def == "" {
		return t.prompt(label)
	}
	fmt.Fprintf(t.out, "%s [%s]: ", label, def)
	line, _ := t.readLine()
	if line == "" {
		return def
	}
	return line
}

func (t *terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format+"\n", args...)
}

func (t *terminal) enterSection(ctx context.Context, s ui.Section, loaders *loader.Loader) {
	t.printf("-- %s --", s)
	switch s {
	case ui.SectionDashboard:
		loaders.LoadDashboard(ctx, t)
	case ui.SectionPatients:
		loaders.LoadPatients(ctx, t)
	}
}

// RenderRaw implements workflow.AuditView.
func (t *terminal) RenderRaw(payload []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, payload, "", "  "); err != nil {
		t.printf("%s", payload)
		return
	}
	t.printf("%s", pretty.String())
}

// Forms implementation. The terminal collects fields per command, so resets
// only clear the cross-form patient id prefill state.
func (t *terminal) ResetRegisterForm()    {}
func (t *terminal) ResetAppointmentForm() { t.patientUIDPrefill = "" }
func (t *terminal) ResetStatusForm()      {}

func (t *terminal) SetAppointmentPatientUID(uid int64) {
	t.patientUIDPrefill = fmt.Sprintf("%d", uid)
}

// Loader views.
func (t *terminal) RenderStats(stats portal.DashboardStats) {
	t.printf("patients=%d today_appointments=%d pending_queue=%d",
		stats.TotalPatients, stats.TodayAppointments, stats.PendingQueue)
}

func (t *terminal) RenderStatsError(placeholder string) {
	t.printf("%s", placeholder)
}

func (t *terminal) RenderPatients(patients []portal.PatientSummary) {
	for _, p := range patients {
		t.printf("%4d  %s %s  dob=%s  %s", p.PatientUID, p.FirstName, p.LastName, p.DOB, p.ContactNumber)
	}
	t.printf("%d patients", len(patients))
}

func (t *terminal) RenderPatientsError(placeholder string) {
	t.printf("%s", placeholder)
}
