package artifact

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/clinicware/portal-client/internal/portal"
)

type drawOp struct {
	x, y float64
	text string
}

type fakeDocument struct {
	ops     []drawOp
	fonts   []string
	saved   string
	saveErr error
}

func (d *fakeDocument) SetFont(family, style string, size float64) {
	d.fonts = append(d.fonts, fmt.Sprintf("%s/%s/%.0f", family, style, size))
}

func (d *fakeDocument) Text(x, y float64, s string) {
	d.ops = append(d.ops, drawOp{x: x, y: y, text: s})
}

func (d *fakeDocument) Save(path string) error {
	d.saved = path
	return d.saveErr
}

func testResult() portal.AppointmentResult {
	return portal.AppointmentResult{
		ID:              "8e2f9b34-1c15-4a7e-9f80-a2f2a54f0c11",
		PatientUID:      42,
		DoctorID:        "DR-007",
		AppointmentTime: time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC),
		Status:          portal.StatusConfirmed,
		QueueToken:      "CONFIRMED-A1B2C3",
	}
}

func TestGenerate_LayoutIsDeterministic(t *testing.T) {
	doc := &fakeDocument{}
	g := &Generator{dir: "/tmp/slips", newDoc: func() Document { return doc }}

	path, err := g.Generate(testResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if path != "/tmp/slips/appointment_8e2f9b34-1c15-4a7e-9f80-a2f2a54f0c11.pdf" {
		t.Errorf("unexpected path %q", path)
	}
	if doc.saved != path {
		t.Errorf("document saved to %q, returned %q", doc.saved, path)
	}

	want := []drawOp{
		{titleX, titleY, "Appointment Confirmation"},
		{fieldX, firstY, "Appointment ID: 8e2f9b34-1c15-4a7e-9f80-a2f2a54f0c11"},
		{fieldX, firstY + stepY, "Patient UID: 42"},
		{fieldX, firstY + 2*stepY, "Doctor: DR-007"},
		{fieldX, firstY + 3*stepY, "Time: Tue, 01 Sep 2026 10:30"},
		{fieldX, firstY + 4*stepY, "Status: CONFIRMED"},
		{fieldX, firstY + 5*stepY, "Queue Token: CONFIRMED-A1B2C3"},
	}
	if len(doc.ops) != len(want) {
		t.Fatalf("expected %d draw ops, got %d", len(want), len(doc.ops))
	}
	for i, op := range doc.ops {
		if op != want[i] {
			t.Errorf("op %d: got %+v, want %+v", i, op, want[i])
		}
	}

	if len(doc.fonts) != 2 || doc.fonts[0] != "Helvetica/B/18" || doc.fonts[1] != "Helvetica//12" {
		t.Errorf("unexpected font sequence %v", doc.fonts)
	}
}

func TestGenerate_SaveFailure(t *testing.T) {
	doc := &fakeDocument{saveErr: errors.New("disk full")}
	g := &Generator{dir: ".", newDoc: func() Document { return doc }}

	if _, err := g.Generate(testResult()); err == nil {
		t.Fatal("expected error")
	}
}

func TestGenerate_RealPDF(t *testing.T) {
	g := NewGenerator(t.TempDir())

	path, err := g.Generate(testResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		t.Fatalf("expected emitted file: %v", statErr)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty PDF")
	}
}
