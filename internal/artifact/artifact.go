package artifact

import (
	"fmt"
	"path/filepath"

	"github.com/clinicware/portal-client/internal/portal"
)

// Document is the drawing capability a slip is rendered onto. The production
// implementation is a PDF page; tests record the instructions instead.
type Document interface {
	SetFont(family, style string, size float64)
	Text(x, y float64, s string)
	Save(path string) error
}

// Generator renders a printable appointment slip from a completed booking.
// Rendering is a pure function of the result; the only side effect is the
// emitted file.
type Generator struct {
	dir    string
	newDoc func() Document
}

func NewGenerator(dir string) *Generator {
	return &Generator{dir: dir, newDoc: newPDFDocument}
}

const (
	titleX = 20.0
	titleY = 25.0
	fieldX = 20.0
	firstY = 45.0
	stepY  = 10.0
)

// Generate writes the slip for res and returns the emitted file path. The
// file name is derived from the appointment id.
func (g *Generator) Generate(res portal.AppointmentResult) (string, error) {
	doc := g.newDoc()

	doc.SetFont("Helvetica", "B", 18)
	doc.Text(titleX, titleY, "Appointment Confirmation")

	doc.SetFont("Helvetica", "", 12)
	fields := []struct {
		label string
		value string
	}{
		{"Appointment ID", res.ID},
		{"Patient UID", fmt.Sprintf("%d", res.PatientUID)},
		{"Doctor", res.DoctorID},
		{"Time", res.AppointmentTime.Format("Mon, 02 Jan 2006 15:04")},
		{"Status", string(res.Status)},
		{"Queue Token", res.QueueToken},
	}
	for i, f := range fields {
		doc.Text(fieldX, firstY+float64(i)*stepY, fmt.Sprintf("%s: %s", f.label, f.value))
	}

	path := filepath.Join(g.dir, fmt.Sprintf("appointment_%s.pdf", res.ID))
	if err := doc.Save(path); err != nil {
		return "", fmt.Errorf("emit appointment slip: %w", err)
	}
	return path, nil
}
