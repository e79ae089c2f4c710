package artifact

import (
	"github.com/go-pdf/fpdf"
)

// pdfDocument adapts one A4 portrait page of an fpdf document to Document.
type pdfDocument struct {
	pdf *fpdf.Fpdf
}

func newPDFDocument() Document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	return &pdfDocument{pdf: pdf}
}

func (d *pdfDocument) SetFont(family, style string, size float64) {
	d.pdf.SetFont(family, style, size)
}

func (d *pdfDocument) Text(x, y float64, s string) {
	d.pdf.Text(x, y, s)
}

func (d *pdfDocument) Save(path string) error {
	return d.pdf.OutputFileAndClose(path)
}
