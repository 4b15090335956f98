// Package pdf renders prescription documents to PDF files on disk.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"telemed/internal/domain"
)

// Renderer writes prescription PDFs into a directory.
type Renderer struct {
	dir string
}

// New creates a Renderer writing into dir.
func New(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Render produces the prescription PDF and returns its path.
func (r *Renderer) Render(_ context.Context, doc domain.PrescriptionDocument) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", err
	}

	p := fpdf.New("P", "mm", "A4", "")
	p.AddPage()

	p.SetFont("Helvetica", "B", 20)
	p.CellFormat(0, 12, "Medical Prescription", "", 1, "C", false, 0, "")
	p.SetFont("Helvetica", "", 10)
	p.CellFormat(0, 6, "Date: "+doc.Date.Format("02 Jan 2006"), "", 1, "C", false, 0, "")
	p.Ln(4)
	p.SetDrawColor(51, 51, 51)
	p.Line(10, p.GetY(), 200, p.GetY())
	p.Ln(6)

	p.SetFont("Helvetica", "B", 14)
	p.CellFormat(0, 8, "Dr. "+doc.DoctorName, "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 11)
	p.CellFormat(0, 6, "Specialty: "+doc.DoctorSpecialty, "", 1, "L", false, 0, "")
	p.CellFormat(0, 6, fmt.Sprintf("Experience: %d years", doc.DoctorExperience), "", 1, "L", false, 0, "")
	p.Ln(4)

	p.SetFillColor(245, 245, 245)
	p.SetFont("Helvetica", "B", 12)
	p.CellFormat(0, 8, "Patient Information", "", 1, "L", true, 0, "")
	p.SetFont("Helvetica", "", 11)
	p.CellFormat(0, 6, "Name: "+doc.PatientName, "", 1, "L", true, 0, "")
	p.CellFormat(0, 6, fmt.Sprintf("Age: %d", doc.PatientAge), "", 1, "L", true, 0, "")
	p.Ln(6)

	p.SetFont("Helvetica", "B", 12)
	p.CellFormat(0, 8, "Care to be Taken", "B", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 11)
	p.MultiCell(0, 6, doc.CareToBeTaken, "", "L", false)
	p.Ln(4)

	medicines := doc.Medicines
	if medicines == "" {
		medicines = "No medicines prescribed"
	}
	p.SetFont("Helvetica", "B", 12)
	p.CellFormat(0, 8, "Medicines", "B", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 11)
	p.MultiCell(0, 6, medicines, "", "L", false)
	p.Ln(12)

	p.SetFont("Helvetica", "", 11)
	p.CellFormat(0, 6, "_________________________", "", 1, "R", false, 0, "")
	p.CellFormat(0, 6, "Dr. "+doc.DoctorName, "", 1, "R", false, 0, "")
	p.CellFormat(0, 6, "Digital Signature", "", 1, "R", false, 0, "")
	p.Ln(8)

	p.SetFont("Helvetica", "I", 9)
	p.SetTextColor(102, 102, 102)
	p.CellFormat(0, 5, "This is a digitally generated prescription. Please consult your doctor for any clarifications.", "", 1, "C", false, 0, "")

	path := filepath.Join(r.dir, "prescription-"+doc.PrescriptionID+".pdf")
	if err := p.OutputFileAndClose(path); err != nil {
		return "", err
	}
	return path, nil
}
