package pdf

import (
	"bytes"

	"github.com/go-pdf/fpdf"

	"github.com/saifinance/loan-inquiry-api/internal/application"
)

const (
	labelWidth = 62
	rowHeight  = 9
)

// Renderer produces the fixed-layout application document handed out by the
// export endpoint.
type Renderer struct{}

// NewRenderer builds a PDF renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render lays out the application as a one-page label/value table.
func (r *Renderer) Render(app application.Application) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Loan Application", false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 12, "Loan Inquiry Application", "", 1, "C", false, 0, "")
	doc.Ln(4)

	other := ""
	if app.LoanCategoryOther != nil {
		other = *app.LoanCategoryOther
	}

	rows := []struct{ label, value string }{
		{"Name", app.Name},
		{"Phone Number", app.PhoneNumber},
		{"Primary Contact Number", app.PrimaryContactNumber},
		{"Address", app.Address},
		{"Date of Birth", app.DateOfBirth.Format("02 Jan 2006")},
		{"Gender", app.Gender},
		{"Loan Category", app.LoanCategory},
		{"Loan Category (Other)", other},
		{"Referral Name 1", app.ReferralName1},
		{"Referral Phone 1", app.ReferralPhone1},
		{"Referral Name 2", app.ReferralName2},
		{"Referral Phone 2", app.ReferralPhone2},
		{"Submitted At", app.SubmittedAt.Format("02 Jan 2006 15:04 MST")},
	}

	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(labelWidth, rowHeight, row.label, "1", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, rowHeight, row.value, "1", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
