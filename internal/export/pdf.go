package export

import (
	"bytes"
	"fmt"

	"github.com/invoicedesk/invoicedesk/internal/models"
	"github.com/invoicedesk/invoicedesk/internal/money"
	"github.com/jung-kurt/gofpdf"
)

// PDF renders a record as a printable PDF document with the same layout as
// the HTML projection: header fields, one row per line item, recomputed
// totals.
func (e *Exporter) PDF(d models.InvoiceDraft) ([]byte, error) {
	totals := money.ComputeDraftTotals(d).View()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Invoice - "+d.InvoiceNumber)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, "Issue date: "+d.IssueDate)
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Bill to: %s - %s", d.ClientName, d.ClientEmail))
	pdf.Ln(12)

	// Table header
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 8, "Description", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Unit", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, l := range d.Lines {
		pdf.CellFormat(90, 8, l.Description, "B", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, trimFloat(l.Qty), "B", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, money.FormatFloat(l.Price), "B", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, money.LineAmount(l), "B", 1, "R", false, 0, "")
	}

	pdf.Ln(8)
	pdf.CellFormat(0, 7, "Subtotal: "+totals.Subtotal, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Tax (%s%%): %s", trimFloat(d.TaxPct), totals.TaxAmount), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Total: "+totals.Total, "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
