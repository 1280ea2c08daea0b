package export

import (
	"bytes"
	"fmt"

	"github.com/invoicedesk/invoicedesk/internal/models"
	"github.com/invoicedesk/invoicedesk/internal/money"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const workbookSheet = "Invoices"

// Workbook renders the full collection as a one-sheet XLSX summary, one
// row per saved invoice with its recomputed totals.
func (e *Exporter) Workbook(invoices []models.SavedInvoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(workbookSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		e.logger.Warn("Failed to remove default sheet", zap.Error(err))
	}

	headers := []string{"Invoice #", "Issue Date", "Client", "Email", "Items", "Subtotal", "Tax", "Total", "Saved At"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		e.setCell(f, cell, h)
	}

	for row, inv := range invoices {
		totals := money.ComputeDraftTotals(inv.InvoiceDraft).View()
		values := []interface{}{
			inv.InvoiceNumber,
			inv.IssueDate,
			inv.ClientName,
			inv.ClientEmail,
			len(inv.Lines),
			totals.Subtotal,
			totals.TaxAmount,
			totals.Total,
			inv.CreatedAt,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			e.setCell(f, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// setCell sets a cell value on the workbook sheet
func (e *Exporter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(workbookSheet, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
