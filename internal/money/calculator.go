// Package money derives invoice totals from line items and the tax rate.
// Totals are never stored; every consumer recomputes them from the lines so
// no cached value can drift from the record.
package money

import (
	"github.com/invoicedesk/invoicedesk/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals holds the derived amounts for one invoice record.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals derives subtotal, tax amount and grand total from the line
// items and tax percentage. Pure and side-effect free; an empty line slice
// yields all zeros. Negative quantities or prices flow through unchanged
// (credit/adjustment lines).
func ComputeTotals(lines []models.LineItem, taxPct float64) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		qty := decimal.NewFromFloat(l.Qty)
		price := decimal.NewFromFloat(l.Price)
		subtotal = subtotal.Add(qty.Mul(price))
	}

	tax := subtotal.Mul(decimal.NewFromFloat(taxPct)).Div(hundred)

	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}

// ComputeDraftTotals is a convenience wrapper over ComputeTotals for a full
// draft record.
func ComputeDraftTotals(d models.InvoiceDraft) Totals {
	return ComputeTotals(d.Lines, d.TaxPct)
}

// LineAmount returns the formatted qty x price amount for a single line.
func LineAmount(l models.LineItem) string {
	return Format(decimal.NewFromFloat(l.Qty).Mul(decimal.NewFromFloat(l.Price)))
}

// FormatFloat renders a raw float amount with two decimal places.
func FormatFloat(v float64) string {
	return Format(decimal.NewFromFloat(v))
}

// Format renders an amount with exactly two decimal places, rounding
// half-up. Display and export both go through this one function so the
// presented totals can never disagree.
func Format(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// View is the presentation form of Totals, with every amount already
// rounded to two decimals.
type View struct {
	Subtotal  string `json:"subtotal"`
	TaxAmount string `json:"taxAmount"`
	Total     string `json:"total"`
}

// View converts the totals into their two-decimal presentation form.
func (t Totals) View() View {
	return View{
		Subtotal:  Format(t.Subtotal),
		TaxAmount: Format(t.TaxAmount),
		Total:     Format(t.Total),
	}
}
