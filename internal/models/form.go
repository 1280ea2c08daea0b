package models

import (
	"strconv"
	"strings"
)

// FormLine is one line-item row exactly as the editing surface holds it.
// Qty and Price stay textual; coercion happens at capture time.
type FormLine struct {
	Description string `json:"description"`
	Qty         string `json:"qty"`
	Price       string `json:"price"`
}

// FormState is the structured form input supplied by the UI layer on every
// relevant event: header fields plus the ordered line rows.
type FormState struct {
	InvoiceNumber string     `json:"invoiceNumber"`
	IssueDate     string     `json:"issueDate"`
	ClientName    string     `json:"clientName"`
	ClientEmail   string     `json:"clientEmail"`
	TaxPct        string     `json:"taxPct"`
	Lines         []FormLine `json:"lines"`
}

// CoerceNumber parses a user-supplied numeric field. Anything that does not
// parse as a number coerces to 0; this path never fails.
func CoerceNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// Normalize converts raw form input into a well-formed draft. Numeric
// coercion is applied per field; header defaults are the draft manager's
// responsibility, not this function's.
func (f FormState) Normalize() InvoiceDraft {
	lines := make([]LineItem, 0, len(f.Lines))
	for _, row := range f.Lines {
		lines = append(lines, LineItem{
			Description: row.Description,
			Qty:         CoerceNumber(row.Qty),
			Price:       CoerceNumber(row.Price),
		})
	}

	return InvoiceDraft{
		InvoiceNumber: strings.TrimSpace(f.InvoiceNumber),
		IssueDate:     strings.TrimSpace(f.IssueDate),
		ClientName:    f.ClientName,
		ClientEmail:   f.ClientEmail,
		TaxPct:        CoerceNumber(f.TaxPct),
		Lines:         lines,
	}
}

// FormStateOf converts a record back into editable form state, used when a
// saved invoice is loaded into the editor.
func FormStateOf(d InvoiceDraft) FormState {
	lines := make([]FormLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, FormLine{
			Description: l.Description,
			Qty:         strconv.FormatFloat(l.Qty, 'f', -1, 64),
			Price:       strconv.FormatFloat(l.Price, 'f', -1, 64),
		})
	}

	return FormState{
		InvoiceNumber: d.InvoiceNumber,
		IssueDate:     d.IssueDate,
		ClientName:    d.ClientName,
		ClientEmail:   d.ClientEmail,
		TaxPct:        strconv.FormatFloat(d.TaxPct, 'f', -1, 64),
		Lines:         lines,
	}
}
