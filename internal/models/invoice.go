package models

// LineItem is one billable row of an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	Price       float64 `json:"price"`
}

// Amount returns the line total (qty x price).
func (l LineItem) Amount() float64 {
	return l.Qty * l.Price
}

// InvoiceDraft is the invoice currently being edited, before it has been
// promoted into the collection.
type InvoiceDraft struct {
	InvoiceNumber string     `json:"invoiceNumber"`
	IssueDate     string     `json:"issueDate"` // ISO date, YYYY-MM-DD
	ClientName    string     `json:"clientName"`
	ClientEmail   string     `json:"clientEmail"`
	TaxPct        float64    `json:"taxPct"`
	Lines         []LineItem `json:"lines"`
}

// Clone returns a deep copy of the draft so snapshots never share the
// lines slice with the editing surface.
func (d InvoiceDraft) Clone() InvoiceDraft {
	out := d
	out.Lines = make([]LineItem, len(d.Lines))
	copy(out.Lines, d.Lines)
	return out
}

// SavedInvoice is an InvoiceDraft with immutable identity assigned at save
// time. ID and CreatedAt never change after creation.
type SavedInvoice struct {
	InvoiceDraft
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"` // ISO datetime at save time
}

// Clone returns a deep copy of the saved invoice.
func (s SavedInvoice) Clone() SavedInvoice {
	out := s
	out.InvoiceDraft = s.InvoiceDraft.Clone()
	return out
}
