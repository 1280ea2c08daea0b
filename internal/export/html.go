package export

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/invoicedesk/invoicedesk/internal/models"
	"github.com/invoicedesk/invoicedesk/internal/money"
)

// The printable document is fully self-contained: inline styles, no
// external resources. All user-supplied fields pass through html/template
// contextual escaping, so text like "<script>" renders as literal text.
var printableTmpl = template.Must(template.New("printable").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.InvoiceNumber}}</title>
<style>
  body { font-family: Arial, sans-serif; padding: 28px; color: #222; }
  .r { text-align: right; }
  table { width: 100%; border-collapse: collapse; margin-top: 16px; }
  td, th { border-bottom: 1px solid #ccc; padding: 6px; }
  th { text-align: left; }
  th.r { text-align: right; }
  .totals { text-align: right; margin-top: 20px; line-height: 1.6; }
</style>
</head>
<body>
<h2>Invoice &mdash; {{.InvoiceNumber}}</h2>
<p>Issue date: {{.IssueDate}}</p>
<p>Bill to: <strong>{{.ClientName}}</strong> &mdash; {{.ClientEmail}}</p>

<table>
  <thead>
    <tr>
      <th>Description</th><th class="r">Qty</th><th class="r">Unit</th><th class="r">Total</th>
    </tr>
  </thead>
  <tbody>
{{- range .Lines}}
    <tr>
      <td>{{.Description}}</td>
      <td class="r">{{.Qty}}</td>
      <td class="r">{{.Price}}</td>
      <td class="r">{{.Amount}}</td>
    </tr>
{{- end}}
  </tbody>
</table>

<h3 class="totals">
  Subtotal: {{.Subtotal}}<br>
  Tax ({{.TaxPct}}%): {{.TaxAmount}}<br>
  <strong>Total: {{.Total}}</strong>
</h3>
</body>
</html>
`))

type printableLine struct {
	Description string
	Qty         string
	Price       string
	Amount      string
}

type printableData struct {
	InvoiceNumber string
	IssueDate     string
	ClientName    string
	ClientEmail   string
	TaxPct        string
	Lines         []printableLine
	Subtotal      string
	TaxAmount     string
	Total         string
}

// PrintableHTML renders a record as a standalone printable document. The
// totals block is recomputed from the lines, never read from the record.
func (e *Exporter) PrintableHTML(d models.InvoiceDraft) ([]byte, error) {
	totals := money.ComputeDraftTotals(d).View()

	data := printableData{
		InvoiceNumber: d.InvoiceNumber,
		IssueDate:     d.IssueDate,
		ClientName:    d.ClientName,
		ClientEmail:   d.ClientEmail,
		TaxPct:        trimFloat(d.TaxPct),
		Subtotal:      totals.Subtotal,
		TaxAmount:     totals.TaxAmount,
		Total:         totals.Total,
	}
	for _, l := range d.Lines {
		data.Lines = append(data.Lines, printableLine{
			Description: l.Description,
			Qty:         trimFloat(l.Qty),
			Price:       money.FormatFloat(l.Price),
			Amount:      money.LineAmount(l),
		})
	}

	var buf bytes.Buffer
	if err := printableTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render printable document: %w", err)
	}
	return buf.Bytes(), nil
}

func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
