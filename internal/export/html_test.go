package export

import (
	"strings"
	"testing"

	"github.com/invoicedesk/invoicedesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintableHTML(t *testing.T) {
	e := newTestExporter()

	t.Run("renders header, rows and recomputed totals", func(t *testing.T) {
		out, err := e.PrintableHTML(sampleDraft())
		require.NoError(t, err)

		html := string(out)
		assert.Contains(t, html, "INV-100")
		assert.Contains(t, html, "Acme Corp")
		assert.Contains(t, html, "billing@acme.test")
		assert.Contains(t, html, "Widget")
		assert.Contains(t, html, "Service")
		// Totals come from the calculator, two decimals
		assert.Contains(t, html, "Subtotal: 55.50")
		assert.Contains(t, html, "Tax (8%): 4.44")
		assert.Contains(t, html, "Total: 59.94")
	})

	t.Run("is self contained", func(t *testing.T) {
		out, err := e.PrintableHTML(sampleDraft())
		require.NoError(t, err)

		html := string(out)
		assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
		assert.Contains(t, html, "<style>")
		assert.NotContains(t, html, "src=", "no external resources")
		assert.NotContains(t, html, "href=", "no external resources")
	})

	t.Run("escapes markup in user fields", func(t *testing.T) {
		d := sampleDraft()
		d.ClientName = "Eve & Sons"
		d.Lines = []models.LineItem{
			{Description: "<script>alert('x')</script>", Qty: 1, Price: 1},
		}

		out, err := e.PrintableHTML(d)
		require.NoError(t, err)

		html := string(out)
		assert.NotContains(t, html, "<script>alert")
		assert.Contains(t, html, "&lt;script&gt;")
		assert.Contains(t, html, "Eve &amp; Sons")
	})

	t.Run("escapes markup in the invoice number", func(t *testing.T) {
		d := sampleDraft()
		d.InvoiceNumber = `<img src=x onerror=alert(1)>`

		out, err := e.PrintableHTML(d)
		require.NoError(t, err)
		assert.NotContains(t, string(out), "<img src=x")
	})
}

func TestPDF(t *testing.T) {
	e := newTestExporter()

	out, err := e.PDF(sampleDraft())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), "%PDF"), "output must be a PDF document")
	assert.Greater(t, len(out), 500)
}
