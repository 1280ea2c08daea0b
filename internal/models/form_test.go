package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"plain integer", "3", 3},
		{"decimal", "25.50", 25.50},
		{"negative", "-2", -2},
		{"whitespace padded", "  4.5 ", 4.5},
		{"empty", "", 0},
		{"not a number", "abc", 0},
		{"partial number", "3x", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceNumber(tt.input))
		})
	}
}

func TestFormStateNormalize(t *testing.T) {
	t.Run("coerces malformed numerics per line", func(t *testing.T) {
		form := FormState{
			TaxPct: "oops",
			Lines: []FormLine{
				{Description: "Widget", Qty: "3", Price: "10.00"},
				{Description: "Bad", Qty: "many", Price: "free"},
			},
		}

		d := form.Normalize()

		assert.Equal(t, 0.0, d.TaxPct)
		assert.Equal(t, 3.0, d.Lines[0].Qty)
		assert.Equal(t, 10.0, d.Lines[0].Price)
		// Only the malformed line coerces to zero
		assert.Equal(t, 0.0, d.Lines[1].Qty)
		assert.Equal(t, 0.0, d.Lines[1].Price)
		assert.Equal(t, "Bad", d.Lines[1].Description)
	})

	t.Run("empty form produces a well-formed draft", func(t *testing.T) {
		d := FormState{}.Normalize()

		assert.Empty(t, d.InvoiceNumber)
		assert.Empty(t, d.Lines)
		assert.NotNil(t, d.Lines)
	})
}

func TestFormStateOfRoundTrip(t *testing.T) {
	d := InvoiceDraft{
		InvoiceNumber: "INV-100",
		IssueDate:     "2026-09-01",
		ClientName:    "Acme",
		ClientEmail:   "billing@acme.test",
		TaxPct:        8,
		Lines: []LineItem{
			{Description: "Widget", Qty: 3, Price: 10},
			{Description: "Service", Qty: 1, Price: 25.5},
		},
	}

	back := FormStateOf(d).Normalize()

	assert.Equal(t, d, back)
}

func TestDraftClone(t *testing.T) {
	d := InvoiceDraft{Lines: []LineItem{{Description: "Widget", Qty: 1, Price: 2}}}

	c := d.Clone()
	c.Lines[0].Qty = 99

	assert.Equal(t, 1.0, d.Lines[0].Qty, "clone must not share the lines slice")
}
