package money

import (
	"testing"

	"github.com/invoicedesk/invoicedesk/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	t.Run("empty lines yield zero totals", func(t *testing.T) {
		totals := ComputeTotals(nil, 8).View()

		assert.Equal(t, "0.00", totals.Subtotal)
		assert.Equal(t, "0.00", totals.TaxAmount)
		assert.Equal(t, "0.00", totals.Total)
	})

	t.Run("widget and service scenario", func(t *testing.T) {
		lines := []models.LineItem{
			{Description: "Widget", Qty: 3, Price: 10.00},
			{Description: "Service", Qty: 1, Price: 25.50},
		}

		totals := ComputeTotals(lines, 8).View()

		assert.Equal(t, "55.50", totals.Subtotal)
		assert.Equal(t, "4.44", totals.TaxAmount)
		assert.Equal(t, "59.94", totals.Total)
	})

	t.Run("zero tax rate", func(t *testing.T) {
		lines := []models.LineItem{{Description: "Widget", Qty: 2, Price: 9.99}}

		totals := ComputeTotals(lines, 0).View()

		assert.Equal(t, "19.98", totals.Subtotal)
		assert.Equal(t, "0.00", totals.TaxAmount)
		assert.Equal(t, "19.98", totals.Total)
	})

	t.Run("negative quantities flow through as credits", func(t *testing.T) {
		lines := []models.LineItem{
			{Description: "Widget", Qty: 2, Price: 50},
			{Description: "Credit", Qty: -1, Price: 30},
		}

		totals := ComputeTotals(lines, 10).View()

		assert.Equal(t, "70.00", totals.Subtotal)
		assert.Equal(t, "7.00", totals.TaxAmount)
		assert.Equal(t, "77.00", totals.Total)
	})

	t.Run("fractional cents round half up", func(t *testing.T) {
		// 3 x 0.335 = 1.005, rounds to 1.01
		lines := []models.LineItem{{Description: "Part", Qty: 3, Price: 0.335}}

		totals := ComputeTotals(lines, 0).View()

		assert.Equal(t, "1.01", totals.Subtotal)
	})

	t.Run("referential transparency", func(t *testing.T) {
		lines := []models.LineItem{{Description: "Widget", Qty: 7, Price: 13.37}}

		first := ComputeTotals(lines, 19)
		second := ComputeTotals(lines, 19)

		assert.True(t, first.Total.Equal(second.Total))
		assert.Equal(t, 7.0, lines[0].Qty, "input must not be mutated")
	})
}

func TestLineAmount(t *testing.T) {
	assert.Equal(t, "25.50", LineAmount(models.LineItem{Qty: 1, Price: 25.50}))
	assert.Equal(t, "30.00", LineAmount(models.LineItem{Qty: 3, Price: 10}))
	assert.Equal(t, "-30.00", LineAmount(models.LineItem{Qty: -1, Price: 30}))
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "8.00", FormatFloat(8))
	assert.Equal(t, "0.10", FormatFloat(0.1))
}
