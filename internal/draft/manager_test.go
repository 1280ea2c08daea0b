package draft

import (
	"testing"
	"time"

	"github.com/invoicedesk/invoicedesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager() *Manager {
	logger, _ := zap.NewDevelopment()
	m := NewManager(logger)

	// Advancing clock so regenerated defaults would be visible
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		base = base.Add(time.Second)
		return base
	}
	return m
}

func TestManager_Capture(t *testing.T) {
	t.Run("fills defaults for blank header fields", func(t *testing.T) {
		m := newTestManager()

		d := m.Capture(models.FormState{})

		assert.Regexp(t, `^INV-\d+$`, d.InvoiceNumber)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, d.IssueDate)
		assert.Equal(t, 0.0, d.TaxPct)
	})

	t.Run("keeps user-supplied header fields", func(t *testing.T) {
		m := newTestManager()

		d := m.Capture(models.FormState{
			InvoiceNumber: "INV-custom",
			IssueDate:     "2026-01-15",
		})

		assert.Equal(t, "INV-custom", d.InvoiceNumber)
		assert.Equal(t, "2026-01-15", d.IssueDate)
	})

	t.Run("generated defaults are sticky across captures", func(t *testing.T) {
		m := newTestManager()

		first := m.Capture(models.FormState{})
		second := m.Capture(models.FormState{})

		assert.Equal(t, first.InvoiceNumber, second.InvoiceNumber)
		assert.Equal(t, first.IssueDate, second.IssueDate)
	})

	t.Run("discard resets sticky defaults", func(t *testing.T) {
		m := newTestManager()

		first := m.Capture(models.FormState{})
		m.Discard()
		second := m.Capture(models.FormState{})

		assert.NotEqual(t, first.InvoiceNumber, second.InvoiceNumber)
	})
}

func TestManager_GetDiscard(t *testing.T) {
	m := newTestManager()

	_, ok := m.Get()
	assert.False(t, ok, "fresh manager holds no draft")

	captured := m.Capture(models.FormState{
		Lines: []models.FormLine{{Description: "Widget", Qty: "3", Price: "10"}},
	})

	got, ok := m.Get()
	require.True(t, ok)
	assert.Equal(t, captured, got)

	m.Discard()
	_, ok = m.Get()
	assert.False(t, ok)
}

func TestManager_SnapshotIsolation(t *testing.T) {
	m := newTestManager()

	d := m.Capture(models.FormState{
		Lines: []models.FormLine{{Description: "Widget", Qty: "1", Price: "5"}},
	})
	d.Lines[0].Qty = 42

	held, ok := m.Get()
	require.True(t, ok)
	assert.Equal(t, 1.0, held.Lines[0].Qty, "held snapshot must not share memory with the returned draft")
}

func TestManager_Restore(t *testing.T) {
	m := newTestManager()

	m.Restore(models.InvoiceDraft{
		InvoiceNumber: "INV-7",
		IssueDate:     "2026-02-02",
		Lines:         []models.LineItem{{Description: "Widget", Qty: 1, Price: 5}},
	})

	// A capture with blank header fields reuses the restored identity
	d := m.Capture(models.FormState{})
	assert.Equal(t, "INV-7", d.InvoiceNumber)
	assert.Equal(t, "2026-02-02", d.IssueDate)
}
