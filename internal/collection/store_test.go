package collection

import (
	"testing"

	"github.com/invoicedesk/invoicedesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore() *Store {
	logger, _ := zap.NewDevelopment()
	return NewStore(logger)
}

func draftNumbered(n string) models.InvoiceDraft {
	return models.InvoiceDraft{
		InvoiceNumber: n,
		IssueDate:     "2026-09-01",
		Lines:         []models.LineItem{{Description: "Widget", Qty: 1, Price: 10}},
	}
}

func TestStore_Save(t *testing.T) {
	t.Run("assigns identity and creation time", func(t *testing.T) {
		s := newTestStore()

		inv := s.Save(draftNumbered("INV-1"))

		assert.Regexp(t, `^inv-`, inv.ID)
		assert.NotEmpty(t, inv.CreatedAt)
		assert.Equal(t, "INV-1", inv.InvoiceNumber)
	})

	t.Run("inserts newest first", func(t *testing.T) {
		s := newTestStore()

		s.Save(draftNumbered("A"))
		s.Save(draftNumbered("B"))

		list := s.List()
		require.Len(t, list, 2)
		assert.Equal(t, "B", list[0].InvoiceNumber)
		assert.Equal(t, "A", list[1].InvoiceNumber)
	})

	t.Run("rapid saves never collide on id", func(t *testing.T) {
		s := newTestStore()

		seen := make(map[string]bool)
		for i := 0; i < 200; i++ {
			inv := s.Save(draftNumbered("INV"))
			assert.False(t, seen[inv.ID], "duplicate id %s", inv.ID)
			seen[inv.ID] = true
		}
		assert.Equal(t, 200, s.Len())
	})
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore()
	a := s.Save(draftNumbered("A"))
	b := s.Save(draftNumbered("B"))

	t.Run("removes by id", func(t *testing.T) {
		assert.True(t, s.Remove(a.ID))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		before := s.List()

		assert.False(t, s.Remove("inv-missing"))

		assert.Equal(t, before, s.List(), "collection unchanged in length and order")
	})

	t.Run("removing twice reports not found", func(t *testing.T) {
		assert.True(t, s.Remove(b.ID))
		assert.False(t, s.Remove(b.ID))
	})
}

func TestStore_Update(t *testing.T) {
	s := newTestStore()
	orig := s.Save(draftNumbered("A"))

	t.Run("replaces fields but keeps identity", func(t *testing.T) {
		updated, ok := s.Update(orig.ID, draftNumbered("A-revised"))

		require.True(t, ok)
		assert.Equal(t, orig.ID, updated.ID)
		assert.Equal(t, orig.CreatedAt, updated.CreatedAt)
		assert.Equal(t, "A-revised", updated.InvoiceNumber)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		_, ok := s.Update("inv-missing", draftNumbered("X"))
		assert.False(t, ok)
	})
}

func TestStore_Clear(t *testing.T) {
	s := newTestStore()
	s.Save(draftNumbered("A"))
	s.Save(draftNumbered("B"))

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.List())

	// Clearing an already empty collection is a no-op
	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestStore_Load(t *testing.T) {
	s := newTestStore()
	s.Save(draftNumbered("old"))

	snapshot := []models.SavedInvoice{
		{InvoiceDraft: draftNumbered("B"), ID: "inv-b", CreatedAt: "2026-09-01T10:00:00Z"},
		{InvoiceDraft: draftNumbered("A"), ID: "inv-a", CreatedAt: "2026-09-01T09:00:00Z"},
	}
	s.Load(snapshot)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "inv-b", list[0].ID)
	assert.Equal(t, "inv-a", list[1].ID)
}

func TestStore_ListIsolation(t *testing.T) {
	s := newTestStore()
	s.Save(draftNumbered("A"))

	list := s.List()
	list[0].Lines[0].Price = 999

	assert.Equal(t, 10.0, s.List()[0].Lines[0].Price, "List must return copies")
}
