// Package collection owns the authoritative ordered list of saved
// invoices, newest first.
package collection

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/invoicedesk/invoicedesk/internal/models"
	"go.uber.org/zap"
)

// Store is the in-memory saved-invoice collection. Insertion is always at
// the front; ids are unique for the lifetime of the store. Ids are random
// rather than clock-derived, so rapid successive saves cannot collide.
type Store struct {
	logger *zap.Logger
	newID  func() string
	now    func() time.Time

	mu       sync.RWMutex
	invoices []models.SavedInvoice
}

// NewStore creates an empty collection store.
func NewStore(logger *zap.Logger) *Store {
	return &Store{
		logger: logger,
		newID:  func() string { return "inv-" + uuid.NewString() },
		now:    time.Now,
	}
}

// Save promotes a draft into a saved invoice: it assigns identity and
// creation time, inserts the record at the front and returns it.
func (s *Store) Save(d models.InvoiceDraft) models.SavedInvoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv := models.SavedInvoice{
		InvoiceDraft: d.Clone(),
		ID:           s.newID(),
		CreatedAt:    s.now().UTC().Format(time.RFC3339),
	}

	s.invoices = append([]models.SavedInvoice{inv}, s.invoices...)

	s.logger.Info("Invoice saved",
		zap.String("id", inv.ID),
		zap.String("invoice_number", inv.InvoiceNumber))

	return inv.Clone()
}

// Update replaces the draft fields of the record with the given id while
// keeping its identity and creation time. Returns false when no such
// record exists.
func (s *Store) Update(id string, d models.InvoiceDraft) (models.SavedInvoice, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.invoices {
		if s.invoices[i].ID == id {
			s.invoices[i].InvoiceDraft = d.Clone()
			s.logger.Info("Invoice updated", zap.String("id", id))
			return s.invoices[i].Clone(), true
		}
	}
	return models.SavedInvoice{}, false
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (models.SavedInvoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv.Clone(), true
		}
	}
	return models.SavedInvoice{}, false
}

// Remove deletes the record with the given id. Removing an id that is not
// present is a no-op and returns false.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, inv := range s.invoices {
		if inv.ID == id {
			s.invoices = append(s.invoices[:i], s.invoices[i+1:]...)
			s.logger.Info("Invoice removed", zap.String("id", id))
			return true
		}
	}
	return false
}

// Clear empties the collection unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = nil
	s.logger.Info("Collection cleared")
}

// List returns a newest-first copy of the collection.
func (s *Store) List() []models.SavedInvoice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SavedInvoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, inv.Clone())
	}
	return out
}

// Len returns the number of saved invoices.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invoices)
}

// Load replaces the collection contents with a previously persisted
// snapshot, preserving the given order.
func (s *Store) Load(invoices []models.SavedInvoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = make([]models.SavedInvoice, 0, len(invoices))
	for _, inv := range invoices {
		s.invoices = append(s.invoices, inv.Clone())
	}
}
