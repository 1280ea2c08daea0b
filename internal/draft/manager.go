// Package draft owns the single in-progress invoice snapshot, decoupled
// from whatever transient edits exist on the editing surface.
package draft

import (
	"fmt"
	"sync"
	"time"

	"github.com/invoicedesk/invoicedesk/internal/models"
	"go.uber.org/zap"
)

// Manager holds exactly one current editing snapshot. The autosave worker
// reads it from its own goroutine, so access is guarded.
type Manager struct {
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	current *models.InvoiceDraft

	// Defaults generated for blank header fields are sticky: once assigned
	// they are reused on every re-capture until the draft is discarded, so
	// capturing the same unmodified form twice yields an identical snapshot.
	genNumber string
	genDate   string
}

// NewManager creates a draft manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		logger: logger,
		now:    time.Now,
	}
}

// Capture normalizes the given form state, fills header defaults, stores
// the snapshot and returns a copy. It never fails; an empty form still
// produces a well-formed draft.
func (m *Manager) Capture(form models.FormState) models.InvoiceDraft {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := form.Normalize()

	if d.InvoiceNumber == "" {
		if m.genNumber == "" {
			m.genNumber = fmt.Sprintf("INV-%d", m.now().UnixMilli())
		}
		d.InvoiceNumber = m.genNumber
	}
	if d.IssueDate == "" {
		if m.genDate == "" {
			m.genDate = m.now().Format("2006-01-02")
		}
		d.IssueDate = m.genDate
	}

	snapshot := d.Clone()
	m.current = &snapshot

	m.logger.Debug("Draft captured",
		zap.String("invoice_number", d.InvoiceNumber),
		zap.Int("lines", len(d.Lines)))

	return d
}

// Get returns a copy of the last captured snapshot, or false when no draft
// exists (fresh start, after a save, or after a discard).
func (m *Manager) Get() (models.InvoiceDraft, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return models.InvoiceDraft{}, false
	}
	return m.current.Clone(), true
}

// Restore primes the manager with an existing record, e.g. a durable draft
// reloaded at startup or a saved invoice opened for editing. The record's
// header fields become the sticky defaults.
func (m *Manager) Restore(d models.InvoiceDraft) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := d.Clone()
	m.current = &snapshot
	m.genNumber = d.InvoiceNumber
	m.genDate = d.IssueDate
}

// Discard clears the held snapshot and the sticky defaults. It has no
// effect on the saved-invoice collection.
func (m *Manager) Discard() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	m.genNumber = ""
	m.genDate = ""
}
