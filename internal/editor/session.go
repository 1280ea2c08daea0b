// Package editor ties the draft manager, the collection store and the
// durable snapshot store together into one editing session. All editor
// state is owned by the Session; nothing lives at package scope, so tests
// and embedders can run independent sessions side by side.
package editor

import (
	"fmt"
	"sync"

	"github.com/invoicedesk/invoicedesk/internal/collection"
	"github.com/invoicedesk/invoicedesk/internal/config"
	"github.com/invoicedesk/invoicedesk/internal/draft"
	"github.com/invoicedesk/invoicedesk/internal/models"
	"github.com/invoicedesk/invoicedesk/internal/money"
	"go.uber.org/zap"
)

// SnapshotStore is the external durability collaborator: it records the
// draft and collection snapshots and hands back the last durable state at
// startup.
type SnapshotStore interface {
	SaveDraft(d *models.InvoiceDraft) error
	LoadDraft() (*models.InvoiceDraft, error)
	ReplaceInvoices(invoices []models.SavedInvoice) error
	LoadInvoices() ([]models.SavedInvoice, error)
}

// Options configures session behavior.
type Options struct {
	// ResaveMode decides whether saving a previously loaded invoice appends
	// a new record (config.ResaveModeVersion) or updates the loaded one in
	// place (config.ResaveModeUpdate).
	ResaveMode string
}

// Session is a single-user editing session over one draft and one
// collection.
type Session struct {
	drafts    *draft.Manager
	store     *collection.Store
	snapshots SnapshotStore
	logger    *zap.Logger
	mode      string

	mu       sync.Mutex
	loadedID string // id of the saved invoice currently opened for editing
}

// NewSession creates a session and restores the last durable snapshot.
func NewSession(
	drafts *draft.Manager,
	store *collection.Store,
	snapshots SnapshotStore,
	opts Options,
	logger *zap.Logger,
) (*Session, error) {
	mode := opts.ResaveMode
	if mode == "" {
		mode = config.ResaveModeVersion
	}

	s := &Session{
		drafts:    drafts,
		store:     store,
		snapshots: snapshots,
		logger:    logger,
		mode:      mode,
	}

	invoices, err := snapshots.LoadInvoices()
	if err != nil {
		return nil, fmt.Errorf("failed to restore collection: %w", err)
	}
	store.Load(invoices)

	if d, err := snapshots.LoadDraft(); err != nil {
		return nil, fmt.Errorf("failed to restore draft: %w", err)
	} else if d != nil {
		drafts.Restore(*d)
	}

	logger.Info("Editor session restored",
		zap.Int("invoices", store.Len()),
		zap.String("resave_mode", mode))

	return s, nil
}

// CaptureDraft refreshes the draft snapshot from the given form state and
// returns the well-formed draft. Called on every header or line mutation.
func (s *Session) CaptureDraft(form models.FormState) models.InvoiceDraft {
	d := s.drafts.Capture(form)
	if err := s.snapshots.SaveDraft(&d); err != nil {
		// Durability is best-effort between flushes; memory stays correct.
		s.logger.Warn("Failed to persist draft snapshot", zap.Error(err))
	}
	return d
}

// Draft returns the last captured snapshot, if any.
func (s *Session) Draft() (models.InvoiceDraft, bool) {
	return s.drafts.Get()
}

// Totals derives display totals straight from form state. Safe to call on
// every keystroke.
func (s *Session) Totals(form models.FormState) money.Totals {
	return money.ComputeDraftTotals(form.Normalize())
}

// SaveInvoice captures the given form state and promotes it into the
// collection as one logical step, so the saved record always reflects the
// freshest edits rather than a stale periodic snapshot. The draft is
// cleared afterwards.
func (s *Session) SaveInvoice(form models.FormState) (models.SavedInvoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.drafts.Capture(form)

	var inv models.SavedInvoice
	if s.mode == config.ResaveModeUpdate && s.loadedID != "" {
		if updated, ok := s.store.Update(s.loadedID, d); ok {
			inv = updated
		} else {
			// The loaded record was deleted meanwhile; fall back to append.
			inv = s.store.Save(d)
		}
	} else {
		inv = s.store.Save(d)
	}

	s.loadedID = ""
	s.drafts.Discard()

	if err := s.snapshots.ReplaceInvoices(s.store.List()); err != nil {
		return inv, fmt.Errorf("invoice saved but snapshot not persisted: %w", err)
	}
	if err := s.snapshots.SaveDraft(nil); err != nil {
		s.logger.Warn("Failed to clear draft snapshot", zap.Error(err))
	}

	return inv, nil
}

// LoadInvoice opens a saved invoice for editing: it returns the record's
// form state, primes the draft manager with it and remembers the source id
// for update-mode resaves.
func (s *Session) LoadInvoice(id string) (models.FormState, bool) {
	inv, ok := s.store.Get(id)
	if !ok {
		return models.FormState{}, false
	}

	s.mu.Lock()
	s.loadedID = id
	s.mu.Unlock()

	s.drafts.Restore(inv.InvoiceDraft)
	return models.FormStateOf(inv.InvoiceDraft), true
}

// NewInvoice resets the editor: the draft is discarded and any loaded-
// record association is dropped. The collection is untouched.
func (s *Session) NewInvoice() {
	s.mu.Lock()
	s.loadedID = ""
	s.mu.Unlock()

	s.drafts.Discard()
	if err := s.snapshots.SaveDraft(nil); err != nil {
		s.logger.Warn("Failed to clear draft snapshot", zap.Error(err))
	}
}

// Invoices returns the newest-first saved invoices.
func (s *Session) Invoices() []models.SavedInvoice {
	return s.store.List()
}

// Invoice returns one saved invoice by id.
func (s *Session) Invoice(id string) (models.SavedInvoice, bool) {
	return s.store.Get(id)
}

// Delete removes a saved invoice. Deleting an unknown id is a no-op and
// reports false.
func (s *Session) Delete(id string) bool {
	removed := s.store.Remove(id)
	if removed {
		if err := s.snapshots.ReplaceInvoices(s.store.List()); err != nil {
			s.logger.Warn("Failed to persist collection snapshot", zap.Error(err))
		}
	}
	return removed
}

// ClearAll empties the collection.
func (s *Session) ClearAll() {
	s.store.Clear()
	if err := s.snapshots.ReplaceInvoices(nil); err != nil {
		s.logger.Warn("Failed to persist collection snapshot", zap.Error(err))
	}
}

// Flush durably records the current draft and collection. The autosave
// worker calls this on its interval; it also runs once at shutdown.
func (s *Session) Flush() error {
	var derr error
	if d, ok := s.drafts.Get(); ok {
		derr = s.snapshots.SaveDraft(&d)
	} else {
		derr = s.snapshots.SaveDraft(nil)
	}
	if derr != nil {
		return fmt.Errorf("failed to flush draft: %w", derr)
	}

	if err := s.snapshots.ReplaceInvoices(s.store.List()); err != nil {
		return fmt.Errorf("failed to flush collection: %w", err)
	}
	return nil
}
