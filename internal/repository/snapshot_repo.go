package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/invoicedesk/invoicedesk/internal/models"
	"github.com/invoicedesk/invoicedesk/pkg/database"
	"go.uber.org/zap"
)

// SnapshotRepository persists the editor's durable state: the in-progress
// draft and the saved-invoice collection. Records are stored as JSON
// payloads; the in-memory session stays authoritative and this store is
// only consulted at startup.
type SnapshotRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *database.DB, logger *zap.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		db:     db,
		logger: logger,
	}
}

// SaveDraft durably records the current draft snapshot. A nil draft clears
// the stored snapshot (the editor has no draft in progress).
func (r *SnapshotRepository) SaveDraft(d *models.InvoiceDraft) error {
	if d == nil {
		if _, err := r.db.Exec("DELETE FROM draft_snapshot WHERE id = 1"); err != nil {
			r.logger.Error("Failed to clear draft snapshot", zap.Error(err))
			return fmt.Errorf("failed to clear draft snapshot: %w", err)
		}
		return nil
	}

	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	query := `
		INSERT INTO draft_snapshot (id, payload, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.Exec(query, string(payload)); err != nil {
		r.logger.Error("Failed to save draft snapshot", zap.Error(err))
		return fmt.Errorf("failed to save draft snapshot: %w", err)
	}

	return nil
}

// LoadDraft retrieves the last durable draft snapshot, or nil when none
// was recorded.
func (r *SnapshotRepository) LoadDraft() (*models.InvoiceDraft, error) {
	var payload string
	err := r.db.QueryRow("SELECT payload FROM draft_snapshot WHERE id = 1").Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to load draft snapshot", zap.Error(err))
		return nil, fmt.Errorf("failed to load draft snapshot: %w", err)
	}

	var d models.InvoiceDraft
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft snapshot: %w", err)
	}
	return &d, nil
}

// ReplaceInvoices replaces the persisted collection with the given
// newest-first list in a single transaction.
func (r *SnapshotRepository) ReplaceInvoices(invoices []models.SavedInvoice) error {
	err := r.db.WithTransaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM invoices"); err != nil {
			return fmt.Errorf("failed to clear invoices: %w", err)
		}

		for i, inv := range invoices {
			payload, err := json.Marshal(inv)
			if err != nil {
				return fmt.Errorf("failed to marshal invoice %s: %w", inv.ID, err)
			}
			if _, err := tx.Exec(
				"INSERT INTO invoices (id, position, payload, created_at) VALUES (?, ?, ?, ?)",
				inv.ID, i, string(payload), inv.CreatedAt,
			); err != nil {
				return fmt.Errorf("failed to insert invoice %s: %w", inv.ID, err)
			}
		}
		return nil
	})

	if err != nil {
		r.logger.Error("Failed to replace invoice snapshot", zap.Error(err))
		return err
	}

	return nil
}

// LoadInvoices retrieves the persisted collection in its stored order.
func (r *SnapshotRepository) LoadInvoices() ([]models.SavedInvoice, error) {
	rows, err := r.db.Query("SELECT payload FROM invoices ORDER BY position ASC")
	if err != nil {
		r.logger.Error("Failed to load invoice snapshot", zap.Error(err))
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	defer rows.Close()

	var invoices []models.SavedInvoice
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}

		var inv models.SavedInvoice
		if err := json.Unmarshal([]byte(payload), &inv); err != nil {
			return nil, fmt.Errorf("failed to unmarshal invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}
