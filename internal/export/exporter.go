// Package export projects invoice records into their external
// representations: pretty-printed JSON, a printable HTML document, a PDF
// and an XLSX workbook. Every projection derives its totals through the
// money calculator, so exported and displayed amounts come from the same
// code path.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invoicedesk/invoicedesk/internal/models"
	"go.uber.org/zap"
)

// Exporter renders invoice records deterministically.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates a new exporter
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Collection wraps the invoice list for bulk export. The list lives under
// a named field rather than as a bare array so later schema additions stay
// backward compatible.
type Collection struct {
	Invoices []models.SavedInvoice `json:"invoices"`
}

// JSON serializes any record to pretty-printed JSON.
func (e *Exporter) JSON(record interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return data, nil
}

// CollectionJSON serializes the full invoice list under the "invoices"
// field.
func (e *Exporter) CollectionJSON(invoices []models.SavedInvoice) ([]byte, error) {
	if invoices == nil {
		invoices = []models.SavedInvoice{}
	}
	return e.JSON(Collection{Invoices: invoices})
}

// ParseDraft is the inverse of JSON for a draft record.
func ParseDraft(data []byte) (models.InvoiceDraft, error) {
	var d models.InvoiceDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return models.InvoiceDraft{}, fmt.Errorf("failed to parse draft: %w", err)
	}
	return d, nil
}

// ParseSaved is the inverse of JSON for a saved invoice.
func ParseSaved(data []byte) (models.SavedInvoice, error) {
	var inv models.SavedInvoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return models.SavedInvoice{}, fmt.Errorf("failed to parse invoice: %w", err)
	}
	return inv, nil
}

// ParseCollection is the inverse of CollectionJSON.
func ParseCollection(data []byte) (Collection, error) {
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return Collection{}, fmt.Errorf("failed to parse collection: %w", err)
	}
	return c, nil
}

// FileName derives the download file name for a single record,
// "<invoiceNumber>.json" with path-hostile characters stripped.
func FileName(d models.InvoiceDraft) string {
	name := sanitizeFileName(d.InvoiceNumber)
	if name == "" {
		name = "invoice"
	}
	return name + ".json"
}

// CollectionFileName is the bulk-export file name.
func CollectionFileName() string {
	return "invoices.json"
}

func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
}
