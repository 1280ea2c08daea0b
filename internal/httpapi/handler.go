// Package httpapi is the thin HTTP adapter over the editor session: the
// UI layer posts form state in and receives records, totals and exported
// documents back. No editor logic lives here.
package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/invoicedesk/invoicedesk/internal/editor"
	"github.com/invoicedesk/invoicedesk/internal/export"
	"github.com/invoicedesk/invoicedesk/internal/models"
	"github.com/invoicedesk/invoicedesk/internal/storage"
	"go.uber.org/zap"
)

// Handler exposes the editor session over HTTP.
type Handler struct {
	session  *editor.Session
	exporter *export.Exporter
	sink     storage.ExportSink
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(session *editor.Session, exporter *export.Exporter, sink storage.ExportSink, logger *zap.Logger) *Handler {
	return &Handler{
		session:  session,
		exporter: exporter,
		sink:     sink,
		logger:   logger,
	}
}

// Register mounts all editor routes under /api/v1.
func (h *Handler) Register(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.POST("/draft", h.captureDraft)
		api.GET("/draft", h.getDraft)
		api.DELETE("/draft", h.discardDraft)
		api.GET("/draft/export/:format", h.exportDraft)

		api.POST("/totals", h.totals)

		api.POST("/invoices", h.saveInvoice)
		api.GET("/invoices", h.listInvoices)
		api.DELETE("/invoices", h.clearInvoices)
		api.GET("/invoices/:id", h.getInvoice)
		api.POST("/invoices/:id/load", h.loadInvoice)
		api.DELETE("/invoices/:id", h.deleteInvoice)
		api.GET("/invoices/:id/export/:format", h.exportInvoice)
		api.POST("/invoices/:id/archive", h.archiveInvoice)

		api.GET("/export/json", h.exportCollection)
		api.GET("/export/xlsx", h.exportWorkbook)
		api.POST("/export/archive", h.archiveCollection)
	}
}

// captureDraft refreshes the draft snapshot from posted form state.
func (h *Handler) captureDraft(c *gin.Context) {
	var form models.FormState
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form state"})
		return
	}

	d := h.session.CaptureDraft(form)
	c.JSON(http.StatusOK, d)
}

func (h *Handler) getDraft(c *gin.Context) {
	d, ok := h.session.Draft()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no draft in progress"})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) discardDraft(c *gin.Context) {
	h.session.NewInvoice()
	c.Status(http.StatusNoContent)
}

// totals derives display totals from posted form state without touching
// the draft.
func (h *Handler) totals(c *gin.Context) {
	var form models.FormState
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form state"})
		return
	}

	c.JSON(http.StatusOK, h.session.Totals(form).View())
}

// saveInvoice captures the posted form state and promotes it into the
// collection in one step.
func (h *Handler) saveInvoice(c *gin.Context) {
	var form models.FormState
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form state"})
		return
	}

	inv, err := h.session.SaveInvoice(form)
	if err != nil {
		h.logger.Error("Failed to save invoice", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to persist invoice"})
		return
	}

	c.JSON(http.StatusCreated, inv)
}

func (h *Handler) listInvoices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"invoices": h.session.Invoices()})
}

func (h *Handler) clearInvoices(c *gin.Context) {
	h.session.ClearAll()
	c.Status(http.StatusNoContent)
}

func (h *Handler) getInvoice(c *gin.Context) {
	inv, ok := h.session.Invoice(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// loadInvoice opens a saved invoice for editing and returns its form
// state for the UI to populate.
func (h *Handler) loadInvoice(c *gin.Context) {
	form, ok := h.session.LoadInvoice(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *Handler) deleteInvoice(c *gin.Context) {
	if !h.session.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// exportInvoice streams one saved invoice in the requested format.
func (h *Handler) exportInvoice(c *gin.Context) {
	inv, ok := h.session.Invoice(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	h.renderRecord(c, inv.InvoiceDraft, inv)
}

// exportDraft streams the in-progress draft in the requested format.
func (h *Handler) exportDraft(c *gin.Context) {
	d, ok := h.session.Draft()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no draft in progress"})
		return
	}
	h.renderRecord(c, d, d)
}

// renderRecord projects a record into the format named in the route.
// record is what gets serialized for JSON (draft or saved invoice); the
// draft fields drive the printable projections.
func (h *Handler) renderRecord(c *gin.Context, d models.InvoiceDraft, record interface{}) {
	format := c.Param("format")

	var (
		data        []byte
		err         error
		contentType string
		fileName    string
	)

	switch format {
	case "json":
		data, err = h.exporter.JSON(record)
		contentType = "application/json"
		fileName = export.FileName(d)
	case "html":
		data, err = h.exporter.PrintableHTML(d)
		contentType = "text/html; charset=utf-8"
		fileName = ""
	case "pdf":
		data, err = h.exporter.PDF(d)
		contentType = "application/pdf"
		fileName = ""
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown export format"})
		return
	}

	if err != nil {
		h.logger.Error("Export failed",
			zap.String("format", format),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	if fileName != "" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	}
	c.Data(http.StatusOK, contentType, data)
}

// exportCollection streams the full collection as JSON wrapped under the
// "invoices" field.
func (h *Handler) exportCollection(c *gin.Context) {
	data, err := h.exporter.CollectionJSON(h.session.Invoices())
	if err != nil {
		h.logger.Error("Collection export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CollectionFileName()))
	c.Data(http.StatusOK, "application/json", data)
}

// exportWorkbook streams the collection as an XLSX summary.
func (h *Handler) exportWorkbook(c *gin.Context) {
	data, err := h.exporter.Workbook(h.session.Invoices())
	if err != nil {
		h.logger.Error("Workbook export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invoices.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// archiveInvoice writes one invoice's JSON export into the configured
// output directory and returns the written path.
func (h *Handler) archiveInvoice(c *gin.Context) {
	inv, ok := h.session.Invoice(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}

	data, err := h.exporter.JSON(inv)
	if err == nil {
		var path string
		path, err = h.sink.WriteExport(export.FileName(inv.InvoiceDraft), data)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"path": path})
			return
		}
	}

	h.logger.Error("Archive failed", zap.String("id", inv.ID), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "archive failed"})
}

// archiveCollection writes the bulk JSON export into the configured output
// directory and returns the written path.
func (h *Handler) archiveCollection(c *gin.Context) {
	data, err := h.exporter.CollectionJSON(h.session.Invoices())
	if err == nil {
		var path string
		path, err = h.sink.WriteExport(export.CollectionFileName(), data)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"path": path})
			return
		}
	}

	h.logger.Error("Collection archive failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "archive failed"})
}
