package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/beanhouse-cafe/api/internal/enum"
	"github.com/beanhouse-cafe/api/internal/service"
	"github.com/beanhouse-cafe/api/internal/store"
)

// ReportExporter defines the export service methods needed by report handlers.
// Satisfied by *service.ExportService; narrow interface for testability.
type ReportExporter interface {
	BuildReport(ctx context.Context, rng string) ([][]string, error)
	WriteCSV(w io.Writer, rows [][]string) error
}

// AnalyticsStore defines the persistence methods needed by the analytics
// endpoint. Satisfied by store.Store.
type AnalyticsStore interface {
	ListAllOrders(ctx context.Context) ([]store.Order, error)
}

// ReportsHandler handles the accounting export and the analytics view.
type ReportsHandler struct {
	exporter ReportExporter
	store    AnalyticsStore
	logger   *zap.Logger
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(exporter ReportExporter, st AnalyticsStore, logger *zap.Logger) *ReportsHandler {
	return &ReportsHandler{exporter: exporter, store: st, logger: logger}
}

// RegisterRoutes registers report endpoints on the given Chi router.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/orders.csv", h.ExportCSV)
	r.Get("/analytics", h.Analytics)
}

// ExportCSV handles GET /api/reports/orders.csv?range=all|daily|weekly|monthly.
// The report is built fully before any byte is written, so a fetch failure
// produces a JSON error instead of a truncated file.
func (h *ReportsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = enum.ExportRangeAll
	}

	rows, err := h.exporter.BuildReport(r.Context(), rng)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRange) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.logger.Error("build export report", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	filename := fmt.Sprintf("orders_%s_%s.csv", rng, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := h.exporter.WriteCSV(w, rows); err != nil {
		// Headers are already sent; all we can do is log.
		h.logger.Error("write export csv", zap.Error(err))
	}
}

// Analytics handles GET /api/reports/analytics.
func (h *ReportsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListAllOrders(r.Context())
	if err != nil {
		h.logger.Error("load orders for analytics", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, service.Summarize(orders))
}
