package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/enum"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ReportStore defines the database methods needed by the dashboard report.
// Satisfied by *database.Queries; narrow interface for testability.
type ReportStore interface {
	CountOrdersTodayByStatus(ctx context.Context) (map[string]int64, error)
	SumOrdersToday(ctx context.Context) (pgtype.Numeric, error)
}

// ReportHandler serves the admin dashboard counters.
type ReportHandler struct {
	store ReportStore
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(store ReportStore) *ReportHandler {
	return &ReportHandler{store: store}
}

// RegisterRoutes registers report endpoints on the given Chi router.
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/today", h.Today)
}

type todayReportResponse struct {
	Counts      map[string]int64 `json:"counts"`
	TotalOrders int64            `json:"total_orders"`
	Revenue     string           `json:"revenue"`
}

// Today handles GET /reports/today: today's order counts per status and
// revenue. Cancelled orders count in the totals but not the revenue.
func (h *ReportHandler) Today(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.CountOrdersTodayByStatus(r.Context())
	if err != nil {
		log.Printf("ERROR: count orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	revenue, err := h.store.SumOrdersToday(r.Context())
	if err != nil {
		log.Printf("ERROR: sum orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	// Every canonical status appears in the response, zero or not, so the
	// dashboard cards never have to guess at keys.
	full := make(map[string]int64, len(enum.OrderStatuses))
	var total int64
	for _, s := range enum.OrderStatuses {
		full[s] = counts[s]
		total += counts[s]
	}

	writeJSON(w, http.StatusOK, todayReportResponse{
		Counts:      full,
		TotalOrders: total,
		Revenue:     numericToString(revenue),
	})
}
