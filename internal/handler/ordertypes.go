package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/database"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

// OrderTypeStore defines the database methods needed by order type handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type OrderTypeStore interface {
	ListOrderTypes(ctx context.Context) ([]database.OrderType, error)
	ListActiveOrderTypes(ctx context.Context) ([]database.OrderType, error)
	SetOrderTypeActive(ctx context.Context, arg database.SetOrderTypeActiveParams) (database.OrderType, error)
}

// OrderTypeHandler handles fulfillment type endpoints. Like payment methods,
// types are toggled rather than deleted.
type OrderTypeHandler struct {
	store OrderTypeStore
}

// NewOrderTypeHandler creates a new OrderTypeHandler.
func NewOrderTypeHandler(store OrderTypeStore) *OrderTypeHandler {
	return &OrderTypeHandler{store: store}
}

// RegisterPublicRoutes registers the storefront listing of active types.
func (h *OrderTypeHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/order-types", h.ListActive)
}

// RegisterAdminRoutes registers fulfillment type management endpoints.
func (h *OrderTypeHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/order-types", h.List)
	r.Patch("/order-types/{id}/active", h.SetActive)
}

// --- Response types ---

type orderTypeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// --- Handlers ---

// List returns every fulfillment type, active or not.
func (h *OrderTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	types, err := h.store.ListOrderTypes(r.Context())
	if err != nil {
		log.Printf("ERROR: list order types: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.respondList(w, types)
}

// ListActive returns the fulfillment types the storefront may offer.
func (h *OrderTypeHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	types, err := h.store.ListActiveOrderTypes(r.Context())
	if err != nil {
		log.Printf("ERROR: list active order types: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.respondList(w, types)
}

// SetActive toggles a fulfillment type on or off.
func (h *OrderTypeHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	ot, err := h.store.SetOrderTypeActive(r.Context(), database.SetOrderTypeActiveParams{
		ID:       id,
		IsActive: req.IsActive,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order type not found"})
			return
		}
		log.Printf("ERROR: set order type active: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, orderTypeResponse{ID: ot.ID, Name: ot.Name, IsActive: ot.IsActive})
}

// --- Helpers ---

func (h *OrderTypeHandler) respondList(w http.ResponseWriter, types []database.OrderType) {
	resp := make([]orderTypeResponse, len(types))
	for i, ot := range types {
		resp[i] = orderTypeResponse{ID: ot.ID, Name: ot.Name, IsActive: ot.IsActive}
	}
	writeJSON(w, http.StatusOK, resp)
}
