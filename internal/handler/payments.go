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
	"github.com/jackc/pgx/v5/pgtype"
)

// PaymentStore defines the database methods needed by payment handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type PaymentStore interface {
	ListPaymentSettings(ctx context.Context) ([]database.PaymentSetting, error)
	ListActivePaymentSettings(ctx context.Context) ([]database.PaymentSetting, error)
	SetPaymentSettingActive(ctx context.Context, arg database.SetPaymentSettingActiveParams) (database.PaymentSetting, error)
	UpdatePaymentSettingDetails(ctx context.Context, arg database.UpdatePaymentSettingDetailsParams) (database.PaymentSetting, error)
}

// PaymentHandler handles payment method endpoints. Methods are toggled, never
// deleted, so order history keeps valid references.
type PaymentHandler struct {
	store PaymentStore
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(store PaymentStore) *PaymentHandler {
	return &PaymentHandler{store: store}
}

// RegisterPublicRoutes registers the storefront listing of active methods.
func (h *PaymentHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/payment-methods", h.ListActive)
}

// RegisterAdminRoutes registers payment method management endpoints.
func (h *PaymentHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/payment-methods", h.List)
	r.Patch("/payment-methods/{id}/active", h.SetActive)
	r.Patch("/payment-methods/{id}", h.UpdateDetails)
}

// --- Request / Response types ---

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type paymentDetailsRequest struct {
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	QrURL         string `json:"qr_url"`
}

type paymentMethodResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	IsActive      bool    `json:"is_active"`
	AccountName   *string `json:"account_name"`
	AccountNumber *string `json:"account_number"`
	QrURL         *string `json:"qr_url"`
}

func toPaymentMethodResponse(p database.PaymentSetting) paymentMethodResponse {
	resp := paymentMethodResponse{
		ID:       p.ID,
		Name:     p.Name,
		IsActive: p.IsActive,
	}
	if p.AccountName.Valid {
		resp.AccountName = &p.AccountName.String
	}
	if p.AccountNumber.Valid {
		resp.AccountNumber = &p.AccountNumber.String
	}
	if p.QrURL.Valid {
		resp.QrURL = &p.QrURL.String
	}
	return resp
}

// --- Handlers ---

// List returns every payment method, active or not.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	methods, err := h.store.ListPaymentSettings(r.Context())
	if err != nil {
		log.Printf("ERROR: list payment methods: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.respondList(w, methods)
}

// ListActive returns the methods the storefront may offer, with the account
// details the customer needs to pay.
func (h *PaymentHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	methods, err := h.store.ListActivePaymentSettings(r.Context())
	if err != nil {
		log.Printf("ERROR: list active payment methods: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	h.respondList(w, methods)
}

// SetActive toggles a payment method on or off.
func (h *PaymentHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	method, err := h.store.SetPaymentSettingActive(r.Context(), database.SetPaymentSettingActiveParams{
		ID:       id,
		IsActive: req.IsActive,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "payment method not found"})
			return
		}
		log.Printf("ERROR: set payment method active: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toPaymentMethodResponse(method))
}

// UpdateDetails replaces the account fields shown to paying customers.
func (h *PaymentHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req paymentDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	method, err := h.store.UpdatePaymentSettingDetails(r.Context(), database.UpdatePaymentSettingDetailsParams{
		ID:            id,
		AccountName:   textOrNull(req.AccountName),
		AccountNumber: textOrNull(req.AccountNumber),
		QrURL:         textOrNull(req.QrURL),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "payment method not found"})
			return
		}
		log.Printf("ERROR: update payment method details: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toPaymentMethodResponse(method))
}

// --- Helpers ---

func (h *PaymentHandler) respondList(w http.ResponseWriter, methods []database.PaymentSetting) {
	resp := make([]paymentMethodResponse, len(methods))
	for i, p := range methods {
		resp[i] = toPaymentMethodResponse(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

func textOrNull(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}
