package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/cart"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/database"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/enum"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/service"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// OrderServicer defines the service methods needed by the checkout handler.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	Checkout(ctx context.Context, req service.CheckoutRequest) (*service.CheckoutResult, error)
}

// OrderStore defines the database methods needed by order read/update
// handlers. Satisfied by *database.Queries; narrow interface for testability.
type OrderStore interface {
	ListOrders(ctx context.Context, arg database.ListOrdersParams) ([]database.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (database.Order, error)
	UpdateOrderStatus(ctx context.Context, arg database.UpdateOrderStatusParams) (database.Order, error)
}

// Broadcaster pushes order events to the admin feed. Satisfied by *ws.Hub.
type Broadcaster interface {
	Broadcast(event ws.Event)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc   OrderServicer
	store OrderStore
	hub   Broadcaster
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, store OrderStore, hub Broadcaster) *OrderHandler {
	return &OrderHandler{svc: svc, store: store, hub: hub}
}

// RegisterPublicRoutes registers the storefront checkout endpoint.
func (h *OrderHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/checkout", h.Checkout)
}

// RegisterAdminRoutes registers order management endpoints.
func (h *OrderHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/orders", h.List)
	r.Get("/orders/{id}", h.Get)
	r.Patch("/orders/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type checkoutRequest struct {
	CartToken     string `json:"cart_token"`
	OrderType     string `json:"order_type"`
	PaymentMethod string `json:"payment_method"`
	CustomerName  string `json:"customer_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Landmark      string `json:"landmark"`
	Instructions  string `json:"instructions"`
	TableNumber   string `json:"table_number"`
}

type checkoutResponse struct {
	Order        orderResponse `json:"order"`
	Summary      string        `json:"summary"`
	MessengerURL string        `json:"messenger_url"`
}

type orderResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrderType       string          `json:"order_type"`
	PaymentMethod   string          `json:"payment_method"`
	Status          string          `json:"status"`
	TotalAmount     string          `json:"total_amount"`
	Items           []cart.Line     `json:"items"`
	CustomerDetails json.RawMessage `json:"customer_details"`
	CreatedAt       time.Time       `json:"created_at"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func toOrderResponse(o database.Order) orderResponse {
	var items []cart.Line
	if err := json.Unmarshal(o.Items, &items); err != nil {
		// Never fail a read over a bad item snapshot.
		items = nil
	}
	details := json.RawMessage(o.CustomerDetails)
	if len(details) == 0 {
		details = json.RawMessage("null")
	}
	return orderResponse{
		ID:              o.ID,
		OrderType:       o.OrderType,
		PaymentMethod:   o.PaymentMethod,
		Status:          o.Status,
		TotalAmount:     numericToString(o.TotalAmount),
		Items:           items,
		CustomerDetails: details,
		CreatedAt:       o.CreatedAt,
	}
}

// --- Handlers ---

// Checkout handles POST /checkout.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cartToken, err := uuid.Parse(req.CartToken)
	if err != nil {
		// Fall back to the header so checkout works with either transport.
		cartToken, err = uuid.Parse(r.Header.Get(cartTokenHeader))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid cart token"})
			return
		}
	}

	result, err := h.svc.Checkout(r.Context(), service.CheckoutRequest{
		CartToken:     cartToken,
		OrderType:     req.OrderType,
		PaymentMethod: req.PaymentMethod,
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Address:       req.Address,
		Landmark:      req.Landmark,
		Instructions:  req.Instructions,
		TableNumber:   req.TableNumber,
	})
	if err != nil {
		if isCheckoutValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		log.Printf("ERROR: checkout: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcast("order.created", result.Order.ID)

	writeJSON(w, http.StatusCreated, checkoutResponse{
		Order:        toOrderResponse(result.Order),
		Summary:      result.Summary,
		MessengerURL: result.MessengerURL,
	})
}

// List handles GET /orders, newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 200 {
		limit = 200
	}

	offset := 0
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	orders, err := h.store.ListOrders(r.Context(), database.ListOrdersParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		log.Printf("ERROR: list orders: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}

	writeJSON(w, http.StatusOK, orderListResponse{
		Orders: resp,
		Limit:  limit,
		Offset: offset,
	})
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: get order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PATCH /orders/{id}/status. Legacy status spellings in
// the request are normalized before the write.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	status, ok := enum.NormalizeOrderStatus(req.Status)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}

	updated, err := h.store.UpdateOrderStatus(r.Context(), database.UpdateOrderStatusParams{
		ID:     orderID,
		Status: status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("ERROR: update order status: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	h.broadcast("order.updated", updated.ID)

	writeJSON(w, http.StatusOK, toOrderResponse(updated))
}

// --- Helpers ---

// broadcast sends a cache-invalidation event; dashboards refetch the order
// list rather than applying deltas.
func (h *OrderHandler) broadcast(eventType string, orderID uuid.UUID) {
	payload, err := json.Marshal(map[string]string{"order_id": orderID.String()})
	if err != nil {
		return
	}
	h.hub.Broadcast(ws.Event{Type: eventType, Payload: payload})
}

// isCheckoutValidationError checks if the error is a known validation error
// from the service layer that should result in 400 Bad Request.
func isCheckoutValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyCart) ||
		errors.Is(err, service.ErrMissingName) ||
		errors.Is(err, service.ErrMissingPhone) ||
		errors.Is(err, service.ErrMissingAddress) ||
		errors.Is(err, service.ErrMissingInstructions) ||
		errors.Is(err, service.ErrMissingTable) ||
		errors.Is(err, service.ErrOrderTypeInactive) ||
		errors.Is(err, service.ErrPaymentInactive) ||
		errors.Is(err, service.ErrItemUnavailable) ||
		errors.Is(err, service.ErrItemOutOfStock)
}

func numericToString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0.00"
	}
	val, err := n.Value()
	if err != nil || val == nil {
		return "0.00"
	}
	d, err := decimal.NewFromString(val.(string))
	if err != nil {
		return "0.00"
	}
	return d.StringFixed(2)
}
