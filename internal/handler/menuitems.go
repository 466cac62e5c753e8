package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/database"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/menu"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// MenuItemStore defines the database methods needed by menu item handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type MenuItemStore interface {
	ListMenuItems(ctx context.Context) ([]database.MenuItem, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (database.MenuItem, error)
	CreateMenuItem(ctx context.Context, arg database.CreateMenuItemParams) (database.MenuItem, error)
	UpdateMenuItem(ctx context.Context, arg database.UpdateMenuItemParams) (database.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// MenuItemHandler handles menu item endpoints.
type MenuItemHandler struct {
	store MenuItemStore
}

// NewMenuItemHandler creates a new MenuItemHandler.
func NewMenuItemHandler(store MenuItemStore) *MenuItemHandler {
	return &MenuItemHandler{store: store}
}

// RegisterPublicRoutes registers the storefront catalog endpoints.
func (h *MenuItemHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/menu", h.List)
	r.Get("/menu/{id}", h.Get)
}

// RegisterAdminRoutes registers menu item CRUD endpoints.
func (h *MenuItemHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/menu", h.List)
	r.Post("/menu", h.Create)
	r.Put("/menu/{id}", h.Update)
	r.Delete("/menu/{id}", h.Delete)
}

// --- Request / Response types ---

type menuItemRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         json.Number     `json:"price"`
	PromoPrice    json.Number     `json:"promo_price"`
	CategoryID    string          `json:"category_id"`
	Image         string          `json:"image"`
	OutOfStock    bool            `json:"out_of_stock"`
	SortOrder     int32           `json:"sort_order"`
	Variations    json.RawMessage `json:"variations"`
	Flavors       json.RawMessage `json:"flavors"`
	Addons        json.RawMessage `json:"addons"`
	DiningOptions json.RawMessage `json:"dining_options"`
}

type menuItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         string          `json:"price"`
	PromoPrice    *string         `json:"promo_price"`
	CategoryID    string          `json:"category_id"`
	Image         *string         `json:"image"`
	OutOfStock    bool            `json:"out_of_stock"`
	SortOrder     int32           `json:"sort_order"`
	Variations    json.RawMessage `json:"variations"`
	Flavors       json.RawMessage `json:"flavors"`
	Addons        json.RawMessage `json:"addons"`
	DiningOptions json.RawMessage `json:"dining_options"`
	CreatedAt     time.Time       `json:"created_at"`
}

func toMenuItemResponse(m database.MenuItem) menuItemResponse {
	resp := menuItemResponse{
		ID:            m.ID,
		Name:          m.Name,
		Price:         numericToString(m.Price),
		CategoryID:    m.CategoryID,
		OutOfStock:    m.OutOfStock,
		SortOrder:     m.SortOrder,
		Variations:    rawOrNull(m.Variations),
		Flavors:       rawOrNull(m.Flavors),
		Addons:        rawOrNull(m.Addons),
		DiningOptions: rawOrNull(m.DiningOptions),
		CreatedAt:     m.CreatedAt,
	}
	if m.Description.Valid {
		resp.Description = &m.Description.String
	}
	if m.PromoPrice.Valid {
		s := numericToString(m.PromoPrice)
		resp.PromoPrice = &s
	}
	if m.Image.Valid {
		resp.Image = &m.Image.String
	}
	return resp
}

// rawOrNull keeps stored JSONB columns valid in the response when NULL.
func rawOrNull(b []byte) json.RawMessage {
	if len(b) == 0 {
		return json.RawMessage("null")
	}
	return json.RawMessage(b)
}

// --- Handlers ---

// List returns the full catalog in display order.
func (h *MenuItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListMenuItems(r.Context())
	if err != nil {
		log.Printf("ERROR: list menu items: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := make([]menuItemResponse, len(items))
	for i, m := range items {
		resp[i] = toMenuItemResponse(m)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns one menu item.
func (h *MenuItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	item, err := h.store.GetMenuItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: get menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

// Create adds a new menu item.
func (h *MenuItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	params, ok := h.decodeItemRequest(w, r)
	if !ok {
		return
	}

	item, err := h.store.CreateMenuItem(r.Context(), database.CreateMenuItemParams{
		Name:          params.Name,
		Description:   params.Description,
		Price:         params.Price,
		PromoPrice:    params.PromoPrice,
		CategoryID:    params.CategoryID,
		Image:         params.Image,
		OutOfStock:    params.OutOfStock,
		SortOrder:     params.SortOrder,
		Variations:    params.Variations,
		Flavors:       params.Flavors,
		Addons:        params.Addons,
		DiningOptions: params.DiningOptions,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category does not exist"})
			return
		}
		log.Printf("ERROR: create menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, toMenuItemResponse(item))
}

// Update replaces all fields of an existing menu item; the admin form always
// submits the full record.
func (h *MenuItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	params, ok := h.decodeItemRequest(w, r)
	if !ok {
		return
	}
	params.ID = id

	item, err := h.store.UpdateMenuItem(r.Context(), params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category does not exist"})
			return
		}
		log.Printf("ERROR: update menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toMenuItemResponse(item))
}

// Delete hard-deletes a menu item.
func (h *MenuItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	_, err = h.store.DeleteMenuItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: delete menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Helpers ---

// decodeItemRequest validates the request body and converts it into update
// params (Create ignores the zero ID). Customization documents are decoded
// through the engine so malformed shapes never reach storage.
func (h *MenuItemHandler) decodeItemRequest(w http.ResponseWriter, r *http.Request) (database.UpdateMenuItemParams, bool) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return database.UpdateMenuItemParams{}, false
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return database.UpdateMenuItemParams{}, false
	}
	if req.CategoryID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category_id is required"})
		return database.UpdateMenuItemParams{}, false
	}

	price, err := decimal.NewFromString(req.Price.String())
	if err != nil || price.IsNegative() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid price"})
		return database.UpdateMenuItemParams{}, false
	}

	promoPrice := pgtype.Numeric{}
	if req.PromoPrice != "" {
		pp, err := decimal.NewFromString(req.PromoPrice.String())
		if err != nil || pp.IsNegative() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid promo_price"})
			return database.UpdateMenuItemParams{}, false
		}
		promoPrice = decimalToNumeric(pp)
	}

	if _, err := menu.DecodeVariations(req.Variations); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid variations"})
		return database.UpdateMenuItemParams{}, false
	}
	if _, err := menu.DecodeFlavors(req.Flavors); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid flavors"})
		return database.UpdateMenuItemParams{}, false
	}
	if _, err := menu.DecodeAddons(req.Addons); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid addons"})
		return database.UpdateMenuItemParams{}, false
	}
	if _, err := menu.DecodeDiningOptions(req.DiningOptions); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid dining_options"})
		return database.UpdateMenuItemParams{}, false
	}

	desc := pgtype.Text{}
	if req.Description != "" {
		desc = pgtype.Text{String: req.Description, Valid: true}
	}
	image := pgtype.Text{}
	if req.Image != "" {
		image = pgtype.Text{String: req.Image, Valid: true}
	}

	return database.UpdateMenuItemParams{
		Name:          req.Name,
		Description:   desc,
		Price:         decimalToNumeric(price),
		PromoPrice:    promoPrice,
		CategoryID:    req.CategoryID,
		Image:         image,
		OutOfStock:    req.OutOfStock,
		SortOrder:     req.SortOrder,
		Variations:    req.Variations,
		Flavors:       req.Flavors,
		Addons:        req.Addons,
		DiningOptions: req.DiningOptions,
	}, true
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(d.StringFixed(2))
	return n
}
