package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/cart"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/database"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/menu"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// cartTokenHeader carries the client's anonymous cart identity. A missing or
// malformed token simply means a fresh cart.
const cartTokenHeader = "X-Cart-Token"

// CartStore defines the database methods needed by cart handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CartStore interface {
	GetCart(ctx context.Context, token uuid.UUID) (database.Cart, error)
	UpsertCart(ctx context.Context, arg database.UpsertCartParams) (database.Cart, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (database.MenuItem, error)
}

// CartHandler handles the storefront cart endpoints.
type CartHandler struct {
	store CartStore
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(store CartStore) *CartHandler {
	return &CartHandler{store: store}
}

// RegisterRoutes registers cart endpoints on the given Chi router.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/cart", h.Get)
	r.Post("/cart/items", h.AddItem)
	r.Patch("/cart/items/{key}", h.UpdateQuantity)
	r.Delete("/cart/items/{key}", h.RemoveItem)
}

// --- Request / Response types ---

type selectionRequest struct {
	Variation        string            `json:"variation"`
	GroupChoices     map[string]string `json:"group_choices"`
	Flavor           string            `json:"flavor"`
	Addons           []string          `json:"addons"`
	DiningPreference string            `json:"dining_preference"`
}

type addItemRequest struct {
	ItemID    string           `json:"item_id"`
	Quantity  int32            `json:"quantity"`
	Selection selectionRequest `json:"selection"`
}

type updateQuantityRequest struct {
	Delta int32 `json:"delta"`
}

type cartLineResponse struct {
	Key       string `json:"key"`
	ItemID    string `json:"item_id"`
	Label     string `json:"label"`
	UnitPrice string `json:"unit_price"`
	Quantity  int32  `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type cartResponse struct {
	Token string             `json:"token"`
	Lines []cartLineResponse `json:"lines"`
	Total string             `json:"total"`
}

func toCartResponse(token uuid.UUID, c *cart.Cart) cartResponse {
	lines := c.Lines()
	resp := cartResponse{
		Token: token.String(),
		Lines: make([]cartLineResponse, len(lines)),
		Total: c.Total().StringFixed(2),
	}
	for i, l := range lines {
		resp.Lines[i] = cartLineResponse{
			Key:       l.Key,
			ItemID:    l.ItemID,
			Label:     l.Label,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Quantity:  l.Quantity,
			LineTotal: l.UnitPrice.Mul(decimal.NewFromInt32(l.Quantity)).StringFixed(2),
		}
	}
	return resp
}

// --- Handlers ---

// Get returns the cart for the request's token. No token, an unknown token,
// or a corrupt stored cart all come back as an empty cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	token, ok := h.parseToken(r)
	if !ok {
		writeJSON(w, http.StatusOK, toCartResponse(uuid.New(), &cart.Cart{}))
		return
	}

	c, err := h.loadCart(r.Context(), token)
	if err != nil {
		log.Printf("ERROR: get cart: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toCartResponse(token, c))
}

// AddItem resolves the selection against the live item definition and merges
// the priced line into the cart.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item_id"})
		return
	}

	item, err := h.store.GetMenuItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		log.Printf("ERROR: get menu item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if item.OutOfStock {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "item is out of stock"})
		return
	}

	def, err := menu.DefinitionFromRecord(item)
	if err != nil {
		log.Printf("ERROR: decode menu item %s: %v", item.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resolved, err := menu.Resolve(def, menu.Selection{
		Variation:        req.Selection.Variation,
		GroupChoices:     req.Selection.GroupChoices,
		Flavor:           req.Selection.Flavor,
		Addons:           req.Selection.Addons,
		DiningPreference: req.Selection.DiningPreference,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// New carts mint their token server-side.
	token, ok := h.parseToken(r)
	if !ok {
		token = uuid.New()
	}

	c, err := h.loadCart(r.Context(), token)
	if err != nil {
		log.Printf("ERROR: get cart: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	c.AddLine(cart.Line{
		Key:       resolved.Key,
		ItemID:    item.ID.String(),
		Label:     resolved.Label,
		UnitPrice: resolved.UnitPrice,
		Quantity:  req.Quantity,
	})

	if !h.saveCart(w, r, token, c) {
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(token, c))
}

// UpdateQuantity applies a delta to one line; the quantity floor is 1.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	token, ok := h.parseToken(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart line not found"})
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	c, err := h.loadCart(r.Context(), token)
	if err != nil {
		log.Printf("ERROR: get cart: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if !c.UpdateQuantity(lineKey(r), req.Delta) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart line not found"})
		return
	}

	if !h.saveCart(w, r, token, c) {
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(token, c))
}

// RemoveItem deletes one line regardless of its quantity.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	token, ok := h.parseToken(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart line not found"})
		return
	}

	c, err := h.loadCart(r.Context(), token)
	if err != nil {
		log.Printf("ERROR: get cart: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if !c.RemoveLine(lineKey(r)) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "cart line not found"})
		return
	}

	if !h.saveCart(w, r, token, c) {
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(token, c))
}

// --- Helpers ---

func (h *CartHandler) parseToken(r *http.Request) (uuid.UUID, bool) {
	token, err := uuid.Parse(r.Header.Get(cartTokenHeader))
	if err != nil {
		return uuid.UUID{}, false
	}
	return token, true
}

func (h *CartHandler) loadCart(ctx context.Context, token uuid.UUID) (*cart.Cart, error) {
	stored, err := h.store.GetCart(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &cart.Cart{}, nil
		}
		return nil, err
	}
	return cart.Load(stored.Lines), nil
}

// saveCart rewrites the full line sequence. Reports false after writing an
// error response.
func (h *CartHandler) saveCart(w http.ResponseWriter, r *http.Request, token uuid.UUID, c *cart.Cart) bool {
	lines, err := c.Serialize()
	if err != nil {
		log.Printf("ERROR: serialize cart: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return false
	}
	if _, err := h.store.UpsertCart(r.Context(), database.UpsertCartParams{Token: token, Lines: lines}); err != nil {
		log.Printf("ERROR: save cart: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return false
	}
	return true
}

// lineKey extracts the identity key path segment. Keys embed spaces and
// pipes, so clients percent-encode them.
func lineKey(r *http.Request) string {
	raw := chi.URLParam(r, "key")
	if key, err := url.PathUnescape(raw); err == nil {
		return key
	}
	return raw
}
