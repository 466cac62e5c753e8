package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/database"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/enum"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/format"
	"github.com/go-chi/chi/v5"
)

// SettingsStore defines the database methods needed by settings handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type SettingsStore interface {
	GetStoreSettings(ctx context.Context) (database.StoreSettings, error)
	UpdateStoreSettings(ctx context.Context, arg database.UpdateStoreSettingsParams) (database.StoreSettings, error)
}

// SettingsHandler handles store settings and the open/closed status.
type SettingsHandler struct {
	store        SettingsStore
	messengerURL string
	now          func() time.Time
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(store SettingsStore, messengerURL string) *SettingsHandler {
	return &SettingsHandler{store: store, messengerURL: messengerURL, now: time.Now}
}

// RegisterPublicRoutes registers the storefront settings endpoints.
func (h *SettingsHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/settings", h.Get)
	r.Get("/status", h.Status)
}

// RegisterAdminRoutes registers the settings update endpoint.
func (h *SettingsHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/settings", h.Get)
	r.Put("/settings", h.Update)
}

// --- Request / Response types ---

type settingsRequest struct {
	StoreName    string `json:"store_name"`
	Contact      string `json:"contact"`
	Address      string `json:"address"`
	OpenTime     string `json:"open_time"`
	CloseTime    string `json:"close_time"`
	ManualStatus string `json:"manual_status"`
}

type settingsResponse struct {
	StoreName    string `json:"store_name"`
	Contact      string `json:"contact"`
	Address      string `json:"address"`
	OpenTime     string `json:"open_time"`
	CloseTime    string `json:"close_time"`
	ManualStatus string `json:"manual_status"`
	MessengerURL string `json:"messenger_url"`
}

type statusResponse struct {
	IsOpen   bool   `json:"is_open"`
	Status   string `json:"status"`
	OpensAt  string `json:"opens_at"`
	ClosesAt string `json:"closes_at"`
}

func (h *SettingsHandler) toSettingsResponse(s database.StoreSettings) settingsResponse {
	return settingsResponse{
		StoreName:    s.StoreName,
		Contact:      s.Contact,
		Address:      s.Address,
		OpenTime:     s.OpenTime,
		CloseTime:    s.CloseTime,
		ManualStatus: s.ManualStatus,
		MessengerURL: h.messengerURL,
	}
}

// --- Handlers ---

// Get returns the singleton store settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.GetStoreSettings(r.Context())
	if err != nil {
		log.Printf("ERROR: get store settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, h.toSettingsResponse(settings))
}

// Status reports whether the store is currently taking orders: the manual
// override wins, otherwise the current time is checked against the opening
// hours. Hours are rendered 12-hour for the storefront banner.
func (h *SettingsHandler) Status(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.GetStoreSettings(r.Context())
	if err != nil {
		log.Printf("ERROR: get store settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	isOpen := isOpenNow(settings, h.now())
	status := "closed"
	if isOpen {
		status = "open"
	}

	writeJSON(w, http.StatusOK, statusResponse{
		IsOpen:   isOpen,
		Status:   status,
		OpensAt:  format.Time12h(settings.OpenTime),
		ClosesAt: format.Time12h(settings.CloseTime),
	})
}

// Update replaces the singleton settings row.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.StoreName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "store_name is required"})
		return
	}
	if !validClockTime(req.OpenTime) || !validClockTime(req.CloseTime) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "open_time and close_time must be HH:MM"})
		return
	}
	if !enum.IsValidStoreStatus(req.ManualStatus) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid manual_status"})
		return
	}

	settings, err := h.store.UpdateStoreSettings(r.Context(), database.UpdateStoreSettingsParams{
		StoreName:    req.StoreName,
		Contact:      req.Contact,
		Address:      req.Address,
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
		ManualStatus: req.ManualStatus,
	})
	if err != nil {
		log.Printf("ERROR: update store settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, h.toSettingsResponse(settings))
}

// --- Helpers ---

// isOpenNow resolves the store's effective open state. An overnight window
// (close before open, e.g. 18:00 to 02:00) wraps past midnight.
func isOpenNow(s database.StoreSettings, now time.Time) bool {
	switch s.ManualStatus {
	case enum.StoreStatusOpen:
		return true
	case enum.StoreStatusClosed:
		return false
	}

	open, err1 := time.Parse("15:04", s.OpenTime)
	closeT, err2 := time.Parse("15:04", s.CloseTime)
	if err1 != nil || err2 != nil {
		return false
	}

	minutes := now.Hour()*60 + now.Minute()
	openM := open.Hour()*60 + open.Minute()
	closeM := closeT.Hour()*60 + closeT.Minute()

	if openM <= closeM {
		return minutes >= openM && minutes < closeM
	}
	return minutes >= openM || minutes < closeM
}

func validClockTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
