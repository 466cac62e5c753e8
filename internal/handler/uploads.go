package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxUploadBytes caps menu image uploads at 5 MB.
const maxUploadBytes = 5 << 20

// Uploader stores an image and returns its public URL. Satisfied by
// *storage.Client.
type Uploader interface {
	Enabled() bool
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
}

// UploadHandler handles menu image uploads. Upload failures surface as
// errors; the item form accepts a pasted image URL either way.
type UploadHandler struct {
	uploader Uploader
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploader Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// RegisterRoutes registers the upload endpoint on the given Chi router.
func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Post("/uploads", h.Upload)
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /uploads with a multipart "file" part.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.uploader.Enabled() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "image storage is not configured"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "file too large"})
			return
		}
		log.Printf("ERROR: read upload: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "only image uploads are accepted"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	path := "items/" + uuid.NewString() + ext

	url, err := h.uploader.Upload(r.Context(), path, contentType, data)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "image storage is not configured"})
			return
		}
		log.Printf("ERROR: upload image: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "image upload failed"})
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{URL: url})
}
