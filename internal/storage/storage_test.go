package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUpload(t *testing.T) {
	var gotPath, gotAuth, gotType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "service-key", "menu_assets")
	url, err := c.Upload(context.Background(), "items/wings.jpg", "image/jpeg", []byte("jpegdata"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if gotPath != "/storage/v1/object/menu_assets/items/wings.jpg" {
		t.Errorf("path: %s", gotPath)
	}
	if gotAuth != "Bearer service-key" {
		t.Errorf("auth header: %s", gotAuth)
	}
	if gotType != "image/jpeg" {
		t.Errorf("content type: %s", gotType)
	}
	if string(gotBody) != "jpegdata" {
		t.Errorf("body: %s", gotBody)
	}
	want := srv.URL + "/storage/v1/object/public/menu_assets/items/wings.jpg"
	if url != want {
		t.Errorf("public url: got %s, want %s", url, want)
	}
}

func TestUpload_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "key", "missing")
	_, err := c.Upload(context.Background(), "x.png", "image/png", nil)
	if err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestUpload_NotConfigured(t *testing.T) {
	c := New("", "", "menu_assets")
	if c.Enabled() {
		t.Error("client with no base URL should be disabled")
	}
	_, err := c.Upload(context.Background(), "x.png", "image/png", nil)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("got %v, want ErrNotConfigured", err)
	}
}
