// Package storage uploads menu images to a Supabase-compatible object store
// over its REST surface and returns the public URL for the stored object.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured is returned when no storage backend is configured; callers
// fall back to manual image URL entry.
var ErrNotConfigured = errors.New("object storage is not configured")

// Client talks to one bucket of a Supabase-compatible storage service.
type Client struct {
	baseURL string
	apiKey  string
	bucket  string
	http    *http.Client
}

// New creates a storage client. An empty baseURL yields a disabled client;
// Upload then returns ErrNotConfigured.
func New(baseURL, apiKey, bucket string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		bucket:  bucket,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Enabled reports whether a storage backend is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Upload stores the object under the given path and returns its public URL.
// Existing objects at the same path are overwritten.
func (c *Client) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("upload: storage returned %d: %s", resp.StatusCode, body)
	}

	return c.PublicURL(path), nil
}

// PublicURL is the unauthenticated read URL for a stored object.
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path)
}
