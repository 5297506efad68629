// Package imgpush is a client for an imgpush-compatible image host.
//
// The host accepts a JSON POST with a source URL, mirrors the image, and
// answers with the filename it stored it under. Upload failures are soft:
// the caller proceeds as if the message carried no attachment.
package imgpush

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client uploads externally hosted images to an imgpush server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type uploadRequest struct {
	URL string `json:"url"`
}

type uploadResponse struct {
	Filename string `json:"filename"`
}

// New creates a client for the imgpush server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload asks the host to mirror the image at sourceURL and returns the
// resulting public URL.
func (c *Client) Upload(ctx context.Context, sourceURL string) (string, error) {
	body, err := json.Marshal(uploadRequest{URL: sourceURL})
	if err != nil {
		return "", fmt.Errorf("encode upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("image host returned status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if parsed.Filename == "" {
		return "", fmt.Errorf("image host response missing filename")
	}

	return c.baseURL + "/" + parsed.Filename, nil
}
