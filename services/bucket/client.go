// Package bucket uploads visitor photos to the public object storage bucket
// so the AI generation API and emailed links can reach them.
package bucket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to a Supabase-style storage API.
type Client struct {
	baseURL    string
	key        string
	bucket     string
	httpClient *http.Client
}

// New builds a client. Key and bucket are required up front.
func New(baseURL, key, bucketName string) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("bucket storage key is not configured")
	}
	if bucketName == "" {
		return nil, fmt.Errorf("bucket name is not configured")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		bucket:  bucketName,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Upload stores the bytes at the given object path, overwriting any previous
// object, and returns the public URL.
func (c *Client) Upload(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, strings.TrimPrefix(objectPath, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload '%s' to bucket: %w", objectPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("bucket upload for '%s' returned status %d: %s", objectPath, resp.StatusCode, body)
	}
	return c.PublicURL(objectPath), nil
}

// Remove deletes objects by path. Used as compensation when a later step of
// the submission fails.
func (c *Client) Remove(ctx context.Context, objectPaths ...string) error {
	prefixes := make([]string, len(objectPaths))
	for i, p := range objectPaths {
		prefixes[i] = strings.TrimPrefix(p, "/")
	}
	body, err := json.Marshal(map[string][]string{"prefixes": prefixes})
	if err != nil {
		return fmt.Errorf("failed to encode bucket remove request: %w", err)
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s", c.baseURL, c.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build bucket remove request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to remove objects from bucket: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("bucket remove returned status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}

// PublicURL returns the public address of an object in the bucket.
func (c *Client) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, strings.TrimPrefix(objectPath, "/"))
}
