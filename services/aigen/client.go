// Package aigen calls the remote image-generation API that turns a
// visitor's photo into a themed portrait.
package aigen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/playlistx/photoboothbackend/media"
)

// How long one generation may take end to end, polling included.
const generationTimeout = 3 * time.Minute

// Client talks to a Replicate-style prediction API.
type Client struct {
	baseURL    string
	token      string
	model      string
	httpClient *http.Client
}

// New builds a client. The token is required; a kiosk without a token should
// fail at startup, not when the first visitor reaches the AI screen.
func New(baseURL, token, model string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("image generation API token is not configured")
	}
	if model == "" {
		return nil, fmt.Errorf("image generation model is not configured")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type predictionInput struct {
	Prompt            string   `json:"prompt"`
	ImageInput        []string `json:"image_input"`
	Resolution        string   `json:"resolution"`
	OutputFormat      string   `json:"output_format"`
	SafetyFilterLevel string   `json:"safety_filter_level"`
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

// Generate submits a prediction combining the visitor's photo with the
// theme's template image and returns the URL of the generated image.
func (c *Client) Generate(ctx context.Context, prompt, userImageURL, templateImageURL string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"input": predictionInput{
			Prompt:            prompt,
			ImageInput:        []string{userImageURL, templateImageURL},
			Resolution:        "2K",
			OutputFormat:      "png",
			SafetyFilterLevel: "block_only_high",
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1/models/%s/predictions", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "wait")

	pred, err := c.doPrediction(req)
	if err != nil {
		return "", err
	}

	for !isTerminal(pred.Status) {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("image generation timed out (prediction %s): %w", pred.ID, ctx.Err())
		case <-time.After(2 * time.Second):
		}

		pollReq, err := http.NewRequestWithContext(ctx, http.MethodGet, pred.URLs.Get, nil)
		if err != nil {
			return "", fmt.Errorf("failed to build poll request: %w", err)
		}
		pollReq.Header.Set("Authorization", "Bearer "+c.token)

		pred, err = c.doPrediction(pollReq)
		if err != nil {
			return "", err
		}
	}

	if pred.Status != "succeeded" {
		return "", fmt.Errorf("image generation failed (prediction %s, status %s): %s", pred.ID, pred.Status, pred.Error)
	}

	outputURL, err := extractOutputURL(pred.Output)
	if err != nil {
		return "", fmt.Errorf("image generation returned no usable output (prediction %s): %w", pred.ID, err)
	}
	log.Printf("services.aigen: Prediction %s succeeded", pred.ID)
	return outputURL, nil
}

func (c *Client) doPrediction(req *http.Request) (*prediction, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation API request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation API response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("generation API returned status %d: %s", resp.StatusCode, truncate(data, 512))
	}

	var pred prediction
	if err := json.Unmarshal(data, &pred); err != nil {
		return nil, fmt.Errorf("failed to decode generation API response: %w", err)
	}
	return &pred, nil
}

func isTerminal(status string) bool {
	switch status {
	case "succeeded", "failed", "canceled":
		return true
	}
	return false
}

// extractOutputURL handles both output shapes the API produces: a bare URL
// string or an array of URLs.
func extractOutputURL(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("empty output")
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 && many[0] != "" {
		return many[0], nil
	}
	return "", fmt.Errorf("unrecognized output shape: %s", truncate(raw, 128))
}

// DownloadAsDataURI fetches a generated image and returns it as a PNG data
// URI ready for the compositor or the kiosk UI.
func (c *Client) DownloadAsDataURI(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build image download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download generated image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generated image: %w", err)
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" || !strings.HasPrefix(mime, "image/") {
		mime = "image/png"
	}
	return media.EncodeDataURI(mime, data), nil
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
