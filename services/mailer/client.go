// Package mailer sends the visitor their photo by email through a
// transactional email API.
package mailer

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

// Client talks to a Resend-style email API.
type Client struct {
	baseURL    string
	key        string
	from       string
	httpClient *http.Client
}

// New builds a client. Key and sender are required up front.
func New(baseURL, key, from string) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("mailer API key is not configured")
	}
	if from == "" {
		return nil, fmt.Errorf("mailer sender address is not configured")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		from:    from,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one HTML email.
func (c *Client) Send(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email to '%s': %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email API returned status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
