package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the Resend API base URL.
	DefaultBaseURL = "https://api.resend.com"
)

// Config holds client construction parameters. BaseURL is optional and
// defaults to DefaultBaseURL.
type Config struct {
	APIKey  string
	BaseURL string
}

// Client is a minimal HTTP client for the Resend transactional email API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	debug      bool
}

// NewClient constructs a new Client with sane defaults.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     cfg.APIKey,
		baseURL:    base,
		debug:      os.Getenv("ENV") == "development",
	}
}

// Send submits one email and returns the provider-assigned message id.
func (c *Client) Send(ctx context.Context, sendReq *SendRequest) (*SendResponse, error) {
	payload, err := json.Marshal(sendReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("subject", sendReq.Subject).
			Int("payload_bytes", len(payload)).
			Msg("[RESEND] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Int("status_code", resp.StatusCode).
			Msg("[RESEND] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var body errorBody
		if err := json.Unmarshal(respBody, &body); err == nil && body.Message != "" {
			apiErr.Name = body.Name
			apiErr.Message = body.Message
		}
		return nil, apiErr
	}

	var out SendResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
