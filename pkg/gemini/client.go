package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the generative-language API base URL.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// Config holds client construction parameters. BaseURL is optional and
// defaults to DefaultBaseURL.
type Config struct {
	APIKey  string
	BaseURL string
}

// Client is a minimal HTTP client for the generative-language API.
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
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     cfg.APIKey,
		baseURL:    base,
		debug:      os.Getenv("ENV") == "development",
	}
}

// GenerateContent runs one completion attempt against the named model and
// returns the raw upstream JSON payload on success. Non-2xx answers are
// returned as *APIError carrying the upstream status and message.
func (c *Client) GenerateContent(ctx context.Context, model string, genReq *GenerateRequest) (json.RawMessage, error) {
	payload, err := json.Marshal(genReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// The key travels as a query parameter; never log the full URL.
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, url.PathEscape(model), url.QueryEscape(c.apiKey))

	if c.debug {
		log.Debug().
			Str("model", model).
			Int("payload_bytes", len(payload)).
			Msg("[GEMINI] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
			Str("model", model).
			Int("status_code", resp.StatusCode).
			Int("body_bytes", len(respBody)).
			Msg("[GEMINI] Incoming response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var body errorBody
		if err := json.Unmarshal(respBody, &body); err == nil && body.Error.Message != "" {
			apiErr.Message = body.Error.Message
		}
		return nil, apiErr
	}

	return json.RawMessage(respBody), nil
}
