package freshdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/freshdesk-bridge/internal/config"
)

// basicAuthPassword is the placeholder password Freshdesk expects when
// the API key is used as the Basic auth username.
const basicAuthPassword = "X"

// maxErrorBodyBytes caps how much of a rejection body is read when
// extracting the error message.
const maxErrorBodyBytes = 64 * 1024

// Client talks to the Freshdesk v2 ticket API. It performs exactly one
// HTTP call per CreateTicket invocation; retries are the caller's
// problem, and the caller here deliberately has none.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client from configuration. When cfg.BaseURL is
// empty the standard https://{domain}.freshdesk.com endpoint is used.
func NewClient(cfg config.FreshdeskConfig, logger *zap.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.freshdesk.com", cfg.Domain)
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// CreateTicket POSTs the payload to /api/v2/tickets.
//
// Outcomes map one-to-one onto the three failure kinds the bridge
// reports upstream: nil error for any 2xx response, *APIError for a
// non-2xx response, and a plain wrapped error when no response was
// received at all.
func (c *Client) CreateTicket(ctx context.Context, ticket TicketRequest) (*CreatedTicket, error) {
	body, err := json.Marshal(ticket)
	if err != nil {
		return nil, fmt.Errorf("encode ticket payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v2/tickets", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build ticket request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, basicAuthPassword)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("freshdesk unreachable: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    extractErrorMessage(resp.Body),
		}
		c.logger.Warn("freshdesk rejected ticket",
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return nil, apiErr
	}

	created := &CreatedTicket{}
	if err := json.NewDecoder(resp.Body).Decode(created); err != nil {
		// The response body is informational only; a success without a
		// readable ticket ID is still a success.
		c.logger.Debug("freshdesk success body not decodable", zap.Error(err))
		return &CreatedTicket{}, nil
	}
	return created, nil
}

// extractErrorMessage pulls the "message" field out of a rejection
// body, falling back to UnknownErrorMessage when the body is not JSON
// or carries no such field.
func extractErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))
	if err != nil {
		return UnknownErrorMessage
	}
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return UnknownErrorMessage
	}
	if parsed.Message == "" {
		return UnknownErrorMessage
	}
	return parsed.Message
}
