// Package client talks to the persistence gateway over its JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/kalakar-academy/academy-api/internal/models"
)

// Client is a thin HTTP client for the gateway's REST surface.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New constructs a Client against the given base URL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details string          `json:"details"`
	Data    json.RawMessage `json:"data"`
	Count   int             `json:"count"`
}

// SaveEnrollment posts an enrollment record. A nil return means the
// gateway acknowledged the record; anything else means the caller should
// fall back to the local outbox.
func (c *Client) SaveEnrollment(ctx context.Context, record *models.EnrollmentRecord) error {
	_, err := c.post(ctx, "/api/enrollment", record)
	return err
}

// SaveContact posts a contact-form submission.
func (c *Client) SaveContact(ctx context.Context, record *models.ContactRecord) error {
	_, err := c.post(ctx, "/api/contact", record)
	return err
}

// SaveEnrollmentRaw replays an already-serialised record, used when
// draining the outbox.
func (c *Client) SaveEnrollmentRaw(ctx context.Context, raw json.RawMessage) error {
	_, err := c.postRaw(ctx, "/api/enrollment", raw)
	return err
}

// SaveContactRaw replays an already-serialised contact submission.
func (c *Client) SaveContactRaw(ctx context.Context, raw json.RawMessage) error {
	_, err := c.postRaw(ctx, "/api/contact", raw)
	return err
}

// EnrollmentsByEmail fetches enrollments for a student email.
func (c *Client) EnrollmentsByEmail(ctx context.Context, email string) ([]models.EnrollmentRecord, error) {
	endpoint := "/api/enrollments"
	if email != "" {
		endpoint += "?email=" + url.QueryEscape(email)
	}
	env, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var records []models.EnrollmentRecord
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &records); err != nil {
			return nil, fmt.Errorf("decode enrollments: %w", err)
		}
	}
	return records, nil
}

// Health probes the gateway, reporting whether it is reachable and
// whether it holds a database connection.
func (c *Client) Health(ctx context.Context) (available bool, databaseConnected bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false, false
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return false, false
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return false, false
	}
	var body struct {
		DatabaseConnected bool `json:"databaseConnected"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return true, false
	}
	return true, body.DatabaseConnected
}

func (c *Client) post(ctx context.Context, endpoint string, payload interface{}) (*envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return c.postRaw(ctx, endpoint, raw)
}

func (c *Client) postRaw(ctx context.Context, endpoint string, raw []byte) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	return decodeEnvelope(resp)
}

func (c *Client) get(ctx context.Context, endpoint string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	return decodeEnvelope(resp)
}

func decodeEnvelope(resp *http.Response) (*envelope, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("malformed gateway response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, msg)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "gateway reported failure"
		}
		return nil, fmt.Errorf("%s", msg)
	}
	return &env, nil
}
