package tinytoken

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tinytoken-dashboard/internal/domain/keys"
)

const requestTimeout = 10 * time.Second

const adminKeyHeader = "x-admin-key"

// Client talks to the remote TinyToken key-issuance service. Every call is
// authenticated with the shared admin key; the service is the sole owner of
// key state, nothing is cached or stored locally.
type Client struct {
	baseURL    string
	adminKey   string
	httpClient *http.Client
}

func New(baseURL, adminKey string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		adminKey: adminKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// CreateKey issues a new API key for email. The returned CreatedKey carries
// the full key value; this is the only time the service hands it out.
func (c *Client) CreateKey(ctx context.Context, email, description string) (*keys.CreatedKey, error) {
	body := map[string]string{
		"user_email":  email,
		"description": description,
	}

	var created keys.CreatedKey
	if err := c.doJSON(ctx, http.MethodPost, "/keys/create", body, &created); err != nil {
		return nil, fmt.Errorf("create key: %w", err)
	}
	if created.Key == "" {
		return nil, fmt.Errorf("create key: key service returned an empty key")
	}

	logrus.WithField("user_email", email).Info("API key created")
	return &created, nil
}

// ListKeys fetches every issued key, full values included. Callers that serve
// display surfaces must mask before returning.
func (c *Client) ListKeys(ctx context.Context) ([]keys.Key, error) {
	var out struct {
		APIKeys []keys.Key `json:"api_keys"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/keys/list", nil, &out); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return out.APIKeys, nil
}

// Deactivate flags a single key inactive. fullKey must be the complete key
// value, not a masked form.
func (c *Client) Deactivate(ctx context.Context, fullKey string) error {
	if err := c.doJSON(ctx, http.MethodPost, "/keys/deactivate/"+url.PathEscape(fullKey), nil, nil); err != nil {
		return fmt.Errorf("deactivate key: %w", err)
	}
	logrus.WithField("key", keys.Mask(fullKey)).Info("API key deactivated")
	return nil
}

// DeactivateAll flags every key owned by email inactive.
func (c *Client) DeactivateAll(ctx context.Context, email string) error {
	body := map[string]string{"user_email": email}
	if err := c.doJSON(ctx, http.MethodPost, "/keys/deactivate-all", body, nil); err != nil {
		return fmt.Errorf("deactivate all keys: %w", err)
	}
	logrus.WithField("user_email", email).Info("all API keys deactivated")
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(adminKeyHeader, c.adminKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("key service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("key service returned status %d: %s", resp.StatusCode, upstreamError(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// upstreamError pulls a best-effort message out of an error response body.
func upstreamError(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "no response body"
	}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return string(raw)
}
