// Package remote implements the HTTP client for the authoritative
// clinic service. Failures are mapped onto the engine's error taxonomy:
// transport problems and 5xx become NetworkError (retried with
// backoff), 409 becomes ConflictError carrying the server's current
// record, and remaining 4xx become ValidationError (never retried).
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/clinicore/syncengine/internal/models"
	"github.com/clinicore/syncengine/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// DefaultTimeout bounds every request. A timed-out call behaves
// exactly like a transport failure.
const DefaultTimeout = 15 * time.Second

// ClientAPI defines the remote service operations the engine depends on
type ClientAPI interface {
	// Create submits a new entity; the response carries the
	// server-issued identifier
	Create(ctx context.Context, entityType string, req api.WriteRequest) (*api.EntityRecord, error)

	// Update submits new data for an existing entity
	Update(ctx context.Context, entityType, id string, req api.WriteRequest) (*api.EntityRecord, error)

	// Delete removes an entity
	Delete(ctx context.Context, entityType, id string, req api.WriteRequest) (*api.EntityRecord, error)

	// Get fetches the server's current record of an entity
	Get(ctx context.Context, entityType, id string) (*api.EntityRecord, error)

	// List fetches all records of an entity type
	List(ctx context.Context, entityType string) ([]api.EntityRecord, error)

	// Health probes service reachability
	Health(ctx context.Context) error
}

// Client is the HTTP implementation of ClientAPI
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
}

// NewClient creates a new API client. apiToken may be empty for
// deployments without a clinic token.
func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// SetTimeout overrides the request timeout
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// Create submits a new entity
func (c *Client) Create(ctx context.Context, entityType string, req api.WriteRequest) (*api.EntityRecord, error) {
	var resp api.WriteResponse
	path := fmt.Sprintf("/api/v1/%s", url.PathEscape(entityType))
	if err := c.doRequest(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Record, nil
}

// Update submits new data for an existing entity
func (c *Client) Update(ctx context.Context, entityType, id string, req api.WriteRequest) (*api.EntityRecord, error) {
	var resp api.WriteResponse
	path := fmt.Sprintf("/api/v1/%s/%s", url.PathEscape(entityType), url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodPut, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Record, nil
}

// Delete removes an entity
func (c *Client) Delete(ctx context.Context, entityType, id string, req api.WriteRequest) (*api.EntityRecord, error) {
	var resp api.WriteResponse
	path := fmt.Sprintf("/api/v1/%s/%s", url.PathEscape(entityType), url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodDelete, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Record, nil
}

// Get fetches the server's current record of an entity
func (c *Client) Get(ctx context.Context, entityType, id string) (*api.EntityRecord, error) {
	var record api.EntityRecord
	path := fmt.Sprintf("/api/v1/%s/%s", url.PathEscape(entityType), url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// List fetches all records of an entity type
func (c *Client) List(ctx context.Context, entityType string) ([]api.EntityRecord, error) {
	var records []api.EntityRecord
	path := fmt.Sprintf("/api/v1/%s", url.PathEscape(entityType))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Health probes service reachability
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	return c.doRequest(ctx, http.MethodGet, "/healthz", nil, &resp)
}

// doRequest performs one HTTP round trip and maps the outcome onto the
// engine error taxonomy
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &models.NetworkError{Op: method + " " + path, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.NetworkError{Op: method + " " + path, Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if result != nil {
			if err := json.Unmarshal(respBody, result); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
		}
		return nil

	case resp.StatusCode == http.StatusConflict:
		var conflict api.ConflictResponse
		if err := json.Unmarshal(respBody, &conflict); err != nil {
			return fmt.Errorf("failed to decode conflict response: %w", err)
		}
		return &models.ConflictError{
			Message:       conflict.Message,
			ServerID:      conflict.Current.ID,
			ServerData:    conflict.Current.Data,
			ServerVersion: conflict.Current.Version,
			ServerDeleted: conflict.Current.Deleted,
		}

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var errResp api.ErrorResponse
		message := string(respBody)
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			message = errResp.Message
		}
		return &models.ValidationError{StatusCode: resp.StatusCode, Message: message}

	default:
		return &models.NetworkError{
			Op:  method + " " + path,
			Err: fmt.Errorf("server error (%d): %s", resp.StatusCode, string(respBody)),
		}
	}
}
