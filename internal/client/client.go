package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config carries the session-wide settings for talking to a DocFusionDB
// server. All of it is plain data owned by the CLI layer.
type Config struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	Insecure bool
}

// Client is a connection-pooled HTTP client for the DocFusionDB API.
type Client struct {
	cfg  Config
	http *http.Client
}

func New(cfg Config) *Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxConnsPerHost = 2000
	t.MaxIdleConnsPerHost = 2000
	if cfg.Insecure {
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: t,
		},
	}
}

// Health reports whether the server answers on /health.
func (c *Client) Health(ctx context.Context) bool {
	_, status, err := c.get(ctx, "/health")
	return err == nil && status == http.StatusOK
}

// CreateDocument stores a single document.
func (c *Client) CreateDocument(ctx context.Context, doc map[string]any) (json.RawMessage, int, error) {
	return c.post(ctx, "/documents", map[string]any{"document": doc})
}

// BulkCreate stores a batch of documents in one request.
func (c *Client) BulkCreate(ctx context.Context, docs []map[string]any) (json.RawMessage, int, error) {
	return c.post(ctx, "/documents/bulk", map[string]any{"documents": docs})
}

// ListDocuments fetches one page of documents.
func (c *Client) ListDocuments(ctx context.Context, limit, offset int) (json.RawMessage, int, error) {
	return c.get(ctx, fmt.Sprintf("/documents?limit=%d&offset=%d", limit, offset))
}

// ExecuteQuery runs an ad-hoc SQL query.
func (c *Client) ExecuteQuery(ctx context.Context, sql string) (json.RawMessage, int, error) {
	return c.post(ctx, "/query", map[string]any{"sql": sql})
}

// GetMetrics fetches the server's metrics document.
func (c *Client) GetMetrics(ctx context.Context) (json.RawMessage, int, error) {
	return c.get(ctx, "/metrics")
}

func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, int, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, 0, err
	}
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, 0, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, int, error) {
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if len(body) > 0 && !json.Valid(body) {
		return nil, resp.StatusCode, fmt.Errorf("non-JSON response (%d bytes)", len(body))
	}
	return json.RawMessage(body), resp.StatusCode, nil
}
