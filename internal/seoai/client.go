package seoai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// API defines the operations the dashboard performs against the SEO-AI
// service. This interface is implemented by *Client and can be used for
// testing.
type API interface {
	CreateCard(ctx context.Context, req CreateCardRequest) (Card, error)
	StartAnalysis(ctx context.Context, cardID int64) error
	StartDescription(ctx context.Context, cardID int64) error
	FetchProcessList(ctx context.Context) ([]ProcessJob, error)
	FetchArchive(ctx context.Context) ([]ArchiveItem, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the SEO-AI HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
}

const (
	defaultAPIBase   = "http://127.0.0.1:8700"
	defaultUserAgent = "seodesk/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given base URL and bearer token.
func NewClient(apiBase, token string) (*Client, error) {
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		token:     strings.TrimSpace(token),
		userAgent: defaultUserAgent,
	}, nil
}

// CreateCard submits a SKU pair and returns the server-side card record.
func (c *Client) CreateCard(ctx context.Context, req CreateCardRequest) (Card, error) {
	if c == nil {
		return Card{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(req.SKU) == "" {
		return Card{}, fmt.Errorf("sku required")
	}
	var payload CreateCardResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/static-card", req, &payload); err != nil {
		return Card{}, err
	}
	if err := payload.Err(); err != nil {
		return Card{}, err
	}
	return payload.Card, nil
}

// StartAnalysis begins SEO analysis for an existing card.
func (c *Client) StartAnalysis(ctx context.Context, cardID int64) error {
	return c.startCard(ctx, "analyse-card", cardID)
}

// StartDescription begins description generation for an existing card.
func (c *Client) StartDescription(ctx context.Context, cardID int64) error {
	return c.startCard(ctx, "description-card", cardID)
}

func (c *Client) startCard(ctx context.Context, resource string, cardID int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if cardID <= 0 {
		return fmt.Errorf("card id required")
	}
	var payload struct{ Envelope }
	path := fmt.Sprintf("/api/v1/%s/%d", resource, cardID)
	if err := c.do(ctx, http.MethodPut, path, nil, &payload); err != nil {
		return err
	}
	return payload.Err()
}

// FetchProcessList retrieves the current server-side job list.
func (c *Client) FetchProcessList(ctx context.Context) ([]ProcessJob, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ProcessListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/process-list", nil, &payload); err != nil {
		return nil, err
	}
	if err := payload.Err(); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// FetchArchive retrieves the completed-job archive.
func (c *Client) FetchArchive(ctx context.Context) ([]ArchiveItem, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ArchiveResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/archive", nil, &payload); err != nil {
		return nil, err
	}
	if err := payload.Err(); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Rejections arrive as an envelope with result=false, sometimes on 4xx
	// statuses. Try to decode the envelope first so the localized message
	// survives; fall back to the bare status.
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", apiBase, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
