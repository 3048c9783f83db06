package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/theoremus-urban-solutions/traffic-viz/live"
	"github.com/theoremus-urban-solutions/traffic-viz/topology"
)

// Client is a JSON/HTTP client for the traffic backend. The engine is
// agnostic to transport details beyond the four endpoint shapes here.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client. timeout bounds every request
// including body read.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Health checks service liveness. Consumed at startup only; the poll loop
// never calls it.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.getJSON(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchTopology fetches the static node/edge sets. Called once per session.
func (c *Client) FetchTopology(ctx context.Context) ([]topology.Node, []topology.Edge, error) {
	var out topologyResponse
	if err := c.getJSON(ctx, "/api/config", &out); err != nil {
		return nil, nil, err
	}
	return out.Nodes, out.Edges, nil
}

// FetchLiveData fetches one poll of the live-state feed.
func (c *Client) FetchLiveData(ctx context.Context) (*live.Snapshot, error) {
	var out live.Snapshot
	if err := c.getJSON(ctx, "/api/live-data", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestRoute asks the backend for a route. The request body carries
// either node ids or raw coordinates; the backend snaps coordinates
// itself.
func (c *Client) RequestRoute(ctx context.Context, reqBody RouteRequest) (*RouteResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/route", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", c.baseURL+"/api/route", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, c.baseURL+"/api/route")
	}
	var out RouteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode route response: %w", err)
	}
	return &out, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
