// Package opentopo resolves site elevations via the OpenTopoData NED 10m
// dataset. Elevation feeds the clear-sky model's air-mass correction.
package opentopo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

// Client implements domain.ElevationService against api.opentopodata.org.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.ElevationService = (*Client)(nil)

// NewClient creates an OpenTopoData client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Elevation returns the terrain elevation in meters at the coordinates.
func (c *Client) Elevation(ctx context.Context, lat, lon float64) (float64, error) {
	u := fmt.Sprintf("%s?locations=%.6f,%.6f", c.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("elevation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("opentopodata API error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if payload.Status != "OK" {
		return 0, fmt.Errorf("opentopodata API error: %s", payload.Error)
	}
	if len(payload.Results) == 0 {
		return 0, fmt.Errorf("no elevation result for %.6f,%.6f", lat, lon)
	}

	return payload.Results[0].Elevation, nil
}

// OpenTopoData response types.

type response struct {
	Status  string   `json:"status"`
	Error   string   `json:"error"`
	Results []result `json:"results"`
}

type result struct {
	Elevation float64 `json:"elevation"`
}
