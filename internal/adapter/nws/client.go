// Package nws fetches hourly digital forecasts from the National Weather
// Service MapClick endpoint. The endpoint serves HTML, not an API payload;
// the tabular digital forecast is scraped out of the page.
package nws

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

// Client implements domain.WindowFetcher against forecast.weather.gov.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ domain.WindowFetcher = (*Client)(nil)

// NewClient creates a MapClick digital forecast client. rps caps the request
// rate against the public endpoint; the feed is scraped, so stay polite.
func NewClient(baseURL string, timeout time.Duration, rps float64, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

// FetchWindow retrieves the 48-hour digital forecast starting leadHours
// ahead of now.
func (c *Client) FetchWindow(ctx context.Context, lat, lon float64, leadHours int) (domain.ForecastWindow, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.ForecastWindow{}, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.windowURL(lat, lon, leadHours), nil)
	if err != nil {
		return domain.ForecastWindow{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ForecastWindow{}, fmt.Errorf("digital forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ForecastWindow{}, fmt.Errorf("digital forecast: status %d", resp.StatusCode)
	}

	records, tz, err := parseDigitalForecast(resp.Body, domain.Clock().Now())
	if err != nil {
		return domain.ForecastWindow{}, fmt.Errorf("lead %dh: %w", leadHours, err)
	}

	c.logger.Debug("fetched forecast window",
		"lead_hours", leadHours,
		"records", len(records),
		"tz", tz.String(),
	)

	return domain.ForecastWindow{
		LeadHours: leadHours,
		TZ:        tz,
		Records:   records,
	}, nil
}

// windowURL reproduces the digital forecast query. The w* parameters select
// the columns (temperature, dewpoint, wind chill, surface wind, sky cover,
// precipitation potential, relative humidity, precipitation types); AheadHour
// shifts the 48-hour window.
func (c *Client) windowURL(lat, lon float64, leadHours int) string {
	params := url.Values{
		"w0":         {"t"},
		"w1":         {"td"},
		"w2":         {"wc"},
		"w3":         {"sfcwind"},
		"w3u":        {"1"},
		"w4":         {"sky"},
		"w5":         {"pop"},
		"w6":         {"rh"},
		"w7":         {"rain"},
		"w8":         {"thunder"},
		"w9":         {"snow"},
		"w10":        {"fzg"},
		"w11":        {"sleet"},
		"w13u":       {"0"},
		"w16u":       {"1"},
		"w17u":       {"1"},
		"AheadHour":  {fmt.Sprintf("%d", leadHours)},
		"Submit":     {"Submit"},
		"FcstType":   {"digital"},
		"textField1": {fmt.Sprintf("%.6f", lat)},
		"textField2": {fmt.Sprintf("%.6f", lon)},
		"site":       {"all"},
		"unit":       {"0"},
		"dd":         {""},
		"bw":         {""},
	}
	return c.baseURL + "?" + params.Encode()
}
