// Package coops reads observed water temperatures from the NOAA CO-OPS
// data retrieval API. Readings seed the flux model's water temperature; when
// no station reports, a conservative winter default is used instead.
package coops

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

// Station identifies a CO-OPS station with a water temperature sensor.
type Station struct {
	ID        string
	Name      string
	Waterbody string
	Lat       float64
	Lon       float64
}

// DefaultStations is the priority-ordered fallback chain. The first station
// with a current reading wins.
var DefaultStations = []Station{
	{ID: "9076033", Name: "Little Rapids", Waterbody: "St. Marys River", Lat: 46.4860, Lon: -84.3028},
	{ID: "9076070", Name: "S.W. Pier", Waterbody: "St. Marys River", Lat: 46.5011, Lon: -84.3725},
	{ID: "9075099", Name: "De Tour Village", Waterbody: "Lake Huron", Lat: 45.9925, Lon: -83.8982},
	{ID: "9075080", Name: "Mackinaw City", Waterbody: "Lake Huron", Lat: 45.7770, Lon: -84.7210},
}

// Client implements domain.WaterTempSource against the CO-OPS datagetter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	stations   []Station
	logger     *slog.Logger
}

var _ domain.WaterTempSource = (*Client)(nil)

// NewClient creates a CO-OPS client querying the given stations in order.
func NewClient(baseURL string, timeout time.Duration, stations []Station, logger *slog.Logger) *Client {
	if len(stations) == 0 {
		stations = DefaultStations
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		stations: stations,
		logger:   logger,
	}
}

// CurrentWaterTemp walks the station chain and returns the first available
// reading. If every station fails or reports nothing, the default winter
// temperature is returned with Station set to "default"; station outages
// must not stall the forecast.
func (c *Client) CurrentWaterTemp(ctx context.Context) (domain.WaterTempReading, error) {
	for _, st := range c.stations {
		reading, err := c.stationTemp(ctx, st)
		if err != nil {
			c.logger.Warn("water temp station unavailable", "station", st.ID, "error", err)
			continue
		}
		return domain.WaterTempReading{
			TempC:   reading.TempC,
			Station: st.Name,
			Time:    reading.Time,
		}, nil
	}

	c.logger.Warn("no water temp station reporting, using default",
		"default_celsius", domain.DefaultWaterTempC)
	return domain.WaterTempReading{
		TempC:   domain.DefaultWaterTempC,
		Station: "default",
	}, nil
}

// LatestReadings returns the most recent reading from every station that
// responds, for the observations API.
func (c *Client) LatestReadings(ctx context.Context) []domain.StationReading {
	out := make([]domain.StationReading, 0, len(c.stations))
	for _, st := range c.stations {
		reading, err := c.stationTemp(ctx, st)
		if err != nil {
			c.logger.Warn("water temp station unavailable", "station", st.ID, "error", err)
			continue
		}
		out = append(out, reading)
	}
	return out
}

func (c *Client) stationTemp(ctx context.Context, st Station) (domain.StationReading, error) {
	params := url.Values{
		"product":     {"water_temperature"},
		"station":     {st.ID},
		"date":        {"latest"},
		"interval":    {"h"},
		"time_zone":   {"GMT"},
		"units":       {"english"},
		"format":      {"json"},
		"application": {"philly-ice-forecast"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.StationReading{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.StationReading{}, fmt.Errorf("water temperature request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.StationReading{}, fmt.Errorf("co-ops API error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.StationReading{}, fmt.Errorf("decode response: %w", err)
	}
	if payload.Error.Message != "" {
		return domain.StationReading{}, fmt.Errorf("co-ops API error: %s", payload.Error.Message)
	}
	if len(payload.Data) == 0 {
		return domain.StationReading{}, fmt.Errorf("station %s has no current data", st.ID)
	}

	latest := payload.Data[len(payload.Data)-1]
	tempF, err := strconv.ParseFloat(latest.Value, 64)
	if err != nil {
		return domain.StationReading{}, fmt.Errorf("station %s value %q: %w", st.ID, latest.Value, err)
	}

	ts, err := time.Parse("2006-01-02 15:04", latest.Time)
	if err != nil {
		return domain.StationReading{}, fmt.Errorf("station %s timestamp %q: %w", st.ID, latest.Time, err)
	}

	return domain.StationReading{
		Station:   st.Name,
		Waterbody: st.Waterbody,
		Lat:       st.Lat,
		Lon:       st.Lon,
		TempF:     tempF,
		TempC:     domain.FahrenheitToCelsius(tempF),
		Time:      ts.UTC(),
	}, nil
}

// CO-OPS datagetter response types.

type response struct {
	Data []observation `json:"data"`
	// The API reports failures as 200s with an error object.
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type observation struct {
	Time  string `json:"t"`
	Value string `json:"v"`
}
