package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

// DefaultPreset is the river site forecast when nothing else is configured.
const DefaultPreset = "Philadelphia, PA - Baxter Water Intake"

// presets are the predefined river monitoring sites. LOCATION_PRESET selects
// one by name; explicit LOCATION_LAT/LOCATION_LON override it.
var presets = map[string]domain.Location{
	"Philadelphia, PA - Baxter Water Intake": {
		Name: "Philadelphia, PA - Baxter Water Intake",
		Lat:  40.039661, Lon: -74.992145,
	},
	"Philadelphia, PA - Schuylkill Rv. Near 30th St": {
		Name: "Philadelphia, PA - Schuylkill Rv. Near 30th St",
		Lat:  39.955093, Lon: -75.180347,
	},
	"Trenton, NJ - Calhoun St Bridge": {
		Name: "Trenton, NJ - Calhoun St Bridge",
		Lat:  40.221788, Lon: -74.779903,
	},
	"Sault Sainte Marie, MI": {
		Name: "Sault Sainte Marie, MI",
		Lat:  46.5033, Lon: -84.3517,
	},
}

// Config holds all service settings, populated from environment variables.
type Config struct {
	Location domain.Location

	// Flux model parameters.
	DepthM          float64
	Albedo          float64
	PressureMB      float64
	Wind            domain.WindFunctionParams
	TruncateDegrees bool

	RefreshInterval time.Duration
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream endpoints.
	NWSBaseURL      string
	NWSTimeout      time.Duration
	NWSRateLimit    float64 // requests per second against the forecast feed
	CoopsBaseURL    string
	CoopsTimeout    time.Duration
	OpenTopoBaseURL string
	OpenTopoTimeout time.Duration

	// Kafka publishing configuration (feature-flagged via KAFKA_BROKERS /
	// KAFKA_ENABLED).
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	loc, err := loadLocation()
	if err != nil {
		return nil, err
	}

	refresh, err := envDuration("REFRESH_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}
	shutdown, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	nwsTimeout, err := envDuration("NWS_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	coopsTimeout, err := envDuration("COOPS_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	topoTimeout, err := envDuration("OPENTOPO_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	depth, err := envFloat("DEPTH_M", domain.DefaultDepth)
	if err != nil {
		return nil, err
	}
	if depth <= 0 {
		return nil, &domain.InvalidDepthError{Depth: depth}
	}

	albedo, err := envFloat("ALBEDO", domain.DefaultAlbedo)
	if err != nil {
		return nil, err
	}
	pressure, err := envFloat("PRESSURE_MB", 1000)
	if err != nil {
		return nil, err
	}
	wind, err := loadWindFunction()
	if err != nil {
		return nil, err
	}
	rateLimit, err := envFloat("NWS_RATE_LIMIT", 1)
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		Location:        loc,
		DepthM:          depth,
		Albedo:          albedo,
		PressureMB:      pressure,
		Wind:            wind,
		TruncateDegrees: envOrDefault("TRUNCATE_WHOLE_DEGREES", "true") == "true",
		RefreshInterval: refresh,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdown,
		NWSBaseURL:      envOrDefault("NWS_BASE_URL", "https://forecast.weather.gov/MapClick.php"),
		NWSTimeout:      nwsTimeout,
		NWSRateLimit:    rateLimit,
		CoopsBaseURL:    envOrDefault("COOPS_BASE_URL", "https://api.tidesandcurrents.noaa.gov/api/prod/datagetter"),
		CoopsTimeout:    coopsTimeout,
		OpenTopoBaseURL: envOrDefault("OPENTOPO_BASE_URL", "https://api.opentopodata.org/v1/ned10m"),
		OpenTopoTimeout: topoTimeout,
		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    brokers,
		KafkaSinkTopic:  envOrDefault("KAFKA_SINK_TOPIC", "river-flux-forecasts"),
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.RefreshInterval <= 0 {
		return nil, errors.New("REFRESH_INTERVAL must be positive")
	}
	if cfg.NWSRateLimit <= 0 {
		return nil, errors.New("NWS_RATE_LIMIT must be positive")
	}

	return cfg, nil
}

// TempPolicy maps the truncation flag to the domain conversion policy.
func (c *Config) TempPolicy() domain.TemperaturePolicy {
	if c.TruncateDegrees {
		return domain.TruncateWholeDegrees
	}
	return domain.ConvertExact
}

// loadLocation resolves the forecast site: explicit LOCATION_LAT/LOCATION_LON
// win, then LOCATION_PRESET, then the default preset. This is the one place
// default-location fallback happens; the pipeline itself always receives an
// explicit Location.
func loadLocation() (domain.Location, error) {
	latStr, lonStr := os.Getenv("LOCATION_LAT"), os.Getenv("LOCATION_LON")
	if latStr != "" || lonStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lon, errLon := strconv.ParseFloat(lonStr, 64)
		if errLat != nil || errLon != nil {
			return domain.Location{}, fmt.Errorf("invalid LOCATION_LAT/LOCATION_LON: %w", domain.ErrNoLocation)
		}
		name := envOrDefault("LOCATION_NAME", fmt.Sprintf("%.4f, %.4f", lat, lon))
		return domain.Location{Name: name, Lat: lat, Lon: lon}, nil
	}

	preset := envOrDefault("LOCATION_PRESET", DefaultPreset)
	loc, ok := presets[preset]
	if !ok {
		return domain.Location{}, fmt.Errorf("unknown LOCATION_PRESET %q: %w", preset, domain.ErrNoLocation)
	}
	return loc, nil
}

func loadWindFunction() (domain.WindFunctionParams, error) {
	p := domain.DefaultWindFunction
	var err error
	if p.A, err = envFloat("WIND_FUNCTION_A", p.A); err != nil {
		return p, err
	}
	if p.B, err = envFloat("WIND_FUNCTION_B", p.B); err != nil {
		return p, err
	}
	if p.C, err = envFloat("WIND_FUNCTION_C", p.C); err != nil {
		return p, err
	}
	if p.R, err = envFloat("WIND_FUNCTION_R", p.R); err != nil {
		return p, err
	}
	return p, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
