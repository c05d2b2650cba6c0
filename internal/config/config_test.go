package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPreset, cfg.Location.Name)
	assert.InDelta(t, 40.039661, cfg.Location.Lat, 1e-9)
	assert.InDelta(t, -74.992145, cfg.Location.Lon, 1e-9)

	assert.Equal(t, 2.0, cfg.DepthM)
	assert.Equal(t, 0.15, cfg.Albedo)
	assert.Equal(t, 1000.0, cfg.PressureMB)
	assert.Equal(t, domain.DefaultWindFunction, cfg.Wind)
	assert.True(t, cfg.TruncateDegrees)
	assert.Equal(t, domain.TruncateWholeDegrees, cfg.TempPolicy())

	assert.Equal(t, time.Hour, cfg.RefreshInterval)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)

	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadPreset(t *testing.T) {
	t.Setenv("LOCATION_PRESET", "Trenton, NJ - Calhoun St Bridge")

	cfg, err := Load()
	require.NoError(t, err)
	assert.InDelta(t, 40.221788, cfg.Location.Lat, 1e-9)
	assert.InDelta(t, -74.779903, cfg.Location.Lon, 1e-9)
}

func TestLoadUnknownPreset(t *testing.T) {
	t.Setenv("LOCATION_PRESET", "Atlantis")

	_, err := Load()
	require.ErrorIs(t, err, domain.ErrNoLocation)
}

func TestLoadExplicitCoordinates(t *testing.T) {
	t.Setenv("LOCATION_LAT", "41.5")
	t.Setenv("LOCATION_LON", "-80.25")
	t.Setenv("LOCATION_NAME", "Test Reach")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Test Reach", cfg.Location.Name)
	assert.Equal(t, 41.5, cfg.Location.Lat)
	assert.Equal(t, -80.25, cfg.Location.Lon)
}

func TestLoadInvalidCoordinates(t *testing.T) {
	t.Setenv("LOCATION_LAT", "north-ish")
	t.Setenv("LOCATION_LON", "-80.25")

	_, err := Load()
	require.ErrorIs(t, err, domain.ErrNoLocation)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEPTH_M", "3.5")
	t.Setenv("ALBEDO", "0.08")
	t.Setenv("WIND_FUNCTION_C", "2")
	t.Setenv("TRUNCATE_WHOLE_DEGREES", "false")
	t.Setenv("REFRESH_INTERVAL", "30m")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3.5, cfg.DepthM)
	assert.Equal(t, 0.08, cfg.Albedo)
	assert.Equal(t, 2.0, cfg.Wind.C)
	assert.Equal(t, domain.ConvertExact, cfg.TempPolicy())
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
}

func TestLoadInvalidDepth(t *testing.T) {
	t.Setenv("DEPTH_M", "-2")

	_, err := Load()
	var depthErr *domain.InvalidDepthError
	require.ErrorAs(t, err, &depthErr)
}

func TestLoadKafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "sometimes")

	_, err := Load()
	require.Error(t, err)
}
