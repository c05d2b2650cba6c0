package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)
	result := &domain.ForecastResult{
		Location: domain.Location{
			Name: "Philadelphia, PA - Baxter Water Intake",
			Lat:  40.039661,
			Lon:  -74.992145,
		},
		GeneratedAt: now,
		WaterTemp:   domain.WaterTempReading{TempC: 1.5, Station: "Little Rapids"},
		DepthM:      2.0,
	}

	msg, err := serializeToMessage(result)
	require.NoError(t, err)

	assert.Equal(t, []byte("40.039661,-74.992145"), msg.Key)
	assert.Contains(t, string(msg.Value), `"depth_m":2`)
	assert.Contains(t, string(msg.Value), `"station":"Little Rapids"`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "location", msg.Headers[0].Key)
	assert.Equal(t, []byte("Philadelphia, PA - Baxter Water Intake"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2025-01-10T15:00:00Z"), msg.Headers[1].Value)
}
