package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEST = time.FixedZone("EST", -5*3600)

func windowAt(lead int, start time.Time, hours int, temp string) ForecastWindow {
	w := ForecastWindow{LeadHours: lead, TZ: testEST}
	for i := 0; i < hours; i++ {
		w.Records = append(w.Records, ForecastRecord{
			Time: start.Add(time.Duration(i) * time.Hour),
			Cells: map[string]string{
				ColTemperature: temp,
				ColSkyCover:    "50",
			},
		})
	}
	return w
}

func TestAssembleSeries(t *testing.T) {
	start := time.Date(2025, 1, 10, 6, 0, 0, 0, testEST)

	t.Run("overlap keeps the first window's values", func(t *testing.T) {
		// Window A covers hours 0-3 reporting 30°F, window B covers hours
		// 2-5 reporting 10°F. The shared timestamps must keep 30.
		a := windowAt(0, start, 4, "30")
		b := windowAt(48, start.Add(2*time.Hour), 4, "10")

		s, err := AssembleSeries([]ForecastWindow{a, b})
		require.NoError(t, err)
		require.Equal(t, 6, s.Len())

		temps := s.Column(ColTemperature)
		assert.Equal(t, Some(30), temps[2], "overlap hour 2")
		assert.Equal(t, Some(30), temps[3], "overlap hour 3")
		assert.Equal(t, Some(10), temps[4])
		assert.Equal(t, Some(10), temps[5])
	})

	t.Run("window list order decides precedence, not timestamps", func(t *testing.T) {
		a := windowAt(0, start, 2, "30")
		b := windowAt(48, start, 2, "10")

		s, err := AssembleSeries([]ForecastWindow{b, a})
		require.NoError(t, err)
		assert.Equal(t, Some(10), s.Column(ColTemperature)[0])
	})

	t.Run("timestamps are unique and strictly ascending", func(t *testing.T) {
		a := windowAt(0, start, 4, "30")
		b := windowAt(48, start.Add(2*time.Hour), 4, "10")

		s, err := AssembleSeries([]ForecastWindow{a, b})
		require.NoError(t, err)

		for i := 1; i < s.Len(); i++ {
			assert.True(t, s.Times[i].After(s.Times[i-1]), "index %d", i)
		}
	})

	t.Run("gaps are tolerated but not invented", func(t *testing.T) {
		a := windowAt(0, start, 2, "30")
		b := windowAt(48, start.Add(5*time.Hour), 2, "10")

		s, err := AssembleSeries([]ForecastWindow{a, b})
		require.NoError(t, err)
		require.Equal(t, 4, s.Len())
		assert.Equal(t, 4*time.Hour, s.Times[2].Sub(s.Times[1]), "gap preserved")
	})

	t.Run("unparsable cells coerce to missing", func(t *testing.T) {
		w := ForecastWindow{LeadHours: 0, TZ: testEST, Records: []ForecastRecord{
			{Time: start, Cells: map[string]string{
				ColTemperature: "28",
				"Wind Dir":     "NW",
				ColSkyCover:    "",
			}},
		}}

		s, err := AssembleSeries([]ForecastWindow{w})
		require.NoError(t, err)
		assert.Equal(t, Some(28), s.Column(ColTemperature)[0])
		assert.Equal(t, Missing, s.Column("Wind Dir")[0])
		assert.Equal(t, Missing, s.Column(ColSkyCover)[0])
	})

	t.Run("column missing from one window backfills as missing", func(t *testing.T) {
		a := ForecastWindow{TZ: testEST, Records: []ForecastRecord{
			{Time: start, Cells: map[string]string{ColTemperature: "28"}},
		}}
		b := ForecastWindow{TZ: testEST, Records: []ForecastRecord{
			{Time: start.Add(time.Hour), Cells: map[string]string{
				ColTemperature: "27",
				ColSurfaceWind: "5",
			}},
		}}

		s, err := AssembleSeries([]ForecastWindow{a, b})
		require.NoError(t, err)

		wind := s.Column(ColSurfaceWind)
		require.Len(t, wind, 2)
		assert.Equal(t, Missing, wind[0])
		assert.Equal(t, Some(5), wind[1])
	})

	t.Run("no windows is an error", func(t *testing.T) {
		_, err := AssembleSeries(nil)
		require.Error(t, err)
	})

	t.Run("empty windows are an error", func(t *testing.T) {
		_, err := AssembleSeries([]ForecastWindow{{TZ: testEST}})
		require.Error(t, err)
	})
}
