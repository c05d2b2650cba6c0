package domain

import (
	"fmt"
	"sort"
	"time"
)

// Column labels as they appear in the NWS digital forecast table. Columns
// not named here (wind direction, precipitation flags, ...) are carried
// through assembly unmodified.
const (
	ColTemperature      = "Temperature (°F)"
	ColDewpoint         = "Dewpoint (°F)"
	ColWindChill        = "Wind Chill (°F)"
	ColSurfaceWind      = "Surface Wind (mph)"
	ColSkyCover         = "Sky Cover (%)"
	ColPrecipPotential  = "Precipitation Potential (%)"
	ColRelativeHumidity = "Relative Humidity (%)"
)

// ForecastRecord is one raw hourly row of a fetched window. Cells hold the
// unparsed strings from the upstream table, keyed by column label.
type ForecastRecord struct {
	Time  time.Time
	Cells map[string]string
}

// ForecastWindow is one 48-hour fetch at a lead-time offset, localized to a
// single fixed UTC offset.
type ForecastWindow struct {
	LeadHours int
	TZ        *time.Location
	Records   []ForecastRecord
}

// ForecastSeries is the assembled hourly series: unique tz-aware timestamps
// in strictly ascending order, every column coerced to numeric Values. Gaps
// in the upstream data are tolerated but never invented.
type ForecastSeries struct {
	Times   []time.Time
	Columns map[string][]Value
}

// Len returns the number of hourly rows.
func (s *ForecastSeries) Len() int { return len(s.Times) }

// Column returns the named column, or nil if the upstream table never
// reported it.
func (s *ForecastSeries) Column(name string) []Value { return s.Columns[name] }

// AssembleSeries stitches overlapping forecast windows into one continuous
// series. Windows are concatenated in input order and duplicate timestamps
// are dropped keeping the first occurrence, so earlier windows take
// precedence over later overlapping ones. The tie-break depends only on the
// order of the windows slice, never on fetch completion order. Every cell is
// then coerced to numeric; unparsable cells become missing.
func AssembleSeries(windows []ForecastWindow) (*ForecastSeries, error) {
	if len(windows) == 0 {
		return nil, fmt.Errorf("assemble series: no forecast windows")
	}

	type row struct {
		t     time.Time
		cells map[string]string
	}

	var (
		rows    []row
		seen    = make(map[int64]bool)
		columns []string
		haveCol = make(map[string]bool)
	)

	for _, w := range windows {
		for _, rec := range w.Records {
			for label := range rec.Cells {
				if !haveCol[label] {
					haveCol[label] = true
					columns = append(columns, label)
				}
			}
			key := rec.Time.Unix()
			if seen[key] {
				continue
			}
			seen[key] = true
			rows = append(rows, row{t: rec.Time, cells: rec.Cells})
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("assemble series: windows contain no records")
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].t.Before(rows[j].t) })
	sort.Strings(columns)

	s := &ForecastSeries{
		Times:   make([]time.Time, len(rows)),
		Columns: make(map[string][]Value, len(columns)),
	}
	for _, label := range columns {
		s.Columns[label] = make([]Value, len(rows))
	}
	for i, r := range rows {
		s.Times[i] = r.t
		for _, label := range columns {
			s.Columns[label][i] = ParseValue(r.cells[label])
		}
	}
	return s, nil
}
