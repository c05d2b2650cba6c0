// Package domain implements the surface energy-balance model that turns an
// hourly meteorological forecast into heat-flux components and a water
// cooling rate for a well-mixed river parcel.
//
// # Data Source
//
// Hourly forecasts come from the National Weather Service digital tabular
// forecast (forecast.weather.gov MapClick, FcstType=digital). Each fetch
// covers 48 consecutive hours starting at a lead-time offset; the upstream
// adapter fetches the page and hands this package one ForecastWindow of raw
// string cells per offset. Column labels are carried verbatim from the page:
//
//	Temperature (°F), Dewpoint (°F), Wind Chill (°F), Surface Wind (mph),
//	Sky Cover (%), Precipitation Potential (%), Relative Humidity (%), ...
//
// All cells are whole-number strings except non-numeric carry-through columns
// (e.g. wind direction), which coerce to missing during assembly.
//
// # Timezone Handling
//
// The digital page labels its hour row with a timezone abbreviation, e.g.
// "Hour (EST)". Only the ten North American standard/daylight abbreviations
// are supported; see [ResolveTimezone]. The abbreviation is resolved to one
// fixed UTC offset per window, so a window spanning a DST transition keeps
// the offset in effect when it was fetched. This is a known simplification:
// per-row DST correction is deliberately out of scope.
//
// # Unit Conversions
//
// The upstream table reports whole-degree Fahrenheit. Historically the model
// truncated values to integers before converting to Celsius; whether to keep
// that truncation when a more precise source appears is a policy choice, so
// conversion goes through [TemperaturePolicy] rather than being hard-coded.
// Wind speed converts from mph at 0.44704 m/s per mph.
//
// # Sign Convention
//
// Flux components are signed power densities in W/m². Positive net flux
// means net heat gain by the water: downwelling shortwave and longwave and
// sensible heat add, upwelling longwave and latent heat subtract.
//
// # Numeric Anomalies
//
// The flux formulas are pure functions over float64 with no range
// validation; degenerate inputs (zero pressure, negative Kelvin) propagate
// Inf/NaN per IEEE 754. Non-finite values are sanitized to missing when the
// energy table is built, so one bad hourly cell never aborts a multi-day
// series. Missing is a tagged [Value], never a sentinel float.
package domain
