package domain

import "math"

// metersPerSecondPerMph converts miles per hour to meters per second.
const metersPerSecondPerMph = 0.44704

// FahrenheitToCelsius converts exactly: C = (F - 32) * 5/9.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// MphToMetersPerSecond converts a wind speed from mph to m/s.
func MphToMetersPerSecond(mph float64) float64 {
	return mph * metersPerSecondPerMph
}

// TemperaturePolicy controls how raw Fahrenheit forecast cells are converted
// to Celsius.
type TemperaturePolicy int

const (
	// TruncateWholeDegrees truncates to integer degrees Fahrenheit before
	// converting. The NWS digital tabular feed reports whole degrees, so
	// any fractional part is parsing noise, not signal.
	TruncateWholeDegrees TemperaturePolicy = iota

	// ConvertExact converts the value as parsed, for sources that supply
	// sub-degree precision.
	ConvertExact
)

// Celsius applies the policy to a raw forecast temperature. Missing stays
// missing.
func (p TemperaturePolicy) Celsius(f Value) Value {
	if !f.OK {
		return Missing
	}
	v := f.V
	if p == TruncateWholeDegrees {
		v = math.Trunc(v)
	}
	return Some(FahrenheitToCelsius(v))
}
