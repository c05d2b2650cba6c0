package domain

import "math"

const (
	waterDensity    = 1000.0 // kg/m³
	airSpecificHeat = 1006.0 // J/(kg·K)
)

// WindFunctionParams hold the coefficients of the empirical wind function
// f(U) = R · (a + b·Uᶜ) that scales turbulent exchange with wind speed.
type WindFunctionParams struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	R float64 `json:"r"`
}

// DefaultWindFunction is a near-linear low-exchange parameterization suited
// to sheltered river reaches.
var DefaultWindFunction = WindFunctionParams{A: 1e-6, B: 1e-6, C: 1, R: 1}

// Eval evaluates the wind function at wind speed U in m/s.
func (p WindFunctionParams) Eval(windMS float64) float64 {
	return p.R * (p.A + p.B*math.Pow(windMS, p.C))
}

// VaporPressure computes air vapor pressure from dewpoint in °C using the
// Magnus-style fit e_a = 6.11 · 10^(7.5·T / (237.3 + T)). The units are
// hPa-ish, consistent with the constants downstream; the empirical fit is
// deliberately not re-derived in SI.
func VaporPressure(dewpointC float64) float64 {
	return 6.11 * math.Pow(10, 7.5*dewpointC/(237.3+dewpointC))
}

// satVaporPoly are the coefficients, lowest order first, of the 6th-order
// polynomial fit for saturation vapor pressure over water as a function of
// surface temperature in Kelvin. Empirical regression over the liquid-water
// temperature range; kept as a named table so it can be tested in isolation.
var satVaporPoly = [7]float64{
	6984.505294,
	-188.903931,
	2.133357675,
	-1.28858097e-2,
	4.393587233e-5,
	-8.023923082e-8,
	6.136820929e-11,
}

// SaturationVaporPressure evaluates the polynomial at the water-surface
// Kelvin temperature, in Horner form.
func SaturationVaporPressure(waterTempC float64) float64 {
	twk := waterTempC + kelvinOffset
	es := satVaporPoly[6]
	for i := 5; i >= 0; i-- {
		es = es*twk + satVaporPoly[i]
	}
	return es
}

// LatentHeatOfVaporization is the temperature-dependent latent heat of
// vaporization of water: Lv(T) = 2.500e6 − 2.386e3·T, J/kg.
func LatentHeatOfVaporization(waterTempC float64) float64 {
	return 2.500e6 - 2.386e3*waterTempC
}

// LatentHeat computes evaporative heat loss from the water surface.
// pressureMB is station pressure in millibar; a zero pressure propagates
// ±Inf per floating-point division rules and is sanitized downstream at the
// aggregation boundary.
func LatentHeat(pressureMB, waterTempC, vaporPressure, windFn float64) float64 {
	lv := LatentHeatOfVaporization(waterTempC)
	es := SaturationVaporPressure(waterTempC)
	return 0.622 / pressureMB * lv * waterDensity * (es - vaporPressure) * windFn
}

// SensibleHeat computes convective heat exchange driven by the air–water
// temperature gradient. Positive when the air is warmer than the water.
func SensibleHeat(airTempC, windFn, waterTempC float64) float64 {
	return airSpecificHeat * waterDensity * (airTempC - waterTempC) * windFn
}
