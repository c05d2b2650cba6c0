package domain

import "math"

// StefanBoltzmann is the Stefan–Boltzmann constant (W·m⁻²·K⁻⁴).
const StefanBoltzmann = 5.670374419e-8

// DefaultAlbedo is the shortwave reflectivity of the water surface, after
// Maidment et al. (1996), Handbook of Hydrology.
const DefaultAlbedo = 0.15

const (
	kelvinOffset    = 273.15
	waterEmissivity = 0.97
)

// Shortwave attenuates clear-sky global horizontal irradiance for surface
// albedo and cloud cover: q_sw = ghi · (1 − R) · (1 − 0.65·Cl²). cloudFrac
// is sky cover normalized to [0, 1]; inputs outside the physical range
// produce out-of-range output, not an error.
func Shortwave(ghi, albedo, cloudFrac float64) float64 {
	return ghi * (1 - albedo) * (1 - 0.65*cloudFrac*cloudFrac)
}

// DownwellingLongwave computes atmospheric longwave radiation reaching the
// water surface. Atmospheric emissivity grows with air temperature and cloud
// cover: ε = 0.937e-5 · (1 + 0.17·Cl²) · Tk².
func DownwellingLongwave(airTempC, cloudFrac float64) float64 {
	tk := airTempC + kelvinOffset
	emissivity := 0.937e-5 * (1 + 0.17*cloudFrac*cloudFrac) * tk * tk
	return emissivity * StefanBoltzmann * math.Pow(tk, 4)
}

// UpwellingLongwave computes blackbody-like emission from the water surface
// at fixed emissivity 0.97.
func UpwellingLongwave(waterTempC float64) float64 {
	twk := waterTempC + kelvinOffset
	return waterEmissivity * StefanBoltzmann * math.Pow(twk, 4)
}
