// Package clearsky estimates clear-sky global horizontal irradiance with the
// Bras (1990) atmospheric attenuation model. The hourly forecast feed carries
// no irradiance, so the pipeline derives potential shortwave from solar
// geometry and scales it by forecast cloud cover downstream.
package clearsky

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/wyattreis/philly-ice-forecast/internal/domain"
)

const (
	solarConstant = 1367.0 // W/m²

	// Barometric formula constants, used to scale optical air mass for
	// station elevation.
	seaLevelPressureKPa = 101.325
	gravity             = 9.80665
	gasConstantAir      = 8.314472 / 0.028967
	standardTempK       = 288.15
)

// Model computes clear-sky GHI for a location. Turbidity is the Bras nfac
// parameter: 2 is a clear atmosphere, 4-5 is smoggy.
type Model struct {
	Turbidity float64
}

// DefaultTurbidity suits the mid-Atlantic river sites this service targets.
const DefaultTurbidity = 2.0

// New returns a Model with the default turbidity.
func New() *Model {
	return &Model{Turbidity: DefaultTurbidity}
}

var _ domain.ClearSkyModel = (*Model)(nil)

// GHI returns the clear-sky global horizontal irradiance in W/m² for each
// timestamp. Night hours are zero. The model is pure geometry and never
// fails; the error satisfies domain.ClearSkyModel.
func (m *Model) GHI(loc domain.Location, times []time.Time) ([]float64, error) {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = m.irradiance(loc, t)
	}
	return out, nil
}

func (m *Model) irradiance(loc domain.Location, t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	T := (jd - 2451545.0) / 36525.0

	meanLong := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	meanAnom := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	ecc := 0.016708634 - T*(0.000042037+T*0.0000001267)

	center := math.Sin(rad(meanAnom))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(rad(2*meanAnom))*(0.019993-T*0.000101) +
		math.Sin(rad(3*meanAnom))*0.000289
	sunLong := meanLong + center
	node := 125.04 - 1934.136*T
	apparentLong := sunLong - 0.00569 - 0.00478*math.Sin(rad(node))
	obliquity := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	declination := math.Asin(math.Sin(rad(obliquity)) * math.Sin(rad(apparentLong)))

	y := math.Tan(rad(obliquity) / 2)
	y *= y
	eqTimeMin := deg(y*math.Sin(rad(2*meanLong))-
		2*ecc*math.Sin(rad(meanAnom))+
		4*ecc*y*math.Sin(rad(meanAnom))*math.Cos(rad(2*meanLong))-
		0.5*y*y*math.Sin(rad(4*meanLong))-
		1.25*ecc*ecc*math.Sin(rad(2*meanAnom))) * 4

	utc := t.UTC()
	utcMin := float64(utc.Hour()*60+utc.Minute()) + float64(utc.Second())/60.0
	trueSolarMin := utcMin + 4*loc.Lon + eqTimeMin
	hourAngle := rad(trueSolarMin/4 - 180)

	latRad := rad(loc.Lat)
	cosZen := math.Sin(latRad)*math.Sin(declination) +
		math.Cos(latRad)*math.Cos(declination)*math.Cos(hourAngle)
	elevationDeg := 90 - deg(math.Acos(cosZen)) + 0.5667
	if elevationDeg <= 0 {
		return 0
	}

	// Sun-Earth distance in AU for the inverse-square correction.
	anomRad := rad(meanAnom)
	eccAnom := anomRad + ecc*math.Sin(anomRad)*(1+ecc*math.Cos(anomRad))
	trueAnom := 2 * math.Atan(math.Sqrt((1+ecc)/(1-ecc))*math.Tan(eccAnom/2))
	r := (1 - ecc*ecc) / (1 + ecc*math.Cos(trueAnom))

	extraterrestrial := cosZen * solarConstant / (r * r)

	// Kasten-Young relative air mass, scaled by station pressure so high
	// sites attenuate less.
	airMass := 1.0 / (cosZen + 0.15*math.Pow(elevationDeg+3.885, -1.253))
	airMass *= pressureRatio(loc.Elevation)

	a1 := 0.128 - 0.054*math.Log10(airMass)
	ghi := extraterrestrial * math.Exp(-m.Turbidity*a1*airMass)
	if ghi < 0 {
		return 0
	}
	return ghi
}

// pressureRatio returns station pressure over sea-level pressure for an
// elevation in meters, per the isothermal barometric formula.
func pressureRatio(elevationM float64) float64 {
	p := seaLevelPressureKPa * math.Exp(-elevationM*gravity/(gasConstantAir*standardTempK))
	return p / seaLevelPressureKPa
}

func rad(d float64) float64 { return d * math.Pi / 180 }
func deg(r float64) float64 { return r * 180 / math.Pi }

func fixAngle(a float64) float64 { return a - 360*math.Floor(a/360) }
