package domain

// waterSpecificHeat is the specific heat capacity of water, J/(kg·K).
const waterSpecificHeat = 4182.0

// DefaultDepth is the characteristic mixing depth assumed when the caller
// does not supply one, meters.
const DefaultDepth = 2.0

// CoolingRate converts a net surface flux into a temperature rate of change
// for a well-mixed parcel of characteristic depth d meters. The result is
// °C per minute; the factor 60 converts the per-second physical rate.
func CoolingRate(qNet, d float64) (float64, error) {
	if d <= 0 {
		return 0, &InvalidDepthError{Depth: d}
	}
	return qNet / (waterDensity * waterSpecificHeat * d) * 60, nil
}

// CoolingRateSeries maps CoolingRate over a net-flux column. Missing fluxes
// yield missing rates. The depth is validated once up front.
func CoolingRateSeries(net []Value, d float64) ([]Value, error) {
	if d <= 0 {
		return nil, &InvalidDepthError{Depth: d}
	}
	out := make([]Value, len(net))
	for i, q := range net {
		if !q.OK {
			continue
		}
		r, err := CoolingRate(q.V, d)
		if err != nil {
			return nil, err
		}
		out[i] = Some(r)
	}
	return out, nil
}

// ParcelCooling projects the parcel temperature forward by integrating the
// cooling-rate series hour by hour from the observed water temperature.
// Hours with a missing rate contribute no change, so the projection holds
// steady across gaps instead of going missing itself.
func ParcelCooling(rates []Value, startTempC float64) []Value {
	const minutesPerStep = 60.0

	out := make([]Value, len(rates))
	t := startTempC
	for i, r := range rates {
		if r.OK {
			t += r.V * minutesPerStep
		}
		out[i] = Some(t)
	}
	return out
}
