package domain

import (
	"fmt"
	"time"
)

// FluxSample holds the signed flux components for one timestamp, W/m².
// Positive net flux means net heat gain by the water.
type FluxSample struct {
	Shortwave     Value `json:"q_sw"`
	DownwellingLW Value `json:"q_atm"`
	UpwellingLW   Value `json:"q_b"`
	Latent        Value `json:"q_l"`
	Sensible      Value `json:"q_h"`
	Net           Value `json:"q_net"`
}

// NetFlux combines the components with the fixed sign convention: upwelling
// longwave and latent heat are losses.
func NetFlux(qSW, qAtm, qB, qL, qH float64) float64 {
	return qSW + qAtm - qB + qH - qL
}

// FluxInputs are the per-run scalar parameters of the flux model.
type FluxInputs struct {
	WaterTempC float64
	Albedo     float64
	PressureMB float64
	Wind       WindFunctionParams
	TempPolicy TemperaturePolicy
}

// ComputeFluxes runs the bulk energy-balance model over an assembled series
// and index-aligned clear-sky irradiance. Each component is computed for
// every row whose inputs are present; rows with a missing required cell
// yield a missing component, and the net flux is present only when all five
// components are.
func ComputeFluxes(series *ForecastSeries, ghi []float64, in FluxInputs) ([]FluxSample, error) {
	if len(ghi) != series.Len() {
		return nil, fmt.Errorf("compute fluxes: %d irradiance samples for %d forecast rows", len(ghi), series.Len())
	}

	var (
		temps = series.Column(ColTemperature)
		dews  = series.Column(ColDewpoint)
		winds = series.Column(ColSurfaceWind)
		skies = series.Column(ColSkyCover)
	)

	samples := make([]FluxSample, series.Len())
	for i := range samples {
		var (
			airC  = in.TempPolicy.Celsius(at(temps, i))
			dewC  = in.TempPolicy.Celsius(at(dews, i))
			wind  = at(winds, i)
			cloud = at(skies, i)
		)

		var s FluxSample
		if cloud.OK {
			cl := cloud.V / 100
			s.Shortwave = Some(Shortwave(ghi[i], in.Albedo, cl))
			if airC.OK {
				s.DownwellingLW = Some(DownwellingLongwave(airC.V, cl))
			}
		}
		s.UpwellingLW = Some(UpwellingLongwave(in.WaterTempC))
		if wind.OK {
			fU := in.Wind.Eval(MphToMetersPerSecond(wind.V))
			if dewC.OK {
				ea := VaporPressure(dewC.V)
				s.Latent = Some(LatentHeat(in.PressureMB, in.WaterTempC, ea, fU))
			}
			if airC.OK {
				s.Sensible = Some(SensibleHeat(airC.V, fU, in.WaterTempC))
			}
		}
		if s.Shortwave.OK && s.DownwellingLW.OK && s.UpwellingLW.OK && s.Latent.OK && s.Sensible.OK {
			s.Net = Some(NetFlux(s.Shortwave.V, s.DownwellingLW.V, s.UpwellingLW.V, s.Latent.V, s.Sensible.V))
		}
		samples[i] = s
	}
	return samples, nil
}

// at indexes a column that may be absent entirely.
func at(col []Value, i int) Value {
	if col == nil {
		return Missing
	}
	return col[i]
}

// EnergyRow is one labeled row of the decomposed flux table. Upwelling
// longwave and latent heat appear negated so the net flux is the plain row
// sum of the five components.
type EnergyRow struct {
	DownwellingSW Value `json:"downwelling_sw"`
	DownwellingLW Value `json:"downwelling_lw"`
	UpwellingLW   Value `json:"upwelling_lw"`
	SensibleHeat  Value `json:"sensible_heat"`
	LatentHeat    Value `json:"latent_heat"`
	NetFlux       Value `json:"net_flux"`
}

// EnergyTable is the per-timestamp decomposition of the surface energy
// balance, W/m².
type EnergyTable struct {
	Times []time.Time `json:"times"`
	Rows  []EnergyRow `json:"rows"`
}

// NetFluxColumn extracts the net-flux column.
func (t *EnergyTable) NetFluxColumn() []Value {
	out := make([]Value, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.NetFlux
	}
	return out
}

// BuildEnergyTable assembles the labeled component table from flux samples.
// The net flux is recomputed as the row sum, independently of
// FluxSample.Net; the two must agree within floating-point tolerance.
// Non-finite components are sanitized to missing here, at the boundary, so a
// degenerate hourly cell becomes a gap instead of poisoning the series.
func BuildEnergyTable(times []time.Time, samples []FluxSample) (*EnergyTable, error) {
	if len(times) != len(samples) {
		return nil, fmt.Errorf("build energy table: %d timestamps for %d samples", len(times), len(samples))
	}

	t := &EnergyTable{
		Times: append([]time.Time(nil), times...),
		Rows:  make([]EnergyRow, len(samples)),
	}
	for i, s := range samples {
		row := EnergyRow{
			DownwellingSW: s.Shortwave.Sanitize(),
			DownwellingLW: s.DownwellingLW.Sanitize(),
			UpwellingLW:   negate(s.UpwellingLW.Sanitize()),
			SensibleHeat:  s.Sensible.Sanitize(),
			LatentHeat:    negate(s.Latent.Sanitize()),
		}
		if row.DownwellingSW.OK && row.DownwellingLW.OK && row.UpwellingLW.OK && row.SensibleHeat.OK && row.LatentHeat.OK {
			sum := row.DownwellingSW.V + row.DownwellingLW.V + row.UpwellingLW.V + row.SensibleHeat.V + row.LatentHeat.V
			row.NetFlux = Some(sum).Sanitize()
		}
		t.Rows[i] = row
	}
	return t, nil
}

func negate(v Value) Value {
	if !v.OK {
		return Missing
	}
	return Some(-v.V)
}
