package energy

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/ev-energy/core/model"
)

// Series holds consumption readings against final speed, in input order.
type Series struct {
	Conditions     model.Conditions
	Speeds         []float64
	ConsumptionKWh []float64
}

// Summary aggregates a Series.
type Summary struct {
	MinKWh  float64 `json:"min_kwh"`
	MaxKWh  float64 `json:"max_kwh"`
	MeanKWh float64 `json:"mean_kwh"`
}

// Curve computes the consumption of each (initial, final, distance) triple
// under c, without intense braking. The three slices must have the same
// length.
func (m *EnergyModel) Curve(initial, final, distances []float64, c model.Conditions) (Series, error) {
	if len(initial) != len(final) || len(final) != len(distances) {
		return Series{}, fmt.Errorf("curve (%d initial, %d final, %d distances): %w",
			len(initial), len(final), len(distances), ErrLengthMismatch)
	}
	s := Series{
		Conditions:     c,
		Speeds:         make([]float64, len(final)),
		ConsumptionKWh: make([]float64, len(final)),
	}
	copy(s.Speeds, final)
	for i := range final {
		seg := model.Segment{
			InitialSpeedKmh: initial[i],
			FinalSpeedKmh:   final[i],
			DistanceKm:      distances[i],
			Conditions:      c,
		}
		s.ConsumptionKWh[i] = m.ComputeConsumption(seg)
	}
	return s, nil
}

// SpeedSweep returns n speeds evenly spaced between lo and hi inclusive.
// n below 2 yields just lo.
func SpeedSweep(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Summary returns the extremes and the mean of the readings. An empty
// series yields a zero Summary.
func (s Series) Summary() Summary {
	if len(s.ConsumptionKWh) == 0 {
		return Summary{}
	}
	return Summary{
		MinKWh:  floats.Min(s.ConsumptionKWh),
		MaxKWh:  floats.Max(s.ConsumptionKWh),
		MeanKWh: stat.Mean(s.ConsumptionKWh, nil),
	}
}

// Label describes the conditions of the series, e.g. "pavement, light_rain".
func (s Series) Label() string {
	terrain := s.Conditions.Terrain
	if terrain == "" {
		terrain = model.TerrainPavement
	}
	weather := s.Conditions.Weather
	if weather == "" {
		weather = model.WeatherSunny
	}
	return fmt.Sprintf("%s, %s", terrain, weather)
}
