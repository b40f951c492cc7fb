package route

import (
	"errors"
	"fmt"

	"github.com/kilianp07/ev-energy/core/energy"
	"github.com/kilianp07/ev-energy/core/model"
)

// LegResult is the outcome of one driven leg.
type LegResult struct {
	Name        string
	Optimized   bool
	SpeedKmh    float64
	ConsumedKWh float64
	ChargeKWh   float64
	Impossible  bool
}

// Report sums up a driven route.
type Report struct {
	Legs           []LegResult
	TotalKWh       float64
	FinalChargeKWh float64
	Depleted       bool
}

// Run drives every leg of r in order on m. Legs keep being driven after an
// impossible one; the returned error then wraps energy.ErrImpossibleSlope
// once per offending leg.
func Run(m *energy.EnergyModel, r *Route, def model.Conditions) (Report, error) {
	if r == nil || len(r.Legs) == 0 {
		return Report{}, ErrEmptyRoute
	}
	rep := Report{Legs: make([]LegResult, 0, len(r.Legs))}
	var errs []error
	for i, l := range r.Legs {
		res := LegResult{Name: l.Name, Optimized: l.Optimize()}
		if res.Name == "" {
			res.Name = fmt.Sprintf("leg-%d", i+1)
		}
		if res.Optimized {
			c := l.Conditions(def)
			res.SpeedKmh = energy.OptimalSpeed(l.DesiredSpeedKmh, c.SlopeDeg)
			res.ConsumedKWh = m.OptimizeEnergy(l.DesiredSpeedKmh, l.DistanceKm, c)
		} else {
			res.SpeedKmh = l.FinalSpeedKmh
			res.ConsumedKWh = m.Drive(l.ToSegment(def))
		}
		res.ChargeKWh = m.ChargeKWh()
		if err := energy.CheckConsumption(res.ConsumedKWh); err != nil {
			res.Impossible = true
			errs = append(errs, fmt.Errorf("leg %s: %w", res.Name, err))
		} else {
			rep.TotalKWh += res.ConsumedKWh
		}
		rep.Legs = append(rep.Legs, res)
	}
	rep.FinalChargeKWh = m.ChargeKWh()
	rep.Depleted = rep.FinalChargeKWh == 0
	return rep, errors.Join(errs...)
}
