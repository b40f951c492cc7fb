// Package app wires the configuration into a ready to drive energy model.
package app

import (
	"fmt"

	"github.com/kilianp07/ev-energy/config"
	"github.com/kilianp07/ev-energy/core/energy"
	coremetrics "github.com/kilianp07/ev-energy/core/metrics"
	"github.com/kilianp07/ev-energy/core/model"
	"github.com/kilianp07/ev-energy/infra/logger"
	// Registers the built-in metrics sinks.
	_ "github.com/kilianp07/ev-energy/infra/metrics"
)

// Service owns the energy model of one vehicle and the metrics sinks its
// driven segments are reported to.
type Service struct {
	Model    *energy.EnergyModel
	Defaults model.Conditions
	sink     coremetrics.MetricsSink
	log      logger.Logger
}

// Override replaces parts of the configured vehicle. Empty and nil fields
// keep the configured value; a zero charge is a valid override.
type Override struct {
	VehicleID          string
	BatteryCapacityKWh *float64
	InitialChargeKWh   *float64
}

// New creates a Service from the configuration.
func New(cfg *config.Config, ov Override, opts ...energy.Option) (*Service, error) {
	logg := logger.New("service")
	v := cfg.Vehicle
	if ov.VehicleID != "" {
		v.ID = ov.VehicleID
	}
	if ov.BatteryCapacityKWh != nil {
		v.BatteryCapacityKWh = *ov.BatteryCapacityKWh
	}
	if ov.InitialChargeKWh != nil {
		v.InitialChargeKWh = *ov.InitialChargeKWh
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	base := []energy.Option{
		energy.WithVehicleID(v.ID),
		energy.WithLogger(logger.New("energy")),
		energy.WithSink(sink),
	}
	m := energy.New(v.BatteryCapacityKWh, v.InitialChargeKWh, append(base, opts...)...)
	logg.Debugw("vehicle ready", map[string]any{
		"vehicle_id":   v.ID,
		"capacity_kwh": v.BatteryCapacityKWh,
		"charge_kwh":   v.InitialChargeKWh,
		"sinks":        len(cfg.Metrics.Sinks),
	})
	return &Service{Model: m, Defaults: cfg.Defaults.Conditions(), sink: sink, log: logg}, nil
}

// Conditions fills the empty categories of c with the configured defaults.
func (s *Service) Conditions(c model.Conditions) model.Conditions {
	if c.Terrain == "" {
		c.Terrain = s.Defaults.Terrain
	}
	if c.Weather == "" {
		c.Weather = s.Defaults.Weather
	}
	if c.Curves == "" {
		c.Curves = s.Defaults.Curves
	}
	return c
}

// Close flushes and releases the metrics sinks.
func (s *Service) Close() error {
	if err := coremetrics.Close(s.sink); err != nil {
		s.log.Errorf("metrics close: %v", err)
		return fmt.Errorf("close metrics sinks: %w", err)
	}
	return nil
}
