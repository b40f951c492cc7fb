// Package route loads multi-leg trips from YAML and drives them through an
// energy model.
package route

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/ev-energy/core/model"
)

// ErrEmptyRoute is returned for a route without legs.
var ErrEmptyRoute = errors.New("route has no legs")

// VehicleDef optionally overrides the configured battery for one route.
// Fields left out of the file stay nil.
type VehicleDef struct {
	ID                 string   `yaml:"id,omitempty"`
	BatteryCapacityKWh *float64 `yaml:"battery_capacity_kwh,omitempty"`
	InitialChargeKWh   *float64 `yaml:"initial_charge_kwh,omitempty"`
}

// LegDef is one stretch of the trip. A leg with desired_speed_kmh is driven
// at the optimal speed for its slope; any other leg is driven as given.
type LegDef struct {
	Name            string  `yaml:"name"`
	InitialSpeedKmh float64 `yaml:"initial_speed_kmh,omitempty"`
	FinalSpeedKmh   float64 `yaml:"final_speed_kmh,omitempty"`
	DesiredSpeedKmh float64 `yaml:"desired_speed_kmh,omitempty"`
	DistanceKm      float64 `yaml:"distance_km"`
	SlopeDeg        float64 `yaml:"slope_deg,omitempty"`
	Terrain         string  `yaml:"terrain,omitempty"`
	Weather         string  `yaml:"weather,omitempty"`
	Curves          string  `yaml:"curves,omitempty"`
	IntenseBraking  bool    `yaml:"intense_braking,omitempty"`
}

// Optimize reports whether the leg asks for a speed recommendation.
func (l LegDef) Optimize() bool { return l.DesiredSpeedKmh > 0 }

// Conditions returns the leg conditions, taking empty categories from def.
func (l LegDef) Conditions(def model.Conditions) model.Conditions {
	c := model.Conditions{
		SlopeDeg: l.SlopeDeg,
		Terrain:  model.ParseTerrain(l.Terrain),
		Weather:  model.ParseWeather(l.Weather),
		Curves:   model.ParseCurveFrequency(l.Curves),
	}
	if c.Terrain == "" {
		c.Terrain = def.Terrain
	}
	if c.Weather == "" {
		c.Weather = def.Weather
	}
	if c.Curves == "" {
		c.Curves = def.Curves
	}
	return c
}

// ToSegment converts a plain leg into a model segment.
func (l LegDef) ToSegment(def model.Conditions) model.Segment {
	return model.Segment{
		InitialSpeedKmh: l.InitialSpeedKmh,
		FinalSpeedKmh:   l.FinalSpeedKmh,
		DistanceKm:      l.DistanceKm,
		Conditions:      l.Conditions(def),
		IntenseBraking:  l.IntenseBraking,
	}
}

func (l LegDef) validate() error {
	if l.DistanceKm < 0 {
		return fmt.Errorf("distance_km must not be negative, got %v", l.DistanceKm)
	}
	if l.InitialSpeedKmh < 0 || l.FinalSpeedKmh < 0 || l.DesiredSpeedKmh < 0 {
		return fmt.Errorf("speeds must not be negative")
	}
	if l.Optimize() && l.FinalSpeedKmh > 0 {
		return fmt.Errorf("desired_speed_kmh and final_speed_kmh are exclusive")
	}
	return nil
}

// Route is a named sequence of legs.
type Route struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Vehicle     VehicleDef `yaml:"vehicle,omitempty"`
	Legs        []LegDef   `yaml:"legs"`
}

// Validate checks every leg.
func (r *Route) Validate() error {
	if len(r.Legs) == 0 {
		return ErrEmptyRoute
	}
	for i, l := range r.Legs {
		if err := l.validate(); err != nil {
			return fmt.Errorf("leg %d (%s): %w", i, l.Name, err)
		}
	}
	return nil
}

// Parse decodes and validates a route document.
func Parse(data []byte) (*Route, error) {
	var r Route
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Load reads the route stored at path.
func Load(path string) (*Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", path, err)
	}
	return r, nil
}
