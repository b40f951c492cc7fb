package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/ev-energy/core/metrics"
	"github.com/kilianp07/ev-energy/core/model"
	"github.com/kilianp07/ev-energy/infra/logger"
	"github.com/kilianp07/ev-energy/infra/monitoring"
)

// Config is the top level configuration of the ev-energy CLI.
type Config struct {
	Vehicle  VehicleConfig           `json:"vehicle"`
	Defaults ConditionsConfig        `json:"defaults"`
	Metrics  metrics.Config          `json:"metrics"`
	Logging  logger.Config           `json:"logging"`
	Sentry   monitoring.SentryConfig `json:"sentry"`
	Chart    ChartConfig             `json:"chart"`
}

// VehicleConfig describes the simulated battery.
type VehicleConfig struct {
	ID                 string  `json:"id"`
	BatteryCapacityKWh float64 `json:"battery_capacity_kwh"`
	InitialChargeKWh   float64 `json:"initial_charge_kwh"`
}

// SetDefaults applies sane defaults.
func (c *VehicleConfig) SetDefaults() {
	if c.ID == "" {
		c.ID = "ev"
	}
}

// Validate checks the battery figures.
func (c VehicleConfig) Validate() error {
	if c.BatteryCapacityKWh <= 0 {
		return fmt.Errorf("vehicle: battery_capacity_kwh must be positive, got %v", c.BatteryCapacityKWh)
	}
	if c.InitialChargeKWh < 0 {
		return fmt.Errorf("vehicle: initial_charge_kwh must not be negative, got %v", c.InitialChargeKWh)
	}
	return nil
}

// ConditionsConfig holds the conditions used when a command leaves them out.
type ConditionsConfig struct {
	Terrain string `json:"terrain"`
	Weather string `json:"weather"`
	Curves  string `json:"curves"`
}

// SetDefaults applies sane defaults.
func (c *ConditionsConfig) SetDefaults() {
	if c.Terrain == "" {
		c.Terrain = string(model.TerrainPavement)
	}
	if c.Weather == "" {
		c.Weather = string(model.WeatherSunny)
	}
	if c.Curves == "" {
		c.Curves = string(model.CurvesNone)
	}
}

// Conditions converts the defaults into model conditions on flat ground.
func (c ConditionsConfig) Conditions() model.Conditions {
	return model.Conditions{
		Terrain: model.ParseTerrain(c.Terrain),
		Weather: model.ParseWeather(c.Weather),
		Curves:  model.ParseCurveFrequency(c.Curves),
	}
}

// ChartConfig selects where consumption curves are written.
type ChartConfig struct {
	Output string `json:"output"`
	// Format is one of html, csv, json.
	Format string `json:"format"`
}

// SetDefaults applies sane defaults.
func (c *ChartConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "html"
	}
	if c.Output == "" {
		c.Output = "consumption." + c.Format
	}
}

// Validate checks the output format.
func (c ChartConfig) Validate() error {
	switch c.Format {
	case "html", "csv", "json":
		return nil
	default:
		return fmt.Errorf("chart: unknown format %s", c.Format)
	}
}

// Default returns the configuration used when no file is given: a 75 kWh
// battery holding 50 kWh, no metrics sink and info logs.
func Default() *Config {
	cfg := &Config{
		Vehicle: VehicleConfig{BatteryCapacityKWh: 75, InitialChargeKWh: 50},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	c.Vehicle.SetDefaults()
	c.Defaults.SetDefaults()
	c.Logging.SetDefaults()
	c.Chart.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	return errors.Join(
		c.Vehicle.Validate(),
		c.Logging.Validate(),
		c.Chart.Validate(),
	)
}

// Load reads path, applies K_ prefixed environment overrides and fills the
// values left out with those of Default. K_VEHICLE__INITIAL_CHARGE_KWH=20
// overrides vehicle.initial_charge_kwh.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	cfg := &Config{
		Vehicle: VehicleConfig{BatteryCapacityKWh: 75, InitialChargeKWh: 50},
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
