package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/ev-energy/core/model"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `vehicle:
  id: "ev-7"
  battery_capacity_kwh: 60
  initial_charge_kwh: 42.5
defaults:
  terrain: "gravel"
  weather: "light rain"
metrics:
  sinks:
    - type: "nop"
    - type: "prometheus"
      conf:
        push_url: "http://pushgateway:9091"
logging:
  level: "debug"
sentry:
  dsn: ""
  environment: "dev"
chart:
  format: "csv"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"vehicle.id", cfg.Vehicle.ID, "ev-7"},
		{"capacity", cfg.Vehicle.BatteryCapacityKWh, 60.0},
		{"charge", cfg.Vehicle.InitialChargeKWh, 42.5},
		{"terrain", cfg.Defaults.Conditions().Terrain, model.TerrainGravel},
		{"weather", cfg.Defaults.Conditions().Weather, model.WeatherLightRain},
		{"curves", cfg.Defaults.Conditions().Curves, model.CurvesNone},
		{"sinks", len(cfg.Metrics.Sinks), 2},
		{"sink type", cfg.Metrics.Sinks[1].Type, "prometheus"},
		{"log level", cfg.Logging.Level, "debug"},
		{"log format", cfg.Logging.Format, "json"},
		{"sentry env", cfg.Sentry.Environment, "dev"},
		{"chart format", cfg.Chart.Format, "csv"},
		{"chart output", cfg.Chart.Output, "consumption.csv"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "config.json", `{"vehicle": {"battery_capacity_kwh": 80}}`)
	t.Setenv("K_VEHICLE__INITIAL_CHARGE_KWH", "20")
	t.Setenv("K_LOGGING__LEVEL", "warn")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Vehicle.BatteryCapacityKWh != 80 {
		t.Fatalf("capacity %v", cfg.Vehicle.BatteryCapacityKWh)
	}
	if cfg.Vehicle.InitialChargeKWh != 20 {
		t.Fatalf("env override ignored: %v", cfg.Vehicle.InitialChargeKWh)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("logging level override ignored: %v", cfg.Logging.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad.toml":    "",
		"neg.yaml":    "vehicle:\n  battery_capacity_kwh: -1\n",
		"format.yaml": "chart:\n  format: svg\n",
		"loglvl.yaml": "logging:\n  level: loud\n",
		"charge.yaml": "vehicle:\n  initial_charge_kwh: -3\n",
	}
	for name, data := range cases {
		if _, err := Load(writeConfig(t, name, data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Vehicle.BatteryCapacityKWh != 75 || cfg.Vehicle.InitialChargeKWh != 50 {
		t.Fatalf("unexpected battery %+v", cfg.Vehicle)
	}
	if cfg.Defaults.Conditions() != (model.Conditions{Terrain: model.TerrainPavement, Weather: model.WeatherSunny, Curves: model.CurvesNone}) {
		t.Fatalf("unexpected defaults %+v", cfg.Defaults)
	}
}
