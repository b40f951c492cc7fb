package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/ev-energy/core/energy"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root, c := newRootCmd()
	t.Cleanup(c.close)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDrive(t *testing.T) {
	out, err := run(t, "drive", "--initial", "60", "--final", "100", "--distance", "10",
		"--slope", "5", "--weather", "light rain", "--curves", "moderate", "--intense-braking")
	require.NoError(t, err)
	assert.Equal(t, "Energy consumed: 7.18 kWh\nCurrent battery charge: 42.82 kWh\n", out)
}

func TestDrive_ImpossibleSlope(t *testing.T) {
	out, err := run(t, "drive", "--initial", "20", "--final", "20", "--distance", "1", "--slope", "90")
	assert.True(t, errors.Is(err, energy.ErrImpossibleSlope))
	assert.Contains(t, out, "Current battery charge: 0.00 kWh")
}

func TestOptimize(t *testing.T) {
	out, err := run(t, "optimize", "--speed", "90", "--distance", "20", "--weather", "headwind", "--curves", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Optimal speed: 70 km/h\n")
	assert.Contains(t, out, "Energy consumed: 14.70 kWh\n")
	assert.Contains(t, out, "Current battery charge: 35.30 kWh\n")
}

func TestCurve_CSVToStdout(t *testing.T) {
	out, err := run(t, "curve", "--final", "50,100", "--distance", "1,1", "--format", "csv", "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, "final_speed_kmh,consumption_kwh\n50,0.6\n100,0.7\n", out)
}

func TestCurve_SweepToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.json")
	out, err := run(t, "curve", "--from", "40", "--to", "120", "--steps", "5", "--format", "json", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "pavement, sunny: min")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(data), "final_speed_kmh"))
}

func TestCurve_LengthMismatch(t *testing.T) {
	_, err := run(t, "curve", "--final", "50,60", "--distance", "1", "-o", "-")
	assert.True(t, errors.Is(err, energy.ErrLengthMismatch))
}

func TestRoute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.yaml")
	doc := `name: trip
vehicle:
  battery_capacity_kwh: 60
  initial_charge_kwh: 30
legs:
  - name: town
    initial_speed_kmh: 30
    final_speed_kmh: 50
    distance_km: 5
  - name: pass
    desired_speed_kmh: 100
    distance_km: 8
    slope_deg: 7
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	out, err := run(t, "route", path)
	require.NoError(t, err)
	assert.Contains(t, out, "town")
	assert.Contains(t, out, "optimize")
	assert.Contains(t, out, "Total consumed:")
}

func TestRoute_EmptyBattery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	doc := "vehicle:\n  initial_charge_kwh: 0\nlegs:\n  - name: flat\n    final_speed_kmh: 50\n    distance_km: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	out, err := run(t, "route", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Battery depleted")
	assert.Contains(t, out, "Current battery charge: 0.00 kWh")
}

type fakeRenderer struct{ calls int }

func (f *fakeRenderer) Render(w io.Writer, series ...energy.Series) error {
	f.calls++
	_, err := fmt.Fprintf(w, "%d series", len(series))
	return err
}

func TestWriteSeries_UsesRenderer(t *testing.T) {
	r := &fakeRenderer{}
	var buf bytes.Buffer
	require.NoError(t, writeSeries(&buf, "html", "-", r, energy.Series{}))
	assert.Equal(t, 1, r.calls)
	assert.Equal(t, "1 series", buf.String())

	require.NoError(t, writeSeries(&buf, "csv", "-", r, energy.Series{}))
	assert.Equal(t, 1, r.calls)
	assert.Error(t, writeSeries(&buf, "svg", "-", r, energy.Series{}))
}

func TestRoute_MissingFile(t *testing.T) {
	_, err := run(t, "route", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDemo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.html")
	out, err := run(t, "demo", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Energy consumed: 7.18 kWh\n")
	assert.Contains(t, out, "Current battery charge: 28.12 kWh\n")
	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "echarts")
}

func TestExplicitMissingConfig(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "demo", "--no-chart")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vehicle:\n  battery_capacity_kwh: 40\n  initial_charge_kwh: 10\n"), 0o644))
	out, err := run(t, "-c", path, "drive", "--distance", "2")
	require.NoError(t, err)
	assert.Equal(t, "Energy consumed: 1.00 kWh\nCurrent battery charge: 9.00 kWh\n", out)
}
