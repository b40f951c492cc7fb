package chart

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/kilianp07/ev-energy/core/energy"
	"github.com/kilianp07/ev-energy/core/model"
)

func TestLineRenderer_Render(t *testing.T) {
	m := energy.New(75, 50)
	speeds := []float64{30, 60, 90, 120}
	dist := []float64{10, 10, 10, 10}
	dry, err := m.Curve(speeds, speeds, dist, model.Conditions{})
	if err != nil {
		t.Fatalf("curve: %v", err)
	}
	wet, err := m.Curve(speeds, speeds, dist, model.Conditions{Weather: model.WeatherHeavyRain})
	if err != nil {
		t.Fatalf("curve: %v", err)
	}

	var buf bytes.Buffer
	if err := (LineRenderer{Title: "Trip"}).Render(&buf, dry, wet); err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"echarts", "Trip", "pavement, sunny", "pavement, heavy_rain"} {
		if !strings.Contains(html, want) {
			t.Errorf("output misses %q", want)
		}
	}
}

func TestLineRenderer_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := (LineRenderer{}).Render(&buf); err == nil {
		t.Fatalf("expected error without series")
	}
}

func TestLineData_SkipsImpossible(t *testing.T) {
	data := lineData([]float64{1.5, math.Inf(1)})
	if data[0].Value != 1.5 {
		t.Fatalf("unexpected value %v", data[0].Value)
	}
	if data[1].Value != nil {
		t.Fatalf("impossible reading should be empty, got %v", data[1].Value)
	}
}
