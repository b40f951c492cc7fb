// Package chart renders consumption curves as standalone HTML pages.
package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/ev-energy/core/energy"
)

// Renderer writes one or more consumption series to w.
type Renderer interface {
	Render(w io.Writer, series ...energy.Series) error
}

// LineRenderer draws every series as a line of consumption against final
// speed. The X axis is taken from the first series.
type LineRenderer struct {
	Title string
}

// Render implements Renderer.
func (r LineRenderer) Render(w io.Writer, series ...energy.Series) error {
	if len(series) == 0 {
		return fmt.Errorf("chart: no series to render")
	}
	title := r.Title
	if title == "" {
		title = "Energy consumption vs speed"
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Final speed (km/h)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Consumption (kWh)"}),
	)

	xAxis := make([]string, len(series[0].Speeds))
	for i, v := range series[0].Speeds {
		xAxis[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	line.SetXAxis(xAxis)
	for _, s := range series {
		line.AddSeries(s.Label(), lineData(s.ConsumptionKWh))
	}
	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// lineData leaves impossible readings empty so the line shows a gap.
func lineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		out[i] = opts.LineData{Value: v}
	}
	return out
}
