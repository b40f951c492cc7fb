package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ev-energy/app"
	"github.com/kilianp07/ev-energy/core/model"
	"github.com/kilianp07/ev-energy/pkg/chart"
)

func newDemoCmd(c *cli) *cobra.Command {
	var (
		output  string
		noChart bool
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the reference trip of a 75 kWh vehicle holding 50 kWh",
		RunE: func(cmd *cobra.Command, _ []string) error {
			capacity, charge := 75.0, 50.0
			svc, err := c.service(app.Override{BatteryCapacityKWh: &capacity, InitialChargeKWh: &charge})
			if err != nil {
				return err
			}
			defer closeService(cmd, svc)
			out := cmd.OutOrStdout()
			m := svc.Model

			// Accelerating uphill on wet pavement, braking hard at the end.
			rainy := model.Conditions{
				SlopeDeg: 5,
				Terrain:  model.TerrainPavement,
				Weather:  model.WeatherLightRain,
				Curves:   model.CurvesModerate,
			}
			consumed := m.Drive(model.Segment{
				InitialSpeedKmh: 60,
				FinalSpeedKmh:   100,
				DistanceKm:      10,
				Conditions:      rainy,
				IntenseBraking:  true,
			})
			fmt.Fprintf(out, "Energy consumed: %.2f kWh\n", consumed)

			// Flat road with a headwind and many curves.
			m.OptimizeEnergy(90, 20, model.Conditions{
				Terrain: model.TerrainPavement,
				Weather: model.WeatherHeadwind,
				Curves:  model.CurvesHigh,
			})
			if err := m.ShowBattery(out); err != nil {
				return err
			}

			if noChart {
				return nil
			}
			series, err := m.Curve(
				[]float64{60, 65, 75, 80},
				[]float64{85, 90, 95, 100},
				[]float64{10, 10, 10, 10},
				rainy,
			)
			if err != nil {
				return err
			}
			if output == "" {
				output = "demo.html"
			}
			title := fmt.Sprintf("Energy consumption vs final speed (%s)", series.Label())
			if err := writeSeries(out, "html", output, chart.LineRenderer{Title: title}, series); err != nil {
				return err
			}
			if output != "-" {
				fmt.Fprintf(out, "Chart written to %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "chart file, - for stdout")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "skip the consumption chart")
	return cmd
}
