package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ev-energy/app"
	"github.com/kilianp07/ev-energy/core/energy"
	"github.com/kilianp07/ev-energy/pkg/chart"
	"github.com/kilianp07/ev-energy/pkg/export"
)

type curveFlags struct {
	initial   []float64
	final     []float64
	distances []float64

	from, to      float64
	steps         int
	sweepDistance float64

	format string
	output string
}

func newCurveCmd(c *cli) *cobra.Command {
	var (
		f    curveFlags
		cond conditionFlags
	)
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Compute consumption against final speed",
		Long: "Compute consumption against final speed, either for explicit " +
			"--initial/--final/--distance lists or for a constant speed sweep.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.service(app.Override{})
			if err != nil {
				return err
			}
			defer closeService(cmd, svc)

			initial, final, distances := f.inputs()
			series, err := svc.Model.Curve(initial, final, distances, cond.conditions(svc))
			if err != nil {
				return err
			}
			format, output := f.destination(c)
			title := fmt.Sprintf("Energy consumption vs final speed (%s)", series.Label())
			if err := writeSeries(cmd.OutOrStdout(), format, output, chart.LineRenderer{Title: title}, series); err != nil {
				return err
			}
			if output != "-" {
				sum := series.Summary()
				fmt.Fprintf(cmd.OutOrStdout(), "%s: min %.2f kWh, max %.2f kWh, mean %.2f kWh -> %s\n",
					series.Label(), sum.MinKWh, sum.MaxKWh, sum.MeanKWh, output)
			}
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&f.initial, "initial", nil, "initial speeds in km/h")
	cmd.Flags().Float64SliceVar(&f.final, "final", nil, "final speeds in km/h")
	cmd.Flags().Float64SliceVar(&f.distances, "distance", nil, "distances in km")
	cmd.Flags().Float64Var(&f.from, "from", 30, "lowest speed of the sweep")
	cmd.Flags().Float64Var(&f.to, "to", 130, "highest speed of the sweep")
	cmd.Flags().IntVar(&f.steps, "steps", 11, "number of speeds in the sweep")
	cmd.Flags().Float64Var(&f.sweepDistance, "sweep-distance", 10, "distance of every sweep point in km")
	cmd.Flags().StringVar(&f.format, "format", "", "html, csv or json (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file, - for stdout (default from config)")
	cond.register(cmd)
	return cmd
}

// inputs returns the explicit lists when --final is given, a constant speed
// sweep otherwise. Missing initial speeds or distances follow the sweep rules.
func (f curveFlags) inputs() (initial, final, distances []float64) {
	final = f.final
	if len(final) == 0 {
		final = energy.SpeedSweep(f.from, f.to, f.steps)
	}
	initial = f.initial
	if len(initial) == 0 {
		initial = final
	}
	distances = f.distances
	if len(distances) == 0 {
		distances = make([]float64, len(final))
		for i := range distances {
			distances[i] = f.sweepDistance
		}
	}
	return initial, final, distances
}

func (f curveFlags) destination(c *cli) (format, output string) {
	format, output = c.cfg.Chart.Format, c.cfg.Chart.Output
	if f.format != "" {
		format = f.format
		if f.output == "" {
			output = "consumption." + format
		}
	}
	if f.output != "" {
		output = f.output
	}
	return format, output
}

// writeSeries writes series to output, or to stdout when output is "-".
// The html format goes through r.
func writeSeries(stdout io.Writer, format, output string, r chart.Renderer, series energy.Series) (err error) {
	w := stdout
	if output != "-" {
		file, cerr := os.Create(output)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}()
		w = file
	}
	switch format {
	case "html":
		return r.Render(w, series)
	case "csv":
		return export.WriteCSV(w, series)
	case "json":
		return export.WriteJSON(w, series)
	default:
		return fmt.Errorf("unknown output format %s", format)
	}
}
