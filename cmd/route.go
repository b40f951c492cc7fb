package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ev-energy/app"
	"github.com/kilianp07/ev-energy/core/route"
)

func newRouteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "route <file.yaml>",
		Short: "Drive every leg of a route file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := route.Load(args[0])
			if err != nil {
				return err
			}
			svc, err := c.service(app.Override{
				VehicleID:          r.Vehicle.ID,
				BatteryCapacityKWh: r.Vehicle.BatteryCapacityKWh,
				InitialChargeKWh:   r.Vehicle.InitialChargeKWh,
			})
			if err != nil {
				return err
			}
			defer closeService(cmd, svc)

			rep, runErr := route.Run(svc.Model, r, svc.Defaults)
			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "LEG\tMODE\tSPEED_KMH\tCONSUMED_KWH\tCHARGE_KWH")
			for _, l := range rep.Legs {
				mode := "drive"
				if l.Optimized {
					mode = "optimize"
				}
				consumed := fmt.Sprintf("%.2f", l.ConsumedKWh)
				if l.Impossible {
					consumed = "impossible"
				}
				fmt.Fprintf(tw, "%s\t%s\t%.0f\t%s\t%.2f\n", l.Name, mode, l.SpeedKmh, consumed, l.ChargeKWh)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Total consumed: %.2f kWh\n", rep.TotalKWh)
			if rep.Depleted {
				fmt.Fprintln(out, "Battery depleted")
			}
			if err := svc.Model.ShowBattery(out); err != nil {
				return err
			}
			return runErr
		},
	}
}
