package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ev-energy/app"
	"github.com/kilianp07/ev-energy/core/energy"
	"github.com/kilianp07/ev-energy/core/model"
)

func newDriveCmd(c *cli) *cobra.Command {
	var (
		seg  model.Segment
		cond conditionFlags
	)
	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Drive one segment and print the energy consumed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.service(app.Override{})
			if err != nil {
				return err
			}
			defer closeService(cmd, svc)

			seg.Conditions = cond.conditions(svc)
			consumed := svc.Model.Drive(seg)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Energy consumed: %.2f kWh\n", consumed)
			if err := svc.Model.ShowBattery(out); err != nil {
				return err
			}
			return energy.CheckConsumption(consumed)
		},
	}
	cmd.Flags().Float64Var(&seg.InitialSpeedKmh, "initial", 0, "initial speed in km/h")
	cmd.Flags().Float64Var(&seg.FinalSpeedKmh, "final", 0, "final speed in km/h")
	cmd.Flags().Float64Var(&seg.DistanceKm, "distance", 0, "distance in km")
	cmd.Flags().BoolVar(&seg.IntenseBraking, "intense-braking", false, "brake hard at the end of the segment")
	cond.register(cmd)
	return cmd
}

func newOptimizeCmd(c *cli) *cobra.Command {
	var (
		desired, distance float64
		cond              conditionFlags
	)
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Cap the desired speed for the slope and drive at it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := c.service(app.Override{})
			if err != nil {
				return err
			}
			defer closeService(cmd, svc)

			conds := cond.conditions(svc)
			consumed := svc.Model.OptimizeEnergy(desired, distance, conds)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Optimal speed: %.0f km/h\n", energy.OptimalSpeed(desired, conds.SlopeDeg))
			fmt.Fprintf(out, "Energy consumed: %.2f kWh\n", consumed)
			if err := svc.Model.ShowBattery(out); err != nil {
				return err
			}
			return energy.CheckConsumption(consumed)
		},
	}
	cmd.Flags().Float64Var(&desired, "speed", 0, "desired speed in km/h")
	cmd.Flags().Float64Var(&distance, "distance", 0, "distance in km")
	cond.register(cmd)
	return cmd
}
