package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/ev-energy/app"
	"github.com/kilianp07/ev-energy/core/model"
)

// conditionFlags binds the road and weather flags shared by the commands.
type conditionFlags struct {
	slope   float64
	terrain string
	weather string
	curves  string
}

func (f *conditionFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.slope, "slope", 0, "road slope in degrees, negative downhill")
	cmd.Flags().StringVar(&f.terrain, "terrain", "", "pavement, gravel, snow or sand")
	cmd.Flags().StringVar(&f.weather, "weather", "", "sunny, light_rain, heavy_rain, tailwind, headwind, light_snow or heavy_snow")
	cmd.Flags().StringVar(&f.curves, "curves", "", "none, low, moderate or high")
}

// conditions resolves the flags, taking unset categories from the
// configured defaults.
func (f conditionFlags) conditions(svc *app.Service) model.Conditions {
	return svc.Conditions(model.Conditions{
		SlopeDeg: f.slope,
		Terrain:  model.ParseTerrain(f.terrain),
		Weather:  model.ParseWeather(f.weather),
		Curves:   model.ParseCurveFrequency(f.curves),
	})
}
