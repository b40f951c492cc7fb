package energy

import (
	"math"

	"github.com/kilianp07/ev-energy/core/model"
)

// ElectronicsDrawKW is the constant accessory load added to every kilometre.
const ElectronicsDrawKW = 0.5

const (
	// baseKWhPerKm is the propulsion cost per km at 100 km/h.
	baseKWhPerKm     = 0.2
	accelerationGain = 1.2
	decelerationGain = 0.8

	regenEfficiency        = 0.3
	intenseRegenEfficiency = 0.5

	degToRad = math.Pi / 180
)

var terrainFactors = map[model.Terrain]float64{
	model.TerrainPavement: 1.0,
	model.TerrainGravel:   1.2,
	model.TerrainSnow:     1.5,
	model.TerrainSand:     1.8,
}

var weatherFactors = map[model.Weather]float64{
	model.WeatherSunny:     1.0,
	model.WeatherLightRain: 1.1,
	model.WeatherHeavyRain: 1.3,
	model.WeatherTailwind:  0.9,
	model.WeatherHeadwind:  1.2,
	model.WeatherLightSnow: 1.4,
	model.WeatherHeavySnow: 1.6,
}

var curveFactors = map[model.CurveFrequency]float64{
	model.CurvesNone:     1.0,
	model.CurvesLow:      1.1,
	model.CurvesModerate: 1.2,
	model.CurvesHigh:     1.4,
}

// Consumption returns the energy in kWh needed to drive seg with the given
// accessory load. The result is never negative; a slope at or beyond ±90°
// yields +Inf.
func Consumption(seg model.Segment, electronicsKW float64) float64 {
	deltaV := seg.FinalSpeedKmh - seg.InitialSpeedKmh

	base := baseKWhPerKm * (seg.FinalSpeedKmh / 100)
	if deltaV > 0 {
		base *= accelerationGain
	} else if deltaV < 0 {
		base *= decelerationGain
	}

	terrain := math.Inf(1)
	if !impossibleSlope(seg.SlopeDeg) {
		terrain = base / math.Cos(seg.SlopeDeg*degToRad)
	}

	regen := 0.0
	if seg.SlopeDeg < 0 || seg.IntenseBraking {
		regen = RegenerativeBraking(seg.FinalSpeedKmh, seg.DistanceKm, seg.SlopeDeg, seg.IntenseBraking)
	}

	terrain *= TerrainFactor(seg.Terrain)
	terrain *= WeatherFactor(seg.Weather)
	terrain *= CurveFactor(seg.Curves)

	total := (terrain + electronicsKW) * seg.DistanceKm
	total -= regen
	return math.Max(total, 0)
}

// RegenerativeBraking returns the energy recovered in kWh while descending or
// braking hard. slopeDeg does not influence the result.
func RegenerativeBraking(speedKmh, distanceKm, slopeDeg float64, intenseBraking bool) float64 {
	eff := regenEfficiency
	if intenseBraking {
		eff = intenseRegenEfficiency
	}
	return eff * (baseKWhPerKm * (speedKmh / 100)) * distanceKm
}

// impossibleSlope reports whether the slope, folded into [-180°, 180°], is
// at or beyond ±90°. The angle is compared directly since cos(90°) rounds to
// a tiny positive value.
func impossibleSlope(slopeDeg float64) bool {
	return math.Abs(math.Remainder(slopeDeg, 360)) >= 90
}

// TerrainFactor returns the friction multiplier for t, 1.0 when unknown.
func TerrainFactor(t model.Terrain) float64 {
	if f, ok := terrainFactors[t]; ok {
		return f
	}
	return 1.0
}

// WeatherFactor returns the weather multiplier for w, 1.0 when unknown.
func WeatherFactor(w model.Weather) float64 {
	if f, ok := weatherFactors[w]; ok {
		return f
	}
	return 1.0
}

// CurveFactor returns the multiplier for the curve frequency, 1.0 when unknown.
func CurveFactor(c model.CurveFrequency) float64 {
	if f, ok := curveFactors[c]; ok {
		return f
	}
	return 1.0
}
