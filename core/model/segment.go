package model

import "strings"

// Terrain describes the road surface of a segment.
type Terrain string

const (
	TerrainPavement Terrain = "pavement"
	TerrainGravel   Terrain = "gravel"
	TerrainSnow     Terrain = "snow"
	TerrainSand     Terrain = "sand"
)

// Weather describes the weather encountered on a segment.
type Weather string

const (
	WeatherSunny     Weather = "sunny"
	WeatherLightRain Weather = "light_rain"
	WeatherHeavyRain Weather = "heavy_rain"
	WeatherTailwind  Weather = "tailwind"
	WeatherHeadwind  Weather = "headwind"
	WeatherLightSnow Weather = "light_snow"
	WeatherHeavySnow Weather = "heavy_snow"
)

// CurveFrequency describes how twisty a segment is.
type CurveFrequency string

const (
	CurvesNone     CurveFrequency = "none"
	CurvesLow      CurveFrequency = "low"
	CurvesModerate CurveFrequency = "moderate"
	CurvesHigh     CurveFrequency = "high"
)

// Conditions describes the road and weather of a segment, independent of
// how fast it is driven.
type Conditions struct {
	SlopeDeg float64        `json:"slope_deg" yaml:"slope_deg"`
	Terrain  Terrain        `json:"terrain,omitempty" yaml:"terrain,omitempty"`
	Weather  Weather        `json:"weather,omitempty" yaml:"weather,omitempty"`
	Curves   CurveFrequency `json:"curves,omitempty" yaml:"curves,omitempty"`
}

// Segment holds the parameters of one driven stretch of road.
// The zero value is a flat, dry, straight, paved segment driven at 0 km/h;
// empty categories resolve to neutral multipliers.
type Segment struct {
	InitialSpeedKmh float64 `json:"initial_speed_kmh" yaml:"initial_speed_kmh"`
	FinalSpeedKmh   float64 `json:"final_speed_kmh" yaml:"final_speed_kmh"`
	DistanceKm      float64 `json:"distance_km" yaml:"distance_km"`
	Conditions      `yaml:",inline"`
	IntenseBraking  bool `json:"intense_braking,omitempty" yaml:"intense_braking,omitempty"`
}

// Cruise returns a segment driven at a constant speed under c.
func Cruise(speedKmh, distanceKm float64, c Conditions) Segment {
	return Segment{InitialSpeedKmh: speedKmh, FinalSpeedKmh: speedKmh, DistanceKm: distanceKm, Conditions: c}
}

// ParseTerrain normalises a user supplied terrain name. Unknown names are
// returned unchanged.
func ParseTerrain(s string) Terrain { return Terrain(normalize(s)) }

// ParseWeather normalises a user supplied weather name, accepting
// "light rain", "Light-Rain" and so on.
func ParseWeather(s string) Weather { return Weather(normalize(s)) }

// ParseCurveFrequency normalises a user supplied curve frequency.
func ParseCurveFrequency(s string) CurveFrequency { return CurveFrequency(normalize(s)) }

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
