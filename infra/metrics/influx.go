package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/ev-energy/core/metrics"
	"github.com/kilianp07/ev-energy/core/model"
	"github.com/kilianp07/ev-energy/infra/logger"
)

// InfluxConfig holds the InfluxDB v2 connection settings.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes driven segments to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails, so that an unreachable database never stops a run.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordDrive writes the segment as a drive_segment point.
func (s *InfluxSink) RecordDrive(rec coremetrics.DriveRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, drivePoint(rec))
}

// Close releases the HTTP client resources.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func drivePoint(rec coremetrics.DriveRecord) *write.Point {
	seg := rec.Segment
	return write.NewPointWithMeasurement("drive_segment").
		AddTag("vehicle_id", rec.VehicleID).
		AddTag("segment_id", rec.SegmentID).
		AddTag("kind", string(rec.Kind)).
		AddTag("terrain", labelOr(string(seg.Terrain), string(model.TerrainPavement))).
		AddTag("weather", labelOr(string(seg.Weather), string(model.WeatherSunny))).
		AddTag("curves", labelOr(string(seg.Curves), string(model.CurvesNone))).
		AddField("initial_speed_kmh", round3(seg.InitialSpeedKmh)).
		AddField("final_speed_kmh", round3(seg.FinalSpeedKmh)).
		AddField("distance_km", round3(seg.DistanceKm)).
		AddField("slope_deg", round3(seg.SlopeDeg)).
		AddField("intense_braking", seg.IntenseBraking).
		AddField("consumed_kwh", round3(rec.ConsumedKWh)).
		AddField("charge_kwh", round3(rec.ChargeKWh)).
		AddField("soc", round3(rec.SoC())).
		AddField("impossible", rec.Impossible).
		SetTime(rec.Time)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
