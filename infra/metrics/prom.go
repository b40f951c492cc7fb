package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	coremetrics "github.com/kilianp07/ev-energy/core/metrics"
	"github.com/kilianp07/ev-energy/core/model"
)

// PromConfig configures the Prometheus sink.
type PromConfig struct {
	// PushURL is the Pushgateway address. When set the collected metrics are
	// pushed on Close, which suits one-shot CLI runs.
	PushURL string `json:"push_url"`
	// Job is the Pushgateway job label. Defaults to "ev_energy".
	Job string `json:"job"`
}

// PromSink records driven segments in Prometheus metrics.
type PromSink struct {
	energy     *prometheus.CounterVec
	segments   *prometheus.CounterVec
	impossible prometheus.Counter
	charge     *prometheus.GaugeVec
	perSegment prometheus.Histogram

	pusher *push.Pusher
}

// NewPromSink registers the metrics on the default Prometheus registerer.
func NewPromSink(cfg PromConfig) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. When pushing,
// the registerer is also used as gatherer if it implements one.
func NewPromSinkWithRegistry(cfg PromConfig, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	energy := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ev_energy_consumed_kwh_total",
		Help: "Energy consumed by driven segments",
	}, []string{"terrain", "weather", "curves"})
	segments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ev_drive_segments_total",
		Help: "Number of driven segments",
	}, []string{"kind"})
	impossible := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ev_impossible_segments_total",
		Help: "Segments whose slope could not be climbed",
	})
	charge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ev_battery_charge_kwh",
		Help: "Remaining battery charge after the last segment",
	}, []string{"vehicle_id"})
	perSegment := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ev_segment_consumption_kwh",
		Help:    "Energy consumed per segment",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	})

	var err error
	if energy, err = register(reg, energy); err != nil {
		return nil, err
	}
	if segments, err = register(reg, segments); err != nil {
		return nil, err
	}
	if impossible, err = register(reg, impossible); err != nil {
		return nil, err
	}
	if charge, err = register(reg, charge); err != nil {
		return nil, err
	}
	if perSegment, err = register(reg, perSegment); err != nil {
		return nil, err
	}

	s := &PromSink{energy: energy, segments: segments, impossible: impossible, charge: charge, perSegment: perSegment}
	if cfg.PushURL != "" {
		job := cfg.Job
		if job == "" {
			job = "ev_energy"
		}
		g, ok := reg.(prometheus.Gatherer)
		if !ok {
			g = prometheus.DefaultGatherer
		}
		s.pusher = push.New(cfg.PushURL, job).Gatherer(g)
	}
	return s, nil
}

// register returns the already registered collector when c was registered
// before, so that several sinks can share the default registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordDrive updates counters, the charge gauge and the histogram.
func (s *PromSink) RecordDrive(rec coremetrics.DriveRecord) error {
	s.segments.WithLabelValues(string(rec.Kind)).Inc()
	s.charge.WithLabelValues(rec.VehicleID).Set(rec.ChargeKWh)
	if rec.Impossible {
		s.impossible.Inc()
		return nil
	}
	seg := rec.Segment
	s.energy.WithLabelValues(
		labelOr(string(seg.Terrain), string(model.TerrainPavement)),
		labelOr(string(seg.Weather), string(model.WeatherSunny)),
		labelOr(string(seg.Curves), string(model.CurvesNone)),
	).Add(rec.ConsumedKWh)
	s.perSegment.Observe(rec.ConsumedKWh)
	return nil
}

// Close pushes the metrics to the Pushgateway when configured.
func (s *PromSink) Close() error {
	if s.pusher == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}

func labelOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
