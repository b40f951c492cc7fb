package metrics

import (
	"time"

	"github.com/kilianp07/ev-energy/core/model"
)

// DriveKind tells how a segment was requested.
type DriveKind string

const (
	KindDrive    DriveKind = "drive"
	KindOptimize DriveKind = "optimize"
)

// DriveRecord captures one driven segment and the battery state after it.
type DriveRecord struct {
	SegmentID   string        `json:"segment_id"`
	VehicleID   string        `json:"vehicle_id"`
	Kind        DriveKind     `json:"kind"`
	Segment     model.Segment `json:"segment"`
	ConsumedKWh float64       `json:"consumed_kwh"`
	ChargeKWh   float64       `json:"charge_kwh"`
	CapacityKWh float64       `json:"capacity_kwh"`
	// Impossible is set when the slope made the consumption infinite.
	// ConsumedKWh is then reported as 0 so that sinks never see +Inf.
	Impossible bool      `json:"impossible"`
	Time       time.Time `json:"time"`
}

// SoC returns the state of charge after the segment in [0,1].
func (r DriveRecord) SoC() float64 {
	if r.CapacityKWh <= 0 {
		return 0
	}
	return r.ChargeKWh / r.CapacityKWh
}

// MetricsSink records driven segments for observability purposes.
type MetricsSink interface {
	RecordDrive(rec DriveRecord) error
}

// Closer is implemented by sinks holding connections or buffered data.
type Closer interface {
	Close() error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordDrive(DriveRecord) error { return nil }
func (NopSink) Close() error                  { return nil }
