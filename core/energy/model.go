package energy

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/ev-energy/core/logger"
	"github.com/kilianp07/ev-energy/core/metrics"
	"github.com/kilianp07/ev-energy/core/model"
)

// EnergyModel tracks the battery of one vehicle while it drives segments.
// It is not safe for concurrent use; keep one model per vehicle or guard it
// externally.
type EnergyModel struct {
	capacityKWh float64
	chargeKWh   float64

	vehicleID string
	log       logger.Logger
	sink      metrics.MetricsSink
	now       func() time.Time
	newID     func() string
}

// Option configures an EnergyModel.
type Option func(*EnergyModel)

// WithVehicleID tags emitted records with id.
func WithVehicleID(id string) Option {
	return func(m *EnergyModel) { m.vehicleID = id }
}

// WithLogger sets the logger used to trace driven segments.
func WithLogger(l logger.Logger) Option {
	return func(m *EnergyModel) {
		if l != nil {
			m.log = l
		}
	}
}

// WithSink sets the metrics sink receiving one record per driven segment.
func WithSink(s metrics.MetricsSink) Option {
	return func(m *EnergyModel) {
		if s != nil {
			m.sink = s
		}
	}
}

// WithClock overrides the time source of emitted records.
func WithClock(now func() time.Time) Option {
	return func(m *EnergyModel) {
		if now != nil {
			m.now = now
		}
	}
}

// New returns a model holding initialChargeKWh out of capacityKWh.
// The initial charge is taken as given; it is not clamped to the capacity.
func New(capacityKWh, initialChargeKWh float64, opts ...Option) *EnergyModel {
	m := &EnergyModel{
		capacityKWh: capacityKWh,
		chargeKWh:   initialChargeKWh,
		vehicleID:   "ev",
		log:         logger.Nop{},
		sink:        metrics.NopSink{},
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, o := range opts {
		o(m)
	}
	if initialChargeKWh > capacityKWh {
		m.log.Warnf("initial charge %.2f kWh exceeds capacity %.2f kWh", initialChargeKWh, capacityKWh)
	}
	return m
}

// CapacityKWh returns the battery capacity.
func (m *EnergyModel) CapacityKWh() float64 { return m.capacityKWh }

// ChargeKWh returns the remaining charge.
func (m *EnergyModel) ChargeKWh() float64 { return m.chargeKWh }

// SoC returns the remaining charge as a fraction of the capacity.
func (m *EnergyModel) SoC() float64 {
	if m.capacityKWh <= 0 {
		return 0
	}
	return m.chargeKWh / m.capacityKWh
}

// ComputeConsumption returns the energy seg would cost without driving it.
func (m *EnergyModel) ComputeConsumption(seg model.Segment) float64 {
	return Consumption(seg, ElectronicsDrawKW)
}

// Drive consumes the energy of seg and returns it. The charge never drops
// below zero; a segment costing more than what is left empties the battery
// and the full cost is still returned.
func (m *EnergyModel) Drive(seg model.Segment) float64 {
	return m.drive(seg, metrics.KindDrive)
}

// OptimizeEnergy caps the desired speed according to the slope, then drives
// distanceKm at that constant speed.
func (m *EnergyModel) OptimizeEnergy(desiredSpeedKmh, distanceKm float64, c model.Conditions) float64 {
	speed := OptimalSpeed(desiredSpeedKmh, c.SlopeDeg)
	m.log.Debugf("optimize: desired %.1f km/h, driving %.1f km/h on slope %.1f°", desiredSpeedKmh, speed, c.SlopeDeg)
	return m.drive(model.Cruise(speed, distanceKm, c), metrics.KindOptimize)
}

// BatteryReport formats the remaining charge with two decimals.
func (m *EnergyModel) BatteryReport() string {
	return fmt.Sprintf("Current battery charge: %.2f kWh", m.chargeKWh)
}

// ShowBattery writes the battery report to w.
func (m *EnergyModel) ShowBattery(w io.Writer) error {
	_, err := fmt.Fprintln(w, m.BatteryReport())
	return err
}

func (m *EnergyModel) drive(seg model.Segment, kind metrics.DriveKind) float64 {
	before := m.chargeKWh
	consumed := m.ComputeConsumption(seg)
	m.chargeKWh -= consumed
	if m.chargeKWh < 0 {
		m.chargeKWh = 0
	}

	impossible := IsImpossible(consumed)
	switch {
	case impossible:
		m.log.Warnf("segment slope %.1f° cannot be climbed, battery emptied", seg.SlopeDeg)
	case consumed > before:
		m.log.Warnf("battery depleted: segment needed %.2f kWh, %.2f kWh available", consumed, before)
	}
	m.log.Debugw("segment driven", map[string]any{
		"vehicle_id":   m.vehicleID,
		"kind":         string(kind),
		"final_speed":  seg.FinalSpeedKmh,
		"distance_km":  seg.DistanceKm,
		"slope_deg":    seg.SlopeDeg,
		"consumed_kwh": consumed,
		"charge_kwh":   m.chargeKWh,
	})

	rec := metrics.DriveRecord{
		SegmentID:   m.newID(),
		VehicleID:   m.vehicleID,
		Kind:        kind,
		Segment:     seg,
		ConsumedKWh: consumed,
		ChargeKWh:   m.chargeKWh,
		CapacityKWh: m.capacityKWh,
		Impossible:  impossible,
		Time:        m.now(),
	}
	if impossible {
		rec.ConsumedKWh = 0
	}
	if err := m.sink.RecordDrive(rec); err != nil {
		m.log.Errorf("record segment %s: %v", rec.SegmentID, err)
	}
	return consumed
}
