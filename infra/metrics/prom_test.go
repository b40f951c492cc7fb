package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/ev-energy/core/metrics"
	"github.com/kilianp07/ev-energy/core/model"
)

func driveRecord(consumed, charge float64) coremetrics.DriveRecord {
	return coremetrics.DriveRecord{
		SegmentID:   "seg-1",
		VehicleID:   "ev-1",
		Kind:        coremetrics.KindDrive,
		Segment:     model.Cruise(70, 10, model.Conditions{Weather: model.WeatherHeadwind}),
		ConsumedKWh: consumed,
		ChargeKWh:   charge,
		CapacityKWh: 75,
		Time:        time.Unix(1700000000, 0),
	}
}

func TestPromSink_RecordDrive(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(PromConfig{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	if err := sink.RecordDrive(driveRecord(6.5, 43.5)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := sink.RecordDrive(driveRecord(1.5, 42)); err != nil {
		t.Fatalf("record: %v", err)
	}

	expected := `
# HELP ev_energy_consumed_kwh_total Energy consumed by driven segments
# TYPE ev_energy_consumed_kwh_total counter
ev_energy_consumed_kwh_total{curves="none",terrain="pavement",weather="headwind"} 8
`
	if err := testutil.CollectAndCompare(sink.energy, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected energy metric: %v", err)
	}
	expectedCharge := `
# HELP ev_battery_charge_kwh Remaining battery charge after the last segment
# TYPE ev_battery_charge_kwh gauge
ev_battery_charge_kwh{vehicle_id="ev-1"} 42
`
	if err := testutil.CollectAndCompare(sink.charge, strings.NewReader(expectedCharge)); err != nil {
		t.Errorf("unexpected charge metric: %v", err)
	}
	if v := testutil.ToFloat64(sink.segments.WithLabelValues("drive")); v != 2 {
		t.Errorf("expected 2 segments got %v", v)
	}
	if c := testutil.CollectAndCount(sink.perSegment); c != 1 {
		t.Errorf("histogram not collected")
	}
	if err := sink.Close(); err != nil {
		t.Errorf("close without push: %v", err)
	}
}

func TestPromSink_Impossible(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(PromConfig{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	rec := driveRecord(0, 0)
	rec.Impossible = true
	if err := sink.RecordDrive(rec); err != nil {
		t.Fatalf("record: %v", err)
	}
	if v := testutil.ToFloat64(sink.impossible); v != 1 {
		t.Fatalf("expected 1 impossible segment got %v", v)
	}
	if c := testutil.CollectAndCount(sink.energy); c != 0 {
		t.Fatalf("impossible segment must not add energy")
	}
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(PromConfig{}, reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewPromSinkWithRegistry(PromConfig{}, reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.energy != second.energy {
		t.Fatalf("expected shared collector")
	}
}

func TestPromSink_PushOnClose(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(PromConfig{PushURL: srv.URL, Job: "trip"}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	if err := sink.RecordDrive(driveRecord(2, 48)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("push: %v", err)
	}
	if method != http.MethodPut || path != "/metrics/job/trip" {
		t.Fatalf("unexpected push %s %s", method, path)
	}
}
