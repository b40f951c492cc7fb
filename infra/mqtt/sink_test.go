package mqtt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/ev-energy/core/metrics"
	"github.com/kilianp07/ev-energy/core/model"
)

func TestSink_RecordDrive(t *testing.T) {
	mc := useMockClient(t, &mockClient{})
	sink, err := NewSink(Config{Broker: "tcp://localhost:1883", TopicPrefix: "fleet/"})
	require.NoError(t, err)

	rec := coremetrics.DriveRecord{
		SegmentID:   "s1",
		VehicleID:   "ev-7",
		Kind:        coremetrics.KindOptimize,
		Segment:     model.Cruise(70, 20, model.Conditions{Curves: model.CurvesHigh}),
		ConsumedKWh: 14.7,
		ChargeKWh:   28.1,
		CapacityKWh: 75,
	}
	require.NoError(t, sink.RecordDrive(rec))
	require.Len(t, mc.published, 1)
	assert.Equal(t, "fleet/ev-7/energy", mc.published[0].topic)

	var got coremetrics.DriveRecord
	require.NoError(t, json.Unmarshal(mc.published[0].payload, &got))
	assert.Equal(t, rec.SegmentID, got.SegmentID)
	assert.Equal(t, rec.Segment, got.Segment)
	assert.Equal(t, rec.ConsumedKWh, got.ConsumedKWh)

	require.NoError(t, sink.Close())
	assert.True(t, mc.disconnected)
}

func TestSink_DefaultPrefix(t *testing.T) {
	s := newSink(nil, "")
	assert.Equal(t, "ev/car/energy", s.Topic("car"))
}
