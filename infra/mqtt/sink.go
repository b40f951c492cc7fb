package mqtt

import (
	"encoding/json"
	"fmt"
	"strings"

	coremetrics "github.com/kilianp07/ev-energy/core/metrics"
)

// Sink publishes every driven segment as JSON on
// <topic_prefix>/<vehicle_id>/energy.
type Sink struct {
	pub    publisher
	prefix string
}

type publisher interface {
	Publish(topic string, payload []byte) error
	Disconnect()
}

// NewSink connects a Publisher and wraps it in a metrics sink.
func NewSink(cfg Config) (*Sink, error) {
	pub, err := NewPublisher(cfg)
	if err != nil {
		return nil, err
	}
	return newSink(pub, cfg.TopicPrefix), nil
}

func newSink(pub publisher, prefix string) *Sink {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		prefix = "ev"
	}
	return &Sink{pub: pub, prefix: prefix}
}

// Topic returns the topic used for vehicleID.
func (s *Sink) Topic(vehicleID string) string {
	return fmt.Sprintf("%s/%s/energy", s.prefix, vehicleID)
}

// RecordDrive publishes rec.
func (s *Sink) RecordDrive(rec coremetrics.DriveRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode drive record: %w", err)
	}
	return s.pub.Publish(s.Topic(rec.VehicleID), payload)
}

// Close disconnects from the broker.
func (s *Sink) Close() error {
	s.pub.Disconnect()
	return nil
}
