package metrics

import "errors"

// MultiSink fans out records to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordDrive forwards the record to all sinks. Every sink is attempted and
// the errors are joined.
func (m *MultiSink) RecordDrive(rec DriveRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordDrive(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink implementing Closer.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes sink when it implements Closer.
func Close(sink MetricsSink) error {
	if c, ok := sink.(Closer); ok {
		return c.Close()
	}
	return nil
}
