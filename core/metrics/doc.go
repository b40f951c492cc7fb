// Package metrics defines the records emitted by the energy model and the
// sinks that receive them. Concrete sinks (Prometheus, InfluxDB, MQTT) live
// in infra/metrics and register themselves with the factory on import;
// NewMetricsSink builds a MultiSink automatically when several sinks are
// configured.
package metrics
