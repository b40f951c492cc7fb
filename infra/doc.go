// Package infra contains the technical adapters of the energy model: the
// zerolog logger, the Prometheus, InfluxDB and MQTT metrics sinks and the
// Sentry monitor. These packages depend only on the interfaces defined in
// the core packages.
package infra
