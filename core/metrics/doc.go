// Package metrics exposes Prometheus instrumentation for the refresh layer.
//
// A Metrics value is registered against an explicit prometheus.Registerer so tests and
// embedded uses can keep isolated registries. All methods are safe on a nil *Metrics,
// which lets components run uninstrumented.
package metrics
