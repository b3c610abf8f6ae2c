// Package metrics exposes Prometheus metrics for reconciliation passes,
// router queries and HTTP requests.
//
// A Collector registers its metrics against a prometheus.Registerer (the
// global registry when nil). Registering the same collector twice reuses the
// existing metrics, so tests and repeated command runs are safe.
//
// All Collector methods accept a nil receiver and do nothing, which keeps
// call sites free of "metrics enabled" checks.
package metrics
