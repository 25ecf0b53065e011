// Package metrics exposes Prometheus metrics for the reconciliation engine and
// the ingest path. A nil *Metrics is valid and records nothing.
package metrics
