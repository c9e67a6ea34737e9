// Package metrics defines the Prometheus metrics exposed by the decode
// gateway on /metrics: decode counters, per-type record counters, payload
// size histograms, stream subscriber gauge, and HTTP request metrics.
package metrics
