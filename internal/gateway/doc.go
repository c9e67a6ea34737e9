// Package gateway implements the Cayenne decode gateway: an HTTP and
// WebSocket front end over a shared LPP decoder.
//
// # Endpoints
//
//   - POST /v1/decode   decode a payload (raw bytes or hex text) to JSON
//   - GET  /v1/types    list registered data types
//   - GET  /v1/stream   WebSocket stream of decoded payloads
//   - GET  /healthz     liveness and version
//   - GET  /metrics     Prometheus metrics
//
// A payload posted as application/octet-stream is taken verbatim; any
// other content type is parsed as a hex string with whitespace ignored.
// Decode failures map to HTTP statuses: malformed payloads are 400,
// unknown type ids are 422, internal faults are 500. Every error body
// carries a stable machine-readable kind plus a human-readable detail.
//
// Successful decodes are fanned out to /v1/stream subscribers, which is
// what the cayenne-watch TUI consumes.
package gateway
