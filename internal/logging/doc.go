// Package logging provides structured logging for the Cayenne LPP toolkit.
//
// Logging is built on go.uber.org/zap with a console encoder. By default
// logging is silent so CLI output stays clean; it is enabled either by
// passing an explicit level to Initialize or by setting the
// CAYENNE_LOG_LEVEL environment variable to debug, info, warn or error.
//
// The package exposes a process-wide logger through thin helpers
// (Info, Debug, Warn, Error, Fatal) plus a few domain helpers for
// connection events and payload decode tracing with hex dumps.
package logging
