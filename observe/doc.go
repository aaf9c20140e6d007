// Package observe provides observability primitives for HTTP dispatch.
//
// It is a pure instrumentation library: no sending, no transport, no I/O
// beyond exporter setup. The dispatch package wires an Instrumentation
// bundle (tracer, metrics, logger) around each correlated exchange.
package observe
