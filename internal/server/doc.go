// Package server provides the operational HTTP surface for inboxpilot.
//
// The only component is MetricsServer, a small HTTP server that exposes
// Prometheus metrics on a dedicated port, kept separate from the rest of
// the application. It serves /metrics for scraping and /healthz as a
// liveness probe.
package server
