// Package instrumentation provides comprehensive OpenTelemetry instrumentation
// for the inboxpilot assistant.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for pipeline actions, capability operations, and OAuth
//   - Distributed tracing for pipeline flows and external API calls
//   - Prometheus metrics export via /metrics endpoint on dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Capability Metrics:
//   - capability_operations_total: Counter of capability operations by service, operation, status
//   - capability_operation_duration_seconds: Histogram of capability operation durations
//
// Pipeline Metrics:
//   - pipeline_actions_total: Counter of pipeline actions by action name and status
//   - pipeline_action_duration_seconds: Histogram of pipeline action durations
//
// OAuth Authentication Metrics:
//   - oauth_auth_total: Counter of OAuth authentication events by result
//   - oauth_token_refresh_total: Counter of token refresh attempts by result
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - Pipeline actions (action.<name>)
//   - Capability operations (capability.<service>.<operation>)
//   - OAuth token operations
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: inboxpilot)
//
// # Example Usage
//
//	// Initialize instrumentation
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "inboxpilot",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	// Get metrics recorder
//	recorder := provider.Metrics()
//
//	// Record a capability operation
//	recorder.RecordCapabilityOperation(ctx, "gmail", "list", "success", time.Since(start))
//
//	// Record a pipeline action
//	recorder.RecordPipelineAction(ctx, "refresh", "success", time.Since(start))
package instrumentation
