package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency and DRY
const (
	// Common attributes (reused across metrics)
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrResult    = "result"
	attrAction    = "action"
	attrAccount   = "account"
)

// Metrics provides methods for recording observability metrics.
// All record methods are safe on a nil receiver, so callers can carry a
// nil *Metrics when instrumentation is disabled.
type Metrics struct {
	// Capability metrics
	capabilityOperationsTotal   metric.Int64Counter
	capabilityOperationDuration metric.Float64Histogram

	// Pipeline metrics
	pipelineActionsTotal   metric.Int64Counter
	pipelineActionDuration metric.Float64Histogram

	// OAuth metrics
	oauthAuthTotal         metric.Int64Counter
	oauthTokenRefreshTotal metric.Int64Counter

	// Configuration
	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// Capability Metrics
	m.capabilityOperationsTotal, err = meter.Int64Counter(
		"capability_operations_total",
		metric.WithDescription("Total number of capability operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create capability_operations_total counter: %w", err)
	}

	m.capabilityOperationDuration, err = meter.Float64Histogram(
		"capability_operation_duration_seconds",
		metric.WithDescription("Capability operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create capability_operation_duration_seconds histogram: %w", err)
	}

	// Pipeline Metrics
	m.pipelineActionsTotal, err = meter.Int64Counter(
		"pipeline_actions_total",
		metric.WithDescription("Total number of pipeline actions"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline_actions_total counter: %w", err)
	}

	m.pipelineActionDuration, err = meter.Float64Histogram(
		"pipeline_action_duration_seconds",
		metric.WithDescription("Pipeline action duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0, 120.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline_action_duration_seconds histogram: %w", err)
	}

	// OAuth Metrics
	m.oauthAuthTotal, err = meter.Int64Counter(
		"oauth_auth_total",
		metric.WithDescription("Total number of OAuth authentication attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_auth_total counter: %w", err)
	}

	m.oauthTokenRefreshTotal, err = meter.Int64Counter(
		"oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	return m, nil
}

// RecordCapabilityOperation records a capability operation with service,
// operation, status, and duration.
//
// Parameters:
//   - service: capability name (gmail, calendar, search, llm, slack, store)
//   - operation: operation type (list, fetch, send, classify, post, etc.)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordCapabilityOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m == nil || m.capabilityOperationsTotal == nil || m.capabilityOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.capabilityOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.capabilityOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordCapabilityOperationWithAccount records a capability operation with
// account info. The account label is only attached when detailedLabels is
// enabled, keeping cardinality bounded by default.
func (m *Metrics) RecordCapabilityOperationWithAccount(ctx context.Context, service, operation, status, account string, duration time.Duration) {
	if m == nil || m.capabilityOperationsTotal == nil || m.capabilityOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	// Only add high-cardinality labels if explicitly enabled
	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, account))
	}

	m.capabilityOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.capabilityOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordPipelineAction records a pipeline action with status and duration.
//
// Parameters:
//   - action: pipeline action (refresh, analyze, draft, send, notify, schedule)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the action
func (m *Metrics) RecordPipelineAction(ctx context.Context, action, status string, duration time.Duration) {
	if m == nil || m.pipelineActionsTotal == nil || m.pipelineActionDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrAction, action),
		attribute.String(attrStatus, status),
	}

	m.pipelineActionsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.pipelineActionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordOAuthAuth records an OAuth authentication attempt with result.
// Result should be one of: "success", "failure"
func (m *Metrics) RecordOAuthAuth(ctx context.Context, result string) {
	if m == nil || m.oauthAuthTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrResult, result),
	}

	m.oauthAuthTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordOAuthTokenRefresh records an OAuth token refresh attempt with result.
// Result should be one of: "success", "failure", "expired"
func (m *Metrics) RecordOAuthTokenRefresh(ctx context.Context, result string) {
	if m == nil || m.oauthTokenRefreshTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrResult, result),
	}

	m.oauthTokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}
