package instrumentation

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

// Test constants to reduce string repetition and satisfy goconst
const (
	testEmail          = "jane@example.com"
	testDomain         = "example.com"
	testAccount        = "work"
	testTraceID        = "abc123def456"
	testSpanID         = "span789"
	testActionRefresh  = "refresh"
	testActionSchedule = "schedule"
	testActionSend     = "send"
)

func TestActionInvocation_NewAndComplete(t *testing.T) {
	ai := NewActionInvocation(testActionRefresh)

	// Verify initial state
	if ai.Action != testActionRefresh {
		t.Errorf("Action = %q, want %q", ai.Action, testActionRefresh)
	}
	if ai.StartTime.IsZero() {
		t.Error("StartTime should not be zero")
	}

	// Complete the invocation - duration should be calculated from StartTime
	ai.CompleteSuccess()

	if !ai.Success {
		t.Error("Success should be true")
	}
	// Duration is calculated from StartTime, so it should be >= 0
	// We don't check for > 0 as the test may complete instantly
	if ai.Duration < 0 {
		t.Error("Duration should not be negative")
	}
	if ai.Error != "" {
		t.Errorf("Error should be empty, got %q", ai.Error)
	}
}

func TestActionInvocation_CompleteWithError(t *testing.T) {
	ai := NewActionInvocation(testActionSchedule)
	err := errors.New("permission denied")

	ai.CompleteWithError(err)

	if ai.Success {
		t.Error("Success should be false")
	}
	if ai.Error != "permission denied" {
		t.Errorf("Error = %q, want %q", ai.Error, "permission denied")
	}
}

func TestActionInvocation_WithUser(t *testing.T) {
	ai := NewActionInvocation(testActionRefresh)
	ai.WithUser(testEmail)

	if ai.UserEmail != testEmail {
		t.Errorf("UserEmail = %q, want %q", ai.UserEmail, testEmail)
	}
}

func TestActionInvocation_WithAccount(t *testing.T) {
	ai := NewActionInvocation(testActionRefresh)
	ai.WithAccount(testAccount)

	if ai.Account != testAccount {
		t.Errorf("Account = %q, want %q", ai.Account, testAccount)
	}
}

func TestActionInvocation_WithService(t *testing.T) {
	ai := NewActionInvocation(testActionRefresh)
	ai.WithService(ServiceGmail, OperationList)

	if ai.ServiceName != ServiceGmail {
		t.Errorf("ServiceName = %q, want %q", ai.ServiceName, ServiceGmail)
	}
	if ai.Operation != OperationList {
		t.Errorf("Operation = %q, want %q", ai.Operation, OperationList)
	}
}

func TestActionInvocation_WithResource(t *testing.T) {
	ai := NewActionInvocation(testActionSend)
	ai.WithResource("email", "msg-123")

	if ai.ResourceType != "email" {
		t.Errorf("ResourceType = %q, want %q", ai.ResourceType, "email")
	}
	if ai.ResourceID != "msg-123" {
		t.Errorf("ResourceID = %q, want %q", ai.ResourceID, "msg-123")
	}
}

func TestActionInvocation_UserDomain(t *testing.T) {
	ai := NewActionInvocation("test")
	ai.UserEmail = testEmail

	if domain := ai.UserDomain(); domain != testDomain {
		t.Errorf("UserDomain() = %q, want %q", domain, testDomain)
	}
}

func TestActionInvocation_Status(t *testing.T) {
	ai := NewActionInvocation("test")

	ai.Success = true
	if status := ai.Status(); status != StatusSuccess {
		t.Errorf("Status() = %q, want %q", status, StatusSuccess)
	}

	ai.Success = false
	if status := ai.Status(); status != StatusError {
		t.Errorf("Status() = %q, want %q", status, StatusError)
	}
}

func TestActionInvocation_LogAttrs(t *testing.T) {
	ai := NewActionInvocation(testActionRefresh)
	ai.WithUser(testEmail).
		WithAccount(testAccount).
		WithService(ServiceGmail, OperationList).
		CompleteSuccess()
	ai.TraceID = testTraceID

	attrs := ai.LogAttrs()

	// Verify we have the expected attributes
	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// Check required attributes
	requiredKeys := []string{"action", "user_domain", "duration", "success"}
	for _, key := range requiredKeys {
		if _, ok := attrMap[key]; !ok {
			t.Errorf("Missing required attribute: %s", key)
		}
	}

	// Check cardinality-controlled values
	if domain := attrMap["user_domain"].Value.String(); domain != testDomain {
		t.Errorf("user_domain = %q, want %q", domain, testDomain)
	}

	// Check service-related attributes
	if service := attrMap["service"].Value.String(); service != ServiceGmail {
		t.Errorf("service = %q, want %q", service, ServiceGmail)
	}
	if operation := attrMap["operation"].Value.String(); operation != OperationList {
		t.Errorf("operation = %q, want %q", operation, OperationList)
	}
}

func TestActionInvocation_LogAttrs_WithError(t *testing.T) {
	ai := NewActionInvocation(testActionSchedule)
	ai.WithUser(testEmail).
		WithAccount(testAccount).
		CompleteWithError(errors.New("test error"))

	attrs := ai.LogAttrs()

	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// Check error attribute is present
	if _, ok := attrMap["error"]; !ok {
		t.Error("Missing error attribute")
	}
	if errVal := attrMap["error"].Value.String(); errVal != "test error" {
		t.Errorf("error = %q, want %q", errVal, "test error")
	}
}

func TestActionInvocation_LogAttrs_MinimalFields(t *testing.T) {
	ai := NewActionInvocation(testActionRefresh)
	ai.CompleteSuccess()

	attrs := ai.LogAttrs()

	// Verify minimal attributes are present
	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// These should NOT be present when not set
	if _, ok := attrMap["service"]; ok {
		t.Error("service should not be present when empty")
	}
	if _, ok := attrMap["operation"]; ok {
		t.Error("operation should not be present when empty")
	}
	if _, ok := attrMap["trace_id"]; ok {
		t.Error("trace_id should not be present when empty")
	}
}

func TestActionInvocation_LogAttrs_DefaultAccount(t *testing.T) {
	ai := NewActionInvocation(testActionRefresh)
	ai.WithAccount("default").CompleteSuccess()

	attrs := ai.LogAttrs()

	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// "default" account should NOT be in attributes to reduce noise
	if _, ok := attrMap["account"]; ok {
		t.Error("account should not be present when set to 'default'")
	}
}

func TestActionInvocation_LogAuditAttrs(t *testing.T) {
	ai := NewActionInvocation(testActionSend)
	ai.WithUser(testEmail).
		WithAccount(testAccount).
		WithService(ServiceGmail, OperationSend).
		WithResource("email", "msg-123").
		CompleteSuccess()
	ai.TraceID = testTraceID
	ai.SpanID = testSpanID

	attrs := ai.LogAuditAttrs()

	// Verify we have the expected attributes
	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// Check that full values are present (not cardinality-controlled)
	if user := attrMap["user"].Value.String(); user != testEmail {
		t.Errorf("user = %q, want %q", user, testEmail)
	}
	if account := attrMap["account"].Value.String(); account != testAccount {
		t.Errorf("account = %q, want %q", account, testAccount)
	}

	// Check resource attributes
	if rt := attrMap["resource_type"].Value.String(); rt != "email" {
		t.Errorf("resource_type = %q, want %q", rt, "email")
	}
	if rid := attrMap["resource_id"].Value.String(); rid != "msg-123" {
		t.Errorf("resource_id = %q, want %q", rid, "msg-123")
	}

	// Check trace context
	if traceID := attrMap["trace_id"].Value.String(); traceID != testTraceID {
		t.Errorf("trace_id = %q, want %q", traceID, testTraceID)
	}
	if spanID := attrMap["span_id"].Value.String(); spanID != testSpanID {
		t.Errorf("span_id = %q, want %q", spanID, testSpanID)
	}
}

func TestActionInvocation_LogAuditAttrs_WithError(t *testing.T) {
	ai := NewActionInvocation(testActionSchedule)
	ai.WithUser(testEmail).
		WithAccount(testAccount).
		CompleteWithError(errors.New("audit error"))

	attrs := ai.LogAuditAttrs()

	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// Check error attribute is present
	if _, ok := attrMap["error"]; !ok {
		t.Error("Missing error attribute")
	}
}

func TestActionInvocation_LogAuditAttrs_MinimalFields(t *testing.T) {
	ai := NewActionInvocation(testActionRefresh)
	ai.CompleteSuccess()

	attrs := ai.LogAuditAttrs()

	attrMap := make(map[string]slog.Attr)
	for _, attr := range attrs {
		attrMap[attr.Key] = attr
	}

	// These should NOT be present when not set
	if _, ok := attrMap["service"]; ok {
		t.Error("service should not be present when empty")
	}
	if _, ok := attrMap["operation"]; ok {
		t.Error("operation should not be present when empty")
	}
}

func TestActionInvocation_MethodChaining(t *testing.T) {
	ai := NewActionInvocation(testActionSend).
		WithUser("user@example.com").
		WithAccount("personal").
		WithService(ServiceGmail, OperationSend).
		CompleteSuccess()

	if ai.Action != testActionSend {
		t.Errorf("Action = %q, want %q", ai.Action, testActionSend)
	}
	if ai.UserEmail != "user@example.com" {
		t.Errorf("UserEmail = %q, want %q", ai.UserEmail, "user@example.com")
	}
	if ai.Account != "personal" {
		t.Errorf("Account = %q, want %q", ai.Account, "personal")
	}
	if ai.ServiceName != ServiceGmail {
		t.Errorf("ServiceName = %q, want %q", ai.ServiceName, ServiceGmail)
	}
	if !ai.Success {
		t.Error("Success should be true")
	}
}

func TestAuditLogger_New(t *testing.T) {
	// Test with nil logger (should use default)
	al := NewAuditLogger(nil)
	if al.logger == nil {
		t.Error("logger should not be nil when created with nil")
	}

	// Test with custom logger
	logger := slog.Default()
	al = NewAuditLogger(logger)
	if al.logger != logger {
		t.Error("logger should be the provided logger")
	}
}

func TestAuditLogger_LogActionInvocation_Success(t *testing.T) {
	// This test verifies the method runs without panic
	al := NewAuditLogger(slog.Default())
	ai := NewActionInvocation(testActionRefresh).
		WithUser(testEmail).
		WithAccount(testAccount).
		CompleteSuccess()

	// Should not panic
	al.LogActionInvocation(ai)
}

func TestAuditLogger_LogActionInvocation_Failure(t *testing.T) {
	// This test verifies the method runs without panic for failures
	al := NewAuditLogger(slog.Default())
	ai := NewActionInvocation(testActionSchedule).
		WithUser(testEmail).
		WithAccount(testAccount).
		CompleteWithError(errors.New("test error"))

	// Should not panic
	al.LogActionInvocation(ai)
}

func TestAuditLogger_LogActionAudit(t *testing.T) {
	// This test verifies the method runs without panic
	al := NewAuditLogger(slog.Default())
	ai := NewActionInvocation(testActionSend).
		WithUser(testEmail).
		WithAccount(testAccount).
		WithService(ServiceGmail, OperationSend).
		CompleteSuccess()
	ai.TraceID = testTraceID

	// Should not panic
	al.LogActionAudit(ai)
}

func TestActionInvocation_WithSpanContext_NoSpan(t *testing.T) {
	ctx := context.Background()
	ai := NewActionInvocation("test").WithSpanContext(ctx)

	if ai.TraceID != "" {
		t.Errorf("TraceID = %q, want empty string", ai.TraceID)
	}
	if ai.SpanID != "" {
		t.Errorf("SpanID = %q, want empty string", ai.SpanID)
	}
}

func TestActionInvocation_Complete_NilError(t *testing.T) {
	ai := NewActionInvocation("test")
	ai.Complete(true, nil)

	if ai.Error != "" {
		t.Errorf("Error = %q, want empty string", ai.Error)
	}
}

func TestActionInvocation_Complete_WithError(t *testing.T) {
	ai := NewActionInvocation("test")
	ai.Complete(false, errors.New("some error"))

	if ai.Success {
		t.Error("Success should be false")
	}
	if ai.Error != "some error" {
		t.Errorf("Error = %q, want %q", ai.Error, "some error")
	}
}
