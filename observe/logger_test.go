package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// TestLogger_IncludesPolicyFields verifies policy fields are present in log output.
func TestLogger_IncludesPolicyFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	meta := PolicyMeta{
		Name:     "billing-api",
		Resource: "POST /charges",
	}

	policyLogger := logger.WithPolicy(meta)
	policyLogger.Info(context.Background(), "test message")

	output := buf.String()

	// Parse JSON output
	var logEntry map[string]any
	if err := json.Unmarshal([]byte(output), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, output)
	}

	// Verify policy fields
	if v, ok := logEntry["policy.name"].(string); !ok || v != "billing-api" {
		t.Errorf("expected policy.name='billing-api', got %v", logEntry["policy.name"])
	}
	if v, ok := logEntry["policy.resource"].(string); !ok || v != "POST /charges" {
		t.Errorf("expected policy.resource='POST /charges', got %v", logEntry["policy.resource"])
	}
}

// TestLogger_IncludesLayers verifies composed layer names are logged.
func TestLogger_IncludesLayers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	meta := PolicyMeta{
		Name:   "billing-api",
		Layers: []string{"fallback", "retry", "circuit"},
	}

	logger.WithPolicy(meta).Info(context.Background(), "test")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	layers, ok := logEntry["policy.layers"].([]any)
	if !ok || len(layers) != 3 {
		t.Fatalf("expected policy.layers with 3 entries, got %v", logEntry["policy.layers"])
	}
	if layers[0] != "fallback" || layers[2] != "circuit" {
		t.Errorf("expected layers [fallback retry circuit], got %v", layers)
	}
}

// TestLogger_IncludesDuration verifies duration_ms field is present.
func TestLogger_IncludesDuration(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	meta := PolicyMeta{Name: "test_policy"}
	policyLogger := logger.WithPolicy(meta)

	policyLogger.Info(context.Background(), "test message",
		Field{Key: "duration_ms", Value: 50.5},
	)

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if v, ok := logEntry["duration_ms"].(float64); !ok || v != 50.5 {
		t.Errorf("expected duration_ms=50.5, got %v", logEntry["duration_ms"])
	}
}

// TestLogger_ErrorLevel verifies error log level and error field.
func TestLogger_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	meta := PolicyMeta{Name: "error_policy"}
	policyLogger := logger.WithPolicy(meta)

	policyLogger.Error(context.Background(), "execution failed",
		Field{Key: "error", Value: "connection timeout"},
	)

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	// Verify level
	if v, ok := logEntry["level"].(string); !ok || v != "error" {
		t.Errorf("expected level='error', got %v", logEntry["level"])
	}

	// Verify error field
	if v, ok := logEntry["error"].(string); !ok || v != "connection timeout" {
		t.Errorf("expected error='connection timeout', got %v", logEntry["error"])
	}
}

// TestLogger_LevelFiltering verifies log level filtering.
func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	meta := PolicyMeta{Name: "filtered_policy"}
	policyLogger := logger.WithPolicy(meta)

	// Info should be filtered out
	policyLogger.Info(context.Background(), "info message")

	output := buf.String()
	if strings.Contains(output, "info message") {
		t.Error("info message should be filtered when level is warn")
	}

	// Warn should pass through
	policyLogger.Warn(context.Background(), "warn message")

	output = buf.String()
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should pass through when level is warn")
	}
}

// TestLogger_DebugLevel verifies debug level filtering.
func TestLogger_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("debug", &buf)

	meta := PolicyMeta{Name: "debug_policy"}
	logger.WithPolicy(meta).Debug(context.Background(), "debug message")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if v, ok := logEntry["level"].(string); !ok || v != "debug" {
		t.Errorf("expected level='debug', got %v", logEntry["level"])
	}
}

// TestLogger_WithPolicyDoesNotMutateParent verifies the parent logger keeps
// its own attributes after deriving a policy logger.
func TestLogger_WithPolicyDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.WithPolicy(PolicyMeta{Name: "child"})
	logger.Info(context.Background(), "parent message")

	var logEntry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v", err)
	}

	if _, ok := logEntry["policy.name"]; ok {
		t.Errorf("parent logger gained policy.name=%v from derived logger", logEntry["policy.name"])
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
