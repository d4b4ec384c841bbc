// Copyright (c) 2025, The GoKit Authors
// MIT License
// All rights reserved.

package busmq

import (
	"context"
	"reflect"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestConnectionPropagator(t *testing.T) {
	// Test that ConnectionPropagator is a composite propagator
	if ConnectionPropagator == nil {
		t.Fatal("ConnectionPropagator is nil")
	}

	// Test that it implements propagation.TextMapPropagator interface
	var _ propagation.TextMapPropagator = ConnectionPropagator

	fields := ConnectionPropagator.Fields()
	if len(fields) == 0 {
		t.Error("ConnectionPropagator.Fields() returned empty slice")
	}

	// Expected fields from TraceContext and Baggage propagators
	expectedFields := []string{"traceparent", "tracestate", "baggage"}
	for _, expected := range expectedFields {
		found := false
		for _, field := range fields {
			if field == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("ConnectionPropagator.Fields() missing expected field: %s", expected)
		}
	}
}

func TestPropertyCarrier_Set(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		expected Symbol
	}{
		{
			name:     "basic set",
			key:      "traceparent",
			value:    "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01",
			expected: Symbol("traceparent"),
		},
		{
			name:     "uppercase key converted to lowercase",
			key:      "TRACEPARENT",
			value:    "test-value",
			expected: Symbol("traceparent"),
		},
		{
			name:     "mixed case key converted to lowercase",
			key:      "TraceParent",
			value:    "test-value",
			expected: Symbol("traceparent"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carrier := PropertyCarrier{Properties: NewProperties()}
			carrier.Set(tt.key, tt.value)

			got, ok := carrier.Properties.Get(tt.expected)
			if !ok {
				t.Fatalf("PropertyCarrier.Set() did not store key %s", tt.expected)
			}
			if got != tt.value {
				t.Errorf("PropertyCarrier.Set() stored %v, want %v", got, tt.value)
			}
		})
	}
}

func TestPropertyCarrier_Get(t *testing.T) {
	tests := []struct {
		name     string
		seed     func(p *Properties)
		key      string
		expected string
	}{
		{
			name:     "get existing string value",
			seed:     func(p *Properties) { p.Set(Symbol("traceparent"), "00-abc-def-01") },
			key:      "traceparent",
			expected: "00-abc-def-01",
		},
		{
			name:     "get non-existing key",
			seed:     func(p *Properties) { p.Set(Symbol("traceparent"), "test-value") },
			key:      "nonexistent",
			expected: "",
		},
		{
			name:     "get with different case",
			seed:     func(p *Properties) { p.Set(Symbol("traceparent"), "test-value") },
			key:      "TRACEPARENT",
			expected: "test-value",
		},
		{
			name:     "get non-string value",
			seed:     func(p *Properties) { p.Set(Symbol("numeric"), 123) },
			key:      "numeric",
			expected: "",
		},
		{
			name:     "get from empty properties",
			seed:     func(p *Properties) {},
			key:      "any-key",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props := NewProperties()
			tt.seed(props)

			carrier := PropertyCarrier{Properties: props}
			if got := carrier.Get(tt.key); got != tt.expected {
				t.Errorf("PropertyCarrier.Get(%s) = %v, want %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestPropertyCarrier_Keys(t *testing.T) {
	carrier := PropertyCarrier{Properties: NewProperties()}
	carrier.Set("traceparent", "value1")
	carrier.Set("tracestate", "value2")
	carrier.Set("baggage", "value3")

	expected := []string{"traceparent", "tracestate", "baggage"}
	if got := carrier.Keys(); !reflect.DeepEqual(got, expected) {
		t.Errorf("PropertyCarrier.Keys() = %v, want %v", got, expected)
	}
}

func TestPropertyCarrier_TextMapCarrier(t *testing.T) {
	// Test that PropertyCarrier implements propagation.TextMapCarrier interface
	var carrier propagation.TextMapCarrier = PropertyCarrier{Properties: NewProperties()}

	carrier.Set("test-key", "test-value")

	if value := carrier.Get("test-key"); value != "test-value" {
		t.Errorf("TextMapCarrier.Get() = %v, want test-value", value)
	}

	keys := carrier.Keys()
	if len(keys) != 1 || keys[0] != "test-key" {
		t.Errorf("TextMapCarrier.Keys() = %v, want [test-key]", keys)
	}
}

func TestNewLifecycleSpan(t *testing.T) {
	tracer := otel.Tracer("test-tracer")

	remoteProps := NewProperties()
	remoteProps.Set(Symbol("traceparent"), "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	tests := []struct {
		name  string
		event Event
	}{
		{
			name:  "event without connection",
			event: NewEvent(EventConnectionFinal, nil, nil, nil),
		},
		{
			name:  "event with connection and no remote properties",
			event: NewEvent(EventConnectionInit, NewMockConnection(), nil, NewMockReactor()),
		},
		{
			name: "event with remote trace context",
			event: func() Event {
				conn := NewMockConnection()
				conn.SetRemoteProperties(remoteProps)
				return NewEvent(EventConnectionRemoteOpen, conn, nil, nil)
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, span := NewLifecycleSpan(tracer, tt.event)

			if ctx == nil {
				t.Error("NewLifecycleSpan() returned nil context")
			}
			if span == nil {
				t.Error("NewLifecycleSpan() returned nil span")
			}

			// Without an SDK installed the span is a noop; verifying the
			// interface and a clean End is what matters here.
			var _ trace.Span = span
			span.End()
		})
	}
}

func TestPropertyCarrier_Integration(t *testing.T) {
	// Manual injection of trace context into connection properties
	carrier := PropertyCarrier{Properties: NewProperties()}
	carrier.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	carrier.Set("tracestate", "vendor=value")

	if len(carrier.Keys()) < 2 {
		t.Errorf("expected at least 2 properties, got %d", len(carrier.Keys()))
	}

	extracted := ConnectionPropagator.Extract(context.Background(), carrier)
	if extracted == nil {
		t.Fatal("failed to extract context from connection properties")
	}

	spanCtx := trace.SpanContextFromContext(extracted)
	if !spanCtx.IsValid() {
		t.Error("extracted span context is not valid")
	}
	if got := spanCtx.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("extracted trace id = %s, want 4bf92f3577b34da6a3ce929d0e0e4736", got)
	}
}
