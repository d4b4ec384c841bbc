// Copyright (c) 2025, The GoKit Authors
// MIT License
// All rights reserved.

package busmq

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// ConnectionPropagator carries W3C trace context and baggage through AMQP
// connection properties, correlating connection lifecycles across peers.
var ConnectionPropagator = propagation.NewCompositeTextMapPropagator(
	propagation.TraceContext{},
	propagation.Baggage{},
)

// PropertyCarrier adapts a connection property map to the OpenTelemetry
// TextMapCarrier interface. Keys are lowercased on both reads and writes,
// matching the W3C header form.
type PropertyCarrier struct {
	Properties *Properties
}

// Get returns the string value stored under key, or empty when the key is
// absent or holds a non-string value.
func (c PropertyCarrier) Get(key string) string {
	value, ok := c.Properties.Get(Symbol(strings.ToLower(key)))
	if !ok {
		return ""
	}

	s, ok := value.(string)
	if !ok {
		return ""
	}

	return s
}

// Set stores value under the lowercased key.
func (c PropertyCarrier) Set(key, value string) {
	c.Properties.Set(Symbol(strings.ToLower(key)), value)
}

// Keys returns the property keys in insertion order.
func (c PropertyCarrier) Keys() []string {
	symbols := c.Properties.Keys()

	keys := make([]string, 0, len(symbols))
	for _, s := range symbols {
		keys = append(keys, string(s))
	}

	return keys
}

// NewLifecycleSpan starts one span covering the handling of a single
// lifecycle event. When the remote peer advertised trace context through its
// connection properties, the span joins the peer's trace.
func NewLifecycleSpan(tracer trace.Tracer, e Event) (context.Context, trace.Span) {
	ctx := context.Background()

	opts := []trace.SpanStartOption{}
	if conn := e.Connection(); conn != nil {
		if remote := conn.RemoteProperties(); remote != nil {
			ctx = ConnectionPropagator.Extract(ctx, PropertyCarrier{Properties: remote})
		}
		opts = append(opts, trace.WithAttributes(attribute.String("amqp.container_id", conn.ContainerID())))
	}

	return tracer.Start(ctx, e.Type().String(), opts...)
}
