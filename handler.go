// Copyright (c) 2025, The GoKit Authors
// MIT License
// All rights reserved.

package busmq

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type (
	// ConnectionObserver receives lifecycle notifications for the connections
	// it owns. busmq invokes it from the reactor goroutine, so implementations
	// must not block; hand work off to another goroutine instead.
	ConnectionObserver interface {
		// HostName returns the fully qualified domain name of the remote peer
		// the owner intends to reach. It is used for strict hostname
		// verification peer details.
		HostName() string

		// OnConnectionOpen is called once the peer's open frame arrives and
		// the connection is ready to carry sessions.
		OnConnectionOpen()

		// OnConnectionError is called when the connection terminates: the peer
		// closed it, the transport failed, or local setup failed. A nil
		// condition means the peer closed without giving one.
		OnConnectionError(condition *ErrorCondition)
	}

	// connectionHandler drives the lifecycle of AMQP connections: local
	// initialization, SASL and TLS policy on transport bind, forwarding of
	// remote open/close and transport failures to the observer, and release
	// of engine resources. It holds no per-connection state; everything
	// mutable lives on the Connection entity delivered with each event.
	connectionHandler struct {
		observer   ConnectionObserver
		settings   Settings
		handshaker EventHandler
		tracer     trace.Tracer
	}
)

// NewConnectionHandler creates the lifecycle handler for connections owned by
// observer. settings is treated as immutable; resolve it once at startup.
func NewConnectionHandler(observer ConnectionObserver, settings Settings) EventHandler {
	return &connectionHandler{
		observer:   observer,
		settings:   settings,
		handshaker: NewHandshaker(),
		tracer:     otel.Tracer("busmq-connection"),
	}
}

// HandleEvent dispatches one lifecycle event. The attached handshaker runs
// after the handler's own processing, so state snapshots taken here observe
// the endpoint states the event was delivered with.
func (h *connectionHandler) HandleEvent(e Event) {
	ctx, span := NewLifecycleSpan(h.tracer, e)
	defer span.End()

	var err error

	switch e.Type() {
	case EventConnectionInit:
		err = h.onConnectionInit(ctx, e)
	case EventConnectionBound:
		err = h.onConnectionBound(ctx, e)
	case EventConnectionRemoteOpen:
		h.onConnectionRemoteOpen(ctx, e)
	case EventConnectionRemoteClose:
		h.onConnectionRemoteClose(ctx, e)
	case EventConnectionLocalClose:
		h.onConnectionLocalClose(ctx, e)
	case EventConnectionFinal:
		h.onConnectionFinal(ctx, e)
	case EventTransportError:
		h.onTransportError(ctx, e)
	default:
		logrus.WithContext(ctx).Debugf("busmq ignoring event: %s", e)
		return
	}

	h.handshaker.HandleEvent(e)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	span.SetStatus(codes.Ok, "handled")
}

// onConnectionInit stamps the connection identity and requests the local
// open. A connection the reactor gave no address cannot be opened; that is
// reported instead of silently skipped.
func (h *connectionHandler) onConnectionInit(ctx context.Context, e Event) error {
	conn := e.Connection()

	address := e.Reactor().ConnectionAddress(conn)
	if address == "" {
		logrus.
			WithContext(ctx).
			WithError(EmptyConnectionAddressError).
			Error("busmq failure to initialize connection")

		h.observer.OnConnectionError(NewErrorCondition(ConditionInternalError, EmptyConnectionAddressError.Message))
		return EmptyConnectionAddressError
	}

	containerID := NewContainerID()

	conn.SetHostname(address)
	conn.SetContainerID(containerID)
	conn.SetProperties(defaultProperties())
	conn.Open()

	logrus.
		WithContext(ctx).
		WithFields(logrus.Fields{
			"hostname":    address,
			"containerID": containerID,
		}).
		Debug("busmq connection opened locally")

	return nil
}

// onConnectionBound restricts SASL to the anonymous mechanism and applies the
// configured TLS verification policy to the freshly bound transport.
func (h *connectionHandler) onConnectionBound(ctx context.Context, e Event) error {
	transport := e.Transport()
	if transport == nil {
		logrus.WithContext(ctx).Error("busmq bound event delivered without a transport")
		return NullableTransportError
	}

	transport.SASL().SetMechanisms(SASLMechanismAnonymous)

	domain, err := NewTLSDomain(h.settings.VerifyMode, h.peerDetails())
	if err == nil {
		err = transport.Secure(domain)
	}
	if err != nil {
		logrus.
			WithContext(ctx).
			WithError(err).
			WithField("verifyMode", h.settings.VerifyMode.String()).
			Error("busmq failure to secure the transport")

		h.observer.OnConnectionError(NewErrorCondition(ConditionInternalError, err.Error()))
		return err
	}

	logrus.
		WithContext(ctx).
		WithField("verifyMode", h.settings.VerifyMode.String()).
		Debug("busmq transport bound and secured")

	return nil
}

// onConnectionRemoteOpen notifies the observer that the connection is ready.
func (h *connectionHandler) onConnectionRemoteOpen(ctx context.Context, e Event) {
	logrus.
		WithContext(ctx).
		WithField("remoteContainer", e.Connection().RemoteContainerID()).
		Debug("busmq connection opened by the remote peer")

	h.observer.OnConnectionOpen()
}

// onConnectionRemoteClose forwards the close condition and releases the
// connection when both endpoints are closed.
func (h *connectionHandler) onConnectionRemoteClose(ctx context.Context, e Event) {
	conn := e.Connection()
	condition := conn.RemoteCondition()

	if condition != nil {
		trace.SpanFromContext(ctx).RecordError(condition)
		logrus.
			WithContext(ctx).
			WithFields(logrus.Fields{
				"condition":   string(condition.Condition),
				"description": condition.Description,
			}).
			Warn("busmq connection closed by the remote peer")
	} else {
		logrus.WithContext(ctx).Debug("busmq connection closed cleanly by the remote peer")
	}

	// Snapshot before the callback: the observer may close the local end
	// during it, and this event's release decision must not see that.
	shouldFree := conn.LocalState() == EndpointClosed

	h.observer.OnConnectionError(condition)

	if shouldFree {
		freeConnection(ctx, conn)
	}
}

// onConnectionLocalClose releases the connection when the remote end already
// closed; otherwise the remote close or a transport error finishes teardown.
func (h *connectionHandler) onConnectionLocalClose(ctx context.Context, e Event) {
	conn := e.Connection()

	logrus.
		WithContext(ctx).
		WithField("remoteState", conn.RemoteState().String()).
		Debug("busmq connection closed locally")

	if conn.RemoteState() != EndpointClosed {
		return
	}

	// The remote end closed first, so no further events will arrive for this
	// connection; unbind the transport or the socket outlives the handle.
	if transport := conn.Transport(); transport != nil {
		transport.Unbind()
	}

	freeConnection(ctx, conn)
}

// onConnectionFinal records the terminal event. No further events follow.
func (h *connectionHandler) onConnectionFinal(ctx context.Context, e Event) {
	logrus.
		WithContext(ctx).
		WithField("hostname", e.Connection().Hostname()).
		Debug("busmq connection reached its final event")
}

// onTransportError forwards the transport failure and releases the
// connection: transport failures are always terminal.
func (h *connectionHandler) onTransportError(ctx context.Context, e Event) {
	var condition *ErrorCondition
	if transport := e.Transport(); transport != nil {
		condition = transport.Condition()
	}

	if condition != nil {
		trace.SpanFromContext(ctx).RecordError(condition)
		logrus.
			WithContext(ctx).
			WithFields(logrus.Fields{
				"condition":   string(condition.Condition),
				"description": condition.Description,
			}).
			Error("busmq transport failed")
	} else {
		logrus.WithContext(ctx).Error("busmq transport failed: no description returned")
	}

	h.observer.OnConnectionError(condition)

	freeConnection(ctx, e.Connection())
}

// peerDetails resolves the peer identity for strict hostname verification.
// Other verify modes carry no peer details.
func (h *connectionHandler) peerDetails() *PeerDetails {
	if h.settings.VerifyMode != VerifyPeerName {
		return nil
	}

	return &PeerDetails{
		Host: h.observer.HostName(),
		Port: h.settings.Port,
	}
}

// freeConnection releases the engine resources behind conn at most once.
// Safe on nil and already-freed connections.
func freeConnection(ctx context.Context, conn Connection) {
	if conn == nil || conn.Freed() {
		return
	}

	conn.Free()
	logrus.WithContext(ctx).Debug("busmq connection resources released")
}
