// Copyright (c) 2025, The GoKit Authors
// MIT License
// All rights reserved.

package busmq

type (
	// EventType tags a lifecycle event delivered by the reactor.
	EventType int

	// Event is a single connection or transport lifecycle notification. The
	// reactor assembles events and delivers them one at a time; the entities
	// an event does not involve are nil.
	Event struct {
		eventType  EventType
		connection Connection
		transport  Transport
		reactor    Reactor
	}

	// EventHandler defines the interface for reacting to lifecycle events.
	// Implementations dispatch on Event.Type and must not block: they share
	// the reactor goroutine with every other connection.
	EventHandler interface {
		// HandleEvent processes one lifecycle event. Side effects only;
		// failures are forwarded through observers, never returned or panicked.
		HandleEvent(e Event)
	}
)

const (
	// EventConnectionInit fires when the reactor creates the connection, before any I/O.
	EventConnectionInit EventType = iota + 1

	// EventConnectionBound fires when a transport is bound to the connection.
	EventConnectionBound

	// EventConnectionRemoteOpen fires when the peer's open frame arrives.
	EventConnectionRemoteOpen

	// EventConnectionRemoteClose fires when the peer's close frame arrives.
	EventConnectionRemoteClose

	// EventConnectionLocalClose fires when the local endpoint issues its close.
	EventConnectionLocalClose

	// EventConnectionFinal fires after the connection is released; it is the
	// last event delivered for a connection.
	EventConnectionFinal

	// EventTransportError fires when the transport fails fatally.
	EventTransportError
)

// NewEvent assembles an event for delivery to an EventHandler. It is exported
// for reactors and for test doubles that drive a handler directly.
func NewEvent(eventType EventType, conn Connection, transport Transport, reactor Reactor) Event {
	return Event{
		eventType:  eventType,
		connection: conn,
		transport:  transport,
		reactor:    reactor,
	}
}

// Type returns the event's type tag.
func (e Event) Type() EventType {
	return e.eventType
}

// Connection returns the connection the event involves, or nil.
func (e Event) Connection() Connection {
	return e.connection
}

// Transport returns the transport the event involves, or nil.
func (e Event) Transport() Transport {
	return e.transport
}

// Reactor returns the reactor that delivered the event, or nil.
func (e Event) Reactor() Reactor {
	return e.reactor
}

// String returns the name of the event's type.
func (e Event) String() string {
	return e.eventType.String()
}

// String returns the hyphenated lowercase name of the event type.
func (t EventType) String() string {
	switch t {
	case EventConnectionInit:
		return "connection-init"
	case EventConnectionBound:
		return "connection-bound"
	case EventConnectionRemoteOpen:
		return "connection-remote-open"
	case EventConnectionRemoteClose:
		return "connection-remote-close"
	case EventConnectionLocalClose:
		return "connection-local-close"
	case EventConnectionFinal:
		return "connection-final"
	case EventTransportError:
		return "transport-error"
	default:
		return "unknown"
	}
}
