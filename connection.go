// Copyright (c) 2025, The GoKit Authors
// MIT License
// All rights reserved.

package busmq

type (
	// EndpointState is the open/close state of one side of a connection
	// endpoint as tracked by the protocol engine.
	EndpointState int

	// Connection defines the interface for the engine's handle of a single
	// AMQP connection. It abstracts the protocol engine entity that carries
	// all mutable per-connection state; handlers read and drive it inside
	// event callbacks and hold no reference to it between events.
	Connection interface {
		// Hostname returns the peer hostname advertised on the open frame.
		Hostname() string

		// SetHostname sets the peer hostname advertised on the open frame.
		SetHostname(hostname string)

		// ContainerID returns the container id advertised on the open frame.
		ContainerID() string

		// SetContainerID sets the container id advertised on the open frame.
		SetContainerID(id string)

		// RemoteContainerID returns the container id the peer advertised.
		// It is empty until the remote open frame arrives.
		RemoteContainerID() string

		// Properties returns the capability properties advertised on the open
		// frame, or nil when none were set.
		Properties() *Properties

		// SetProperties sets the capability properties advertised on the open frame.
		SetProperties(properties *Properties)

		// RemoteProperties returns the capability properties the peer
		// advertised, or nil until the remote open frame arrives.
		RemoteProperties() *Properties

		// Open requests the protocol-level open of the local endpoint.
		Open()

		// Close requests the protocol-level close of the local endpoint.
		Close()

		// LocalState reports the state of the local endpoint.
		LocalState() EndpointState

		// RemoteState reports the state of the remote endpoint.
		// EndpointUninitialized means the remote state is not yet known.
		RemoteState() EndpointState

		// RemoteCondition returns the error condition the peer attached to its
		// close frame, or nil when the peer closed cleanly or has not closed.
		RemoteCondition() *ErrorCondition

		// Transport returns the transport currently bound to this connection,
		// or nil when no transport is bound.
		Transport() Transport

		// Free releases the engine resources backing this connection. The
		// handle must not be driven afterwards.
		Free()

		// Freed checks if the connection resources were already released.
		Freed() bool
	}

	// Transport defines the interface for the byte-stream layer bound to
	// exactly one connection. Its lifecycle nests strictly inside the
	// connection's lifecycle.
	Transport interface {
		// SASL returns the authentication settings negotiated when the
		// transport connects.
		SASL() SASL

		// Secure applies the TLS domain to the transport. Returns an error
		// when the platform's secure transport support is unavailable.
		Secure(domain *TLSDomain) error

		// Unbind detaches the transport from its connection, releasing the
		// underlying socket.
		Unbind()

		// Condition returns the fatal error condition recorded on the
		// transport, or nil when none was recorded.
		Condition() *ErrorCondition
	}

	// SASL defines the interface for the authentication layer of a transport.
	SASL interface {
		// SetMechanisms restricts the mechanisms offered to the peer.
		SetMechanisms(mechanisms ...string)
	}

	// Reactor defines the interface for the event loop that owns connections
	// and delivers their lifecycle events serially, one event per connection
	// at a time.
	Reactor interface {
		// ConnectionAddress returns the network address the reactor resolved
		// for the connection, empty when none is assigned.
		ConnectionAddress(conn Connection) string
	}
)

// Endpoint states. EndpointUninitialized doubles as "unknown" for the remote
// side of a connection whose peer has not opened or closed yet.
const (
	EndpointUninitialized EndpointState = iota
	EndpointActive
	EndpointClosed
)

// SASLMechanismAnonymous is the only mechanism offered to peers.
// Authentication happens above this layer through claims-based tokens.
const SASLMechanismAnonymous = "ANONYMOUS"

// String returns the lowercase name of the endpoint state.
func (s EndpointState) String() string {
	switch s {
	case EndpointUninitialized:
		return "uninitialized"
	case EndpointActive:
		return "active"
	case EndpointClosed:
		return "closed"
	default:
		return "unknown"
	}
}
