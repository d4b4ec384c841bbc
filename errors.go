// Copyright (c) 2025, The GoKit Authors
// MIT License
// All rights reserved.

package busmq

import "fmt"

// Error conditions the AMQP specification defines for connection-level
// failures, plus the generic conditions this package forwards to observers.
const (
	ConditionInternalError    Symbol = "amqp:internal-error"
	ConditionNotFound         Symbol = "amqp:not-found"
	ConditionUnauthorized     Symbol = "amqp:unauthorized-access"
	ConditionDecodeError      Symbol = "amqp:decode-error"
	ConditionNotAllowed       Symbol = "amqp:not-allowed"
	ConditionIllegalState     Symbol = "amqp:illegal-state"
	ConditionConnectionForced Symbol = "amqp:connection:forced"
	ConditionFramingError     Symbol = "amqp:connection:framing-error"
	ConditionRedirect         Symbol = "amqp:connection:redirect"
)

// ErrorCondition is the protocol-level error attached to a close performative
// or a transport failure: a symbolic condition code plus a human readable
// description. It implements the error interface so it can be logged, wrapped
// and recorded like any other Go error.
type ErrorCondition struct {
	Condition   Symbol
	Description string
}

// NewErrorCondition creates a new ErrorCondition with the provided code and description.
func NewErrorCondition(condition Symbol, description string) *ErrorCondition {
	return &ErrorCondition{Condition: condition, Description: description}
}

// Error implements the error interface.
func (c *ErrorCondition) Error() string {
	return fmt.Sprintf("%s: %s", c.Condition, c.Description)
}

// BusMQError represents a custom error type for connection lifecycle operations.
// It encapsulates an error message describing the specific error condition.
type BusMQError struct {
	Message string
}

// NewBusMQError creates a new BusMQError instance with the provided message.
// Returns the error as an error interface.
func NewBusMQError(msg string) *BusMQError {
	return &BusMQError{Message: msg}
}

// Error implements the error interface and returns the error message.
func (e *BusMQError) Error() string {
	return e.Message
}

var (
	// systemRootsError is a function that wraps a platform trust store failure into a BusMQError.
	systemRootsError = func(err error) error { return NewBusMQError(err.Error()) }

	// peerCertificateParseError is a function that wraps a malformed peer certificate into a BusMQError.
	peerCertificateParseError = func(err error) error { return NewBusMQError(err.Error()) }

	// certificateChainError is a function that wraps a rejected certificate chain into a BusMQError.
	certificateChainError = func(err error) error { return NewBusMQError(err.Error()) }

	// NullableTransportError is returned when a transport operation is attempted on a nil transport.
	NullableTransportError = NewBusMQError("transport cant be null")

	// EmptyConnectionAddressError is returned when the reactor resolves no address for a connection being initialized.
	EmptyConnectionAddressError = NewBusMQError("reactor resolved an empty address for the connection")

	// NoPeerCertificateError is returned during verification when the peer presents no certificate.
	NoPeerCertificateError = NewBusMQError("peer presented no certificate")

	// MissingPeerDetailsError is returned when strict hostname verification is requested without peer details.
	MissingPeerDetailsError = NewBusMQError("peer details are required for strict hostname verification")
)
