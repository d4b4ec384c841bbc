// Copyright (c) 2025, The GoKit Authors
// MIT License
// All rights reserved.

package busmq

import "github.com/sirupsen/logrus"

// Handshaker mirrors the remote peer's endpoint transitions: it opens the
// local endpoint when the peer opens first and closes the local endpoint when
// the peer closes first. Attach it after handlers that need to observe the
// endpoint states an event was delivered with.
type Handshaker struct{}

// NewHandshaker creates a new Handshaker instance.
func NewHandshaker() *Handshaker {
	return &Handshaker{}
}

// HandleEvent mirrors remote open and close events onto the local endpoint.
// All other events pass through untouched.
func (hs *Handshaker) HandleEvent(e Event) {
	conn := e.Connection()
	if conn == nil || conn.Freed() {
		return
	}

	switch e.Type() {
	case EventConnectionRemoteOpen:
		if conn.LocalState() == EndpointUninitialized {
			conn.Open()
			logrus.Debug("busmq handshaker opened the local endpoint")
		}
	case EventConnectionRemoteClose:
		if conn.LocalState() != EndpointClosed {
			conn.Close()
			logrus.Debug("busmq handshaker closed the local endpoint")
		}
	}
}
