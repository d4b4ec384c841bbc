// Copyright (c) 2025, The GoKit Authors
// MIT License
// All rights reserved.

package busmq

import (
	"fmt"
	"runtime"

	orderedmap "github.com/wk8/go-ordered-map"
)

type (
	// Symbol is an AMQP symbolic constant. Condition codes and connection
	// property keys are symbols on the wire.
	Symbol string

	// Properties is an ordered mapping of symbols to values advertised to the
	// remote peer on the open frame. Insertion order is preserved: the peer
	// receives the map as a sequence of fields, in the order they were set.
	Properties struct {
		entries *orderedmap.OrderedMap
	}
)

// Capability property keys stamped on every connection during initialization.
const (
	PropertyProduct  Symbol = "product"
	PropertyVersion  Symbol = "version"
	PropertyPlatform Symbol = "platform"
)

// ProductName and ClientVersion identify this client library to the remote
// peer. They are fixed at build time and not user configurable.
const (
	ProductName   = "goxkit-busmq"
	ClientVersion = "1.3.0"
)

// PlatformInfo describes the runtime this client build targets.
var PlatformInfo = fmt.Sprintf("arch:%s;os:%s;golang:%s", runtime.GOARCH, runtime.GOOS, runtime.Version())

// NewProperties creates an empty ordered property map.
func NewProperties() *Properties {
	return &Properties{entries: orderedmap.New()}
}

// Set stores value under key. A key keeps its original position when set
// again. Returns the Properties to allow chaining.
func (p *Properties) Set(key Symbol, value any) *Properties {
	p.entries.Set(key, value)
	return p
}

// Get returns the value stored under key and whether the key is present.
func (p *Properties) Get(key Symbol) (any, bool) {
	return p.entries.Get(key)
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	return p.entries.Len()
}

// Keys returns the property keys in insertion order.
func (p *Properties) Keys() []Symbol {
	keys := make([]Symbol, 0, p.entries.Len())
	for pair := p.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key.(Symbol))
	}
	return keys
}

// defaultProperties builds the fixed client identification advertised on
// every connection: product, version and platform, in that order.
func defaultProperties() *Properties {
	return NewProperties().
		Set(PropertyProduct, ProductName).
		Set(PropertyVersion, ClientVersion).
		Set(PropertyPlatform, PlatformInfo)
}
