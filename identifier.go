// Copyright (c) 2025, The GoKit Authors
// MIT License
// All rights reserved.

package busmq

import "github.com/google/uuid"

// shortIDLength is the number of characters kept from the backing UUID when
// generating container ids. Collisions are statistically negligible within
// practical connection counts and are not defended against.
const shortIDLength = 8

// NewContainerID generates the short random identifier advertised to the
// remote peer as the container id. A fresh value is produced for every
// connection instance.
func NewContainerID() string {
	return uuid.New().String()[:shortIDLength]
}
