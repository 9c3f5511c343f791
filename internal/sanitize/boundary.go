// Package sanitize wraps untrusted email content in unpredictable boundary
// markers so the consuming LLM can distinguish verbatim third-party data from
// system-generated structure.
package sanitize

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const boundaryPrefix = "----UNTRUSTED_CONTENT_"

const boundaryRandomBytes = 8

// NewBoundary returns a fresh boundary token: a fixed prefix followed by
// 16 hex characters from a cryptographically secure source. A sender cannot
// pre-embed a matching token in message content, so wrapped regions cannot
// be closed prematurely from the consumer's point of view.
func NewBoundary() string {
	b := make([]byte, boundaryRandomBytes)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Errorf("rand.Read failed: %w", err))
	}

	return boundaryPrefix + hex.EncodeToString(b)
}
