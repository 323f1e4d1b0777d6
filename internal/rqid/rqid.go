// Package rqid generates correlation identifiers for gateway requests.
package rqid

import (
	"crypto/rand"
	"encoding/hex"
)

// minimum id length is 32 hex characters (128 bits of entropy)
const minLen = 32

// New returns unique hex string of n characters for rq_uid/rquid headers.
// The source is crypto/rand, so values are unpredictable and collisions are
// negligible for any realistic call volume. Requests shorter than 32
// characters are extended to 32 to keep full 128 bits.
func New(n int) string {
	if n < minLen {
		n = minLen
	}

	buf := make([]byte, (n+1)/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}

	return hex.EncodeToString(buf)[:n]
}
