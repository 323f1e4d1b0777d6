package rqid

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLength(t *testing.T) {
	assert.Len(t, New(32), 32)
	assert.Len(t, New(64), 64)
	assert.Len(t, New(33), 33)
}

func TestNewMinimumEntropy(t *testing.T) {
	// short requests are extended so the id never drops below 128 bits
	assert.Len(t, New(8), 32)
	assert.Len(t, New(0), 32)
}

func TestNewIsHex(t *testing.T) {
	_, err := hex.DecodeString(New(32))
	assert.NoError(t, err)
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := New(32)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
