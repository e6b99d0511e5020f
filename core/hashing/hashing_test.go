package hashing_test

import (
	"strings"
	"testing"

	"market-tracker/core/hashing"

	"github.com/stretchr/testify/assert"
)

func TestHashDeterministic(t *testing.T) {
	a, err := hashing.HashString("blah")
	assert.NoError(t, err)
	b, err := hashing.HashString("blah")
	assert.NoError(t, err)

	assert.Equal(t, a, b)
	// SHA-256 as lowercase hex.
	assert.Len(t, a, 64)
	assert.Equal(t, strings.ToLower(a), a)
	// Known digest for "blah".
	assert.Equal(t, "8b7df143d91c716ecfa5fc1730022f6b421b05cedee8fd52b1fc65a96030ad52", a)
}

func TestHashDistinctInputs(t *testing.T) {
	a, err := hashing.HashString("key-one")
	assert.NoError(t, err)
	b, err := hashing.HashString("key-two")
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashInputTooLarge(t *testing.T) {
	_, err := hashing.Hash(make([]byte, hashing.MaxInputBytes+1))
	assert.ErrorIs(t, err, hashing.ErrInputTooLarge)

	// Exactly at the limit is fine.
	_, err = hashing.Hash(make([]byte, hashing.MaxInputBytes))
	assert.NoError(t, err)
}

func TestHashEmptyInput(t *testing.T) {
	digest, err := hashing.HashString("")
	assert.NoError(t, err)
	assert.Len(t, digest, 64)
}
