package main

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSha256Verifier(t *testing.T) {
	body := []byte("crate archive bytes")
	sum := sha256.Sum256(body)

	verifier, err := NewSha256Verifier(hex.EncodeToString(sum[:]))
	require.NoError(t, err)
	assert.NoError(t, verifier.Verify(body))

	var mismatch *Sha256Error
	err = verifier.Verify([]byte("tampered"))
	require.Error(t, err)
	assert.ErrorAs(t, err, &mismatch)
}

func TestNewSha256VerifierBadChecksum(t *testing.T) {
	_, err := NewSha256Verifier("abcd")
	assert.Error(t, err)
}

func TestNoVerifier(t *testing.T) {
	assert.NoError(t, (&NoVerifier{}).Verify([]byte("anything")))
}
