package cryptoutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestHMACSigner_SignVerify(t *testing.T) {
	s, err := NewHMACSigner(testKey())
	require.NoError(t, err)

	msg := []byte("abc.pdf\n1700000000")
	sig := s.Sign(msg)

	assert.Contains(t, sig, "v1.")
	assert.NoError(t, s.Verify(msg, sig))

	// deterministic for the same key
	assert.Equal(t, sig, s.Sign(msg))
}

func TestHMACSigner_RejectsTampering(t *testing.T) {
	s, err := NewHMACSigner(testKey())
	require.NoError(t, err)

	sig := s.Sign([]byte("abc.pdf\n1700000000"))

	tests := []struct {
		name string
		msg  string
		sig  string
	}{
		{name: "different message", msg: "abc.pdf\n1700000001", sig: sig},
		{name: "missing prefix", msg: "abc.pdf\n1700000000", sig: sig[3:]},
		{name: "not base64", msg: "abc.pdf\n1700000000", sig: "v1.***"},
		{name: "empty", msg: "abc.pdf\n1700000000", sig: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Verify([]byte(tt.msg), tt.sig)
			assert.ErrorIs(t, err, ErrBadSignature)
		})
	}
}

func TestHMACSigner_DifferentKeys(t *testing.T) {
	a, err := NewHMACSigner(testKey())
	require.NoError(t, err)
	b, err := NewRandomHMACSigner()
	require.NoError(t, err)

	msg := []byte("payload")
	assert.ErrorIs(t, b.Verify(msg, a.Sign(msg)), ErrBadSignature)
}

func TestNewHMACSigner_InvalidKey(t *testing.T) {
	_, err := NewHMACSigner([]byte("short"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 16 bytes")
}
