package common

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipeByteArray(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"password", []byte("pw123")},
		{"binary", []byte{0xff, 0x00, 0x7f, 0x10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			WipeByteArray(tt.in)
			for i, b := range tt.in {
				assert.Zero(t, b, "byte %d", i)
			}
		})
	}
}

func TestWipeByteArray_SharedBacking(t *testing.T) {
	buf := []byte("user|secret")
	WipeByteArray(buf[5:])

	assert.Equal(t, []byte("user|"), buf[:5])
	assert.True(t, bytes.Equal(buf[5:], make([]byte, 6)))
}

func TestGenerateRandByteArray(t *testing.T) {
	a := GenerateRandByteArray(16)
	b := GenerateRandByteArray(16)

	require.Len(t, a, 16)
	require.Len(t, b, 16)
	assert.NotEqual(t, a, b, "two 16-byte salts collided")
	assert.Empty(t, GenerateRandByteArray(0))
}

func TestErrors_KindsAreDistinct(t *testing.T) {
	kinds := []error{
		ErrUsernameTaken, ErrInvalidCredentials, ErrUserNotFound,
		ErrMalformedRecord, ErrStorageUnavailable, ErrInvalidInput,
	}
	for i, a := range kinds {
		wrapped := fmt.Errorf("%w: append database.txt: disk full", a)
		for j, b := range kinds {
			assert.Equal(t, i == j, errors.Is(wrapped, b), "%v vs %v", a, b)
		}
	}
}
