package common

import "crypto/rand"

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// It is used to drop passwords from memory once they have been hashed or
// verified.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// GenerateRandByteArray returns size bytes read from crypto/rand.
// It panics if the system random source fails, which leaves the process
// unable to produce password salts anyway.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
