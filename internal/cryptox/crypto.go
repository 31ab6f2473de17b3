// Package cryptox implements the salted one-way password hashing used by the
// credential store.
//
// New hashes are argon2id and are encoded as
//
//	argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// with salt and key in unpadded standard base64. The encoding never contains
// the record delimiter '|'. VerifyPassword additionally accepts the
// pbkdf2 and scrypt encodings written by earlier versions of the tool, so
// existing credential files keep working.
package cryptox

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/volt/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// Bounds for parameters read from stored hashes. x/crypto panics on zero
// rounds, zero lanes or an empty key and allocates whatever memory cost it
// is given.
const (
	maxArgonMemory  = 1 << 20 // KiB
	maxArgonTime    = 16
	minKeyLen       = 4
	maxKeyLen       = 128
	maxPBKDF2Rounds = 5_000_000
	maxScryptN      = 1 << 20
	maxScryptR      = 32
	maxScryptP      = 16
	maxScryptMemory = 256 << 20 // bytes, 128*N*r
)

var b64 = base64.RawStdEncoding

func deriveKey(password, salt []byte, t, m uint32, p uint8, keyLen uint32) []byte {
	return argon2.IDKey(password, salt, t, m, p, keyLen)
}

// HashPassword derives an argon2id key from password and a fresh random salt
// and returns the self-describing encoded form.
func HashPassword(password []byte) string {
	salt := common.GenerateRandByteArray(saltLen)
	key := deriveKey(password, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		b64.EncodeToString(salt), b64.EncodeToString(key))
}

// VerifyPassword reports whether password matches the encoded hash.
//
// A hash that cannot be decoded yields false and an error wrapping
// common.ErrMalformedRecord; a well-formed hash that does not match yields
// false and a nil error.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	encoded = strings.TrimSpace(encoded)
	method, _, _ := strings.Cut(encoded, "$")

	switch {
	case method == "argon2id":
		return verifyArgon2(encoded, password)
	case strings.HasPrefix(method, "pbkdf2:"):
		return verifyPBKDF2(encoded, password)
	case strings.HasPrefix(method, "scrypt:"):
		return verifyScrypt(encoded, password)
	default:
		return false, fmt.Errorf("%w: unknown hash method %q", common.ErrMalformedRecord, method)
	}
}

func verifyArgon2(encoded string, password []byte) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 {
		return false, fmt.Errorf("%w: argon2id hash has %d parts", common.ErrMalformedRecord, len(parts))
	}

	var version int
	if _, err := fmt.Sscanf(parts[1], "v=%d", &version); err != nil || version != argon2.Version {
		return false, fmt.Errorf("%w: unsupported argon2 version %q", common.ErrMalformedRecord, parts[1])
	}

	var (
		m, t uint32
		p    uint8
	)
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false, fmt.Errorf("%w: argon2 params: %v", common.ErrMalformedRecord, err)
	}

	salt, err := b64.DecodeString(parts[3])
	if err != nil {
		return false, fmt.Errorf("%w: argon2 salt: %v", common.ErrMalformedRecord, err)
	}
	key, err := b64.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: argon2 key: %v", common.ErrMalformedRecord, err)
	}

	switch {
	case t < 1 || t > maxArgonTime:
		return false, fmt.Errorf("%w: argon2 time cost %d", common.ErrMalformedRecord, t)
	case p < 1:
		return false, fmt.Errorf("%w: argon2 parallelism %d", common.ErrMalformedRecord, p)
	case m < 8*uint32(p) || m > maxArgonMemory:
		return false, fmt.Errorf("%w: argon2 memory cost %d", common.ErrMalformedRecord, m)
	case len(key) < minKeyLen || len(key) > maxKeyLen:
		return false, fmt.Errorf("%w: argon2 key length %d", common.ErrMalformedRecord, len(key))
	}

	candidate := deriveKey(password, salt, t, m, p, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

// verifyPBKDF2 checks hashes of the form pbkdf2:<digest>[:<iterations>]$<salt>$<hex>.
func verifyPBKDF2(encoded string, password []byte) (bool, error) {
	method, salt, want, err := splitLegacy(encoded)
	if err != nil {
		return false, err
	}

	args := strings.Split(method, ":")
	digest := "sha256"
	if len(args) > 1 {
		digest = args[1]
	}
	iterations := 600000
	if len(args) > 2 {
		iterations, err = strconv.Atoi(args[2])
		if err != nil || iterations <= 0 || iterations > maxPBKDF2Rounds {
			return false, fmt.Errorf("%w: pbkdf2 iterations %q", common.ErrMalformedRecord, args[2])
		}
	}

	var h func() hash.Hash
	switch digest {
	case "sha256":
		h = sha256.New
	case "sha512":
		h = sha512.New
	case "sha1":
		h = sha1.New
	default:
		return false, fmt.Errorf("%w: pbkdf2 digest %q", common.ErrMalformedRecord, digest)
	}

	candidate := pbkdf2.Key(password, []byte(salt), iterations, h().Size(), h)
	return subtle.ConstantTimeCompare(want, candidate) == 1, nil
}

// verifyScrypt checks hashes of the form scrypt:<N>:<r>:<p>$<salt>$<hex>.
func verifyScrypt(encoded string, password []byte) (bool, error) {
	method, salt, want, err := splitLegacy(encoded)
	if err != nil {
		return false, err
	}

	params := []int{32768, 8, 1}
	args := strings.Split(method, ":")[1:]
	for i := 0; i < len(args) && i < len(params); i++ {
		v, err := strconv.Atoi(args[i])
		if err != nil || v <= 0 {
			return false, fmt.Errorf("%w: scrypt parameter %q", common.ErrMalformedRecord, args[i])
		}
		params[i] = v
	}

	n, r, p := params[0], params[1], params[2]
	if n < 2 || n&(n-1) != 0 || n > maxScryptN || r > maxScryptR || p > maxScryptP || 128*n*r > maxScryptMemory {
		return false, fmt.Errorf("%w: scrypt cost N=%d r=%d p=%d", common.ErrMalformedRecord, n, r, p)
	}
	if len(want) > maxKeyLen {
		return false, fmt.Errorf("%w: scrypt key length %d", common.ErrMalformedRecord, len(want))
	}

	candidate, err := scrypt.Key(password, []byte(salt), n, r, p, len(want))
	if err != nil {
		return false, fmt.Errorf("%w: scrypt: %v", common.ErrMalformedRecord, err)
	}
	return subtle.ConstantTimeCompare(want, candidate) == 1, nil
}

func splitLegacy(encoded string) (method, salt string, key []byte, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 {
		return "", "", nil, fmt.Errorf("%w: legacy hash has %d parts", common.ErrMalformedRecord, len(parts))
	}
	key, err = hex.DecodeString(parts[2])
	if err != nil || len(key) == 0 {
		return "", "", nil, fmt.Errorf("%w: legacy hash digest is not hex", common.ErrMalformedRecord)
	}
	return parts[0], parts[1], key, nil
}
