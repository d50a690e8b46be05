package utils // package utils provides helpers for salts, credential hashing and verification

import (
	"crypto/rand"    // secure random number generation for salts
	"crypto/sha256"  // SHA-256 as the PBKDF2 digest
	"crypto/subtle"  // constant-time comparison of hashes
	"encoding/hex"   // hex encoding for salts and digests

	"golang.org/x/crypto/pbkdf2" // key derivation for passwords and session tokens
)

// pbkdf2Iters controls the work factor of the derivation.  Changing it
// invalidates every stored password hash and session token, so it is a
// constant rather than configuration.
const pbkdf2Iters = 4096

// Hasher derives password hashes and session tokens.  The secret is
// injected once at construction; combining it with the per-user salt means
// a stolen database is useless for offline cracking unless the secret
// leaks too.
type Hasher struct {
	secret []byte
}

// NewHasher returns a Hasher keyed with the given process secret.
func NewHasher(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

// GenerateSalt returns a hex-encoded string built from 16 bytes of
// cryptographically secure random data.  Collisions across calls are
// negligible.
func (h *Hasher) GenerateSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Hash derives a hex digest from salt and value.  The derivation is
// deterministic for a given secret: the same (salt, value) pair always
// produces the same digest, and it is not invertible without brute force.
// Passwords are hashed with their registration salt; session tokens are
// derived from a fresh salt and the user id.
func (h *Hasher) Hash(salt, value string) string {
	keyed := append([]byte(salt+"/"), h.secret...)
	sum := pbkdf2.Key([]byte(value), keyed, pbkdf2Iters, 32, sha256.New)
	return hex.EncodeToString(sum)
}

// Verify reports whether Hash(salt, value) equals want.  The comparison is
// constant-time so login does not leak how much of a password matched.
func (h *Hasher) Verify(salt, value, want string) bool {
	got := h.Hash(salt, value)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
