// Package password implements one-way credential hashing with support for
// migrating legacy unsalted hashes to the current versioned format.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	marker        = "PBKDF2$"
	formatTag     = "sha256"
	delimiter     = "$"
	saltLength    = 16
	keyLength     = 32
	iterations    = 150000
	minIterations = 50000
)

// VerifyResult is the outcome of checking a password against a stored credential.
type VerifyResult int

const (
	// Failed means the password does not match or the credential is malformed.
	Failed VerifyResult = iota
	// Success means the password matches the current credential format.
	Success
	// SuccessRehashNeeded means the password matches a legacy credential; the
	// caller should re-hash and persist the upgraded value.
	SuccessRehashNeeded
)

func (r VerifyResult) String() string {
	switch r {
	case Success:
		return "success"
	case SuccessRehashNeeded:
		return "success-rehash-needed"
	default:
		return "failed"
	}
}

// Hash derives a storable credential from a plaintext password. The result
// encodes the format tag, iteration count, salt and derived key so that
// Verify can operate on old credentials after parameters change.
func Hash(password string) string {
	salt := newSalt()
	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return marker + strings.Join([]string{
		formatTag,
		strconv.Itoa(iterations),
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	}, delimiter)
}

// Verify checks a plaintext password against a stored credential. Malformed
// credentials degrade to Failed; Verify never panics on untrusted input.
func Verify(password, stored string) VerifyResult {
	if strings.TrimSpace(stored) == "" {
		return Failed
	}
	if strings.HasPrefix(stored, marker) {
		return verifyVersioned(password, strings.TrimPrefix(stored, marker))
	}
	return verifyLegacy(password, stored)
}

func newSalt() []byte {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		// crypto/rand never fails on supported platforms; treat it as fatal.
		panic("password: read random salt: " + err.Error())
	}
	return salt
}

func verifyVersioned(password, encoded string) VerifyResult {
	parts := strings.Split(encoded, delimiter)
	if len(parts) != 4 {
		return Failed
	}
	iter, err := strconv.Atoi(parts[1])
	if err != nil || iter < minIterations {
		return Failed
	}
	salt, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return Failed
	}
	key, err := base64.StdEncoding.DecodeString(parts[3])
	if err != nil || len(key) == 0 {
		return Failed
	}
	derived := pbkdf2.Key([]byte(password), salt, iter, len(key), sha256.New)
	if subtle.ConstantTimeCompare(derived, key) != 1 {
		return Failed
	}
	return Success
}

// verifyLegacy handles pre-migration credentials: base64 of an unsalted
// SHA-256 digest. The comparison runs over the encoded representations so
// both operands always have the attacker-independent length.
func verifyLegacy(password, stored string) VerifyResult {
	sum := sha256.Sum256([]byte(password))
	encoded := base64.StdEncoding.EncodeToString(sum[:])
	if len(encoded) != len(stored) {
		return Failed
	}
	if subtle.ConstantTimeCompare([]byte(encoded), []byte(stored)) != 1 {
		return Failed
	}
	return SuccessRehashNeeded
}
