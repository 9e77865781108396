package password

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func TestHashRoundTrip(t *testing.T) {
	for _, pw := range []string{"hunter2", "", "päss wörd ✓", strings.Repeat("x", 1024)} {
		stored := Hash(pw)
		assert.Equal(t, Success, Verify(pw, stored), "password %q", pw)
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	stored := Hash("correct horse")
	assert.Equal(t, Failed, Verify("battery staple", stored))
}

func TestHashFormat(t *testing.T) {
	stored := Hash("secret")
	require.True(t, strings.HasPrefix(stored, "PBKDF2$"))

	parts := strings.Split(strings.TrimPrefix(stored, "PBKDF2$"), "$")
	require.Len(t, parts, 4)
	assert.Equal(t, "sha256", parts[0])
	assert.Equal(t, "150000", parts[1])

	salt, err := base64.StdEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	assert.Len(t, salt, 16)

	key, err := base64.StdEncoding.DecodeString(parts[3])
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

func TestSaltUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		salt := string(newSalt())
		if _, dup := seen[salt]; dup {
			t.Fatalf("salt repeated after %d draws", i)
		}
		seen[salt] = struct{}{}
	}
}

func TestVerifyMalformedStored(t *testing.T) {
	cases := map[string]string{
		"empty":             "",
		"whitespace":        "   ",
		"missing fields":    "PBKDF2$sha256$150000$c2FsdA==",
		"extra fields":      "PBKDF2$sha256$150000$c2FsdA==$a2V5$more",
		"bad iteration":     "PBKDF2$sha256$lots$c2FsdA==$a2V5",
		"bad salt base64":   "PBKDF2$sha256$150000$!!!$a2V5",
		"bad key base64":    "PBKDF2$sha256$150000$c2FsdA==$!!!",
		"empty key":         "PBKDF2$sha256$150000$c2FsdA==$",
		"legacy not base64": "definitely-not-a-hash",
	}
	for name, stored := range cases {
		assert.Equal(t, Failed, Verify("anything", stored), name)
	}
}

func TestVerifyTamperedKey(t *testing.T) {
	stored := Hash("secret")
	parts := strings.Split(stored, "$")
	key, err := base64.StdEncoding.DecodeString(parts[4])
	require.NoError(t, err)
	key[0] ^= 0xff
	parts[4] = base64.StdEncoding.EncodeToString(key)

	assert.Equal(t, Failed, Verify("secret", strings.Join(parts, "$")))
}

func TestVerifyRejectsWeakIterationCount(t *testing.T) {
	// A syntactically valid credential derived with too few iterations must
	// fail even when the key matches that derivation.
	weak := weakCredential("secret", 1000)
	assert.Equal(t, Failed, Verify("secret", weak))
}

func TestVerifyLegacyCredential(t *testing.T) {
	sum := sha256.Sum256([]byte("legacy-pass"))
	legacy := base64.StdEncoding.EncodeToString(sum[:])

	assert.Equal(t, SuccessRehashNeeded, Verify("legacy-pass", legacy))
	assert.Equal(t, Failed, Verify("wrong-pass", legacy))

	// Upgrading the credential yields a plain Success on the next login.
	upgraded := Hash("legacy-pass")
	assert.Equal(t, Success, Verify("legacy-pass", upgraded))
}

// weakCredential builds a credential in the storage format whose key really
// was derived with the given low iteration count, so only the sanity floor
// can reject it.
func weakCredential(password string, iter int) string {
	salt := []byte("0123456789abcdef")
	key := pbkdf2.Key([]byte(password), salt, iter, 32, sha256.New)
	return fmt.Sprintf("PBKDF2$sha256$%d$%s$%s", iter,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key))
}
