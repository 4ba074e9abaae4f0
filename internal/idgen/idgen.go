// Package idgen produces and validates the short prefixed identifiers that
// serve as external primary keys, e.g. "user_k7x9m2p4" or "mem_a5b8c3d1".
package idgen

import (
	"crypto/rand"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Entity prefixes.
const (
	PrefixUser    = "user"
	PrefixMemory  = "mem"
	PrefixSession = "sess"
)

// Suffix lengths per entity kind.
const (
	UserSuffixLen    = 8
	MemorySuffixLen  = 8
	SessionSuffixLen = 12

	// MinSuffixLen is the shortest suffix Validate accepts. Shorter than the
	// generated lengths so identifiers minted by earlier data migrations
	// remain valid.
	MinSuffixLen = 6
)

// randomString returns n characters drawn uniformly from the lowercase
// alphanumeric alphabet.
func randomString(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform RNG is broken; nothing
		// sensible can continue from here.
		panic(err)
	}
	var sb strings.Builder
	sb.Grow(n)
	for _, c := range b {
		sb.WriteByte(alphabet[int(c)%len(alphabet)])
	}
	return sb.String()
}

// Generate returns a fresh identifier "<prefix>_<random>" with a suffix of
// the given length. It performs no collision check; uniqueness is enforced
// by the storage layer's indexes.
func Generate(prefix string, length int) string {
	return prefix + "_" + randomString(length)
}

// NewUserID returns a fresh user identifier.
func NewUserID() string {
	return Generate(PrefixUser, UserSuffixLen)
}

// NewMemoryID returns a fresh memory identifier.
func NewMemoryID() string {
	return Generate(PrefixMemory, MemorySuffixLen)
}

// NewSessionID returns a fresh session identifier.
func NewSessionID() string {
	return Generate(PrefixSession, SessionSuffixLen)
}

// Validate reports whether id is a well-formed identifier. It must split
// into exactly two "_"-separated parts with a non-empty prefix and a
// lowercase alphanumeric suffix of at least MinSuffixLen characters.
// When expectedPrefix is non-empty the prefix must match it exactly.
func Validate(id string, expectedPrefix string) bool {
	parts := strings.Split(id, "_")
	if len(parts) != 2 {
		return false
	}

	prefix, suffix := parts[0], parts[1]
	if prefix == "" {
		return false
	}
	if expectedPrefix != "" && prefix != expectedPrefix {
		return false
	}

	if len(suffix) < MinSuffixLen {
		return false
	}
	for i := 0; i < len(suffix); i++ {
		c := suffix[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// Prefix extracts the entity prefix of a valid identifier. It returns
// false if the identifier is malformed.
func Prefix(id string) (string, bool) {
	if !Validate(id, "") {
		return "", false
	}
	return strings.SplitN(id, "_", 2)[0], true
}
