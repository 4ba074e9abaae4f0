// Package credentials hashes and verifies user passwords. Plaintext
// passwords never leave this package and are never logged or persisted.
package credentials

import "golang.org/x/crypto/bcrypt"

// DefaultCost keeps a single verification under ~100ms on commodity
// hardware while remaining expensive for offline brute force.
const DefaultCost = 12

// Store applies a salted adaptive-cost one-way hash to passwords.
type Store struct {
	cost int
}

func NewStore(cost int) *Store {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Store{cost: cost}
}

// Hash returns the bcrypt digest of plaintext. The salt is generated per
// call and embedded in the digest.
func (s *Store) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest is
// treated as a mismatch, never as a fault.
func (s *Store) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
