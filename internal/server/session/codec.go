// Package session issues and validates the self-contained bearer tokens that
// carry identity claims. Tokens are stateless: decoding is a pure function of
// the token bytes and the current time, so no session table is needed.
package session

import (
	"fmt"
	"time"

	"github.com/haiderzaidi/allaboutme/internal/server/users"
)

// DefaultValidity is the lifetime of an issued token.
const DefaultValidity = 7 * 24 * time.Hour

// Token modes selectable via configuration.
const (
	ModeLegacy = "legacy"
	ModeSigned = "signed"
)

// Claims is the decoded payload of a session token. The JSON field names
// are part of the token wire format and must not change.
type Claims struct {
	SessionID     string    `json:"sessionId"`
	UserID        string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	ExpiresAt     int64     `json:"exp"` // unix milliseconds
	UserCreatedAt time.Time `json:"createdAt"`
}

// Codec encodes identity claims into an opaque token string and back.
type Codec interface {
	// Issue builds fresh claims for the user and encodes them.
	Issue(user *users.User) (string, error)

	// Decode reverses the encoding. It returns common.ErrorInvalidToken for
	// any malformed, unparsable or expired token, without distinguishing
	// which check failed.
	Decode(token string) (*Claims, error)
}

// New returns the codec for the configured mode.
//
// ModeLegacy is the historical scheme: a base64-encoded JSON payload
// with no signature or MAC. Anyone able to shape the payload can mint a
// valid-looking token; the mode exists for wire-compatibility with tokens
// already in circulation. ModeSigned wraps the same claims in an HS256 JWT.
func New(mode string, secret []byte, validity time.Duration) (Codec, error) {
	if validity <= 0 {
		validity = DefaultValidity
	}
	switch mode {
	case ModeLegacy:
		return &LegacyCodec{validity: validity, now: time.Now}, nil
	case ModeSigned:
		return &SignedCodec{secret: secret, validity: validity, now: time.Now}, nil
	default:
		return nil, fmt.Errorf("unknown token mode %q", mode)
	}
}
