package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/haiderzaidi/allaboutme/internal/common"
	"github.com/haiderzaidi/allaboutme/internal/idgen"
	"github.com/haiderzaidi/allaboutme/internal/server/users"
)

// signedClaims is the JWT payload for SignedCodec. It carries the same
// identity claims as the legacy format plus the registered expiry.
type signedClaims struct {
	jwt.RegisteredClaims
	SessionID     string    `json:"sessionId"`
	UserID        string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	UserCreatedAt time.Time `json:"userCreatedAt"`
}

// SignedCodec encodes claims as an HS256-signed JWT.
type SignedCodec struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func (c *SignedCodec) Issue(user *users.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, signedClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(c.now().Add(c.validity)),
			IssuedAt:  jwt.NewNumericDate(c.now()),
		},
		SessionID:     idgen.NewSessionID(),
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.FullName,
		UserCreatedAt: user.CreatedAt,
	})

	return token.SignedString(c.secret)
}

func (c *SignedCodec) Decode(tokenString string) (*Claims, error) {
	claims := &signedClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrorInvalidToken
	}

	out := &Claims{
		SessionID:     claims.SessionID,
		UserID:        claims.UserID,
		Email:         claims.Email,
		Name:          claims.Name,
		UserCreatedAt: claims.UserCreatedAt,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time.UnixMilli()
	}
	return out, nil
}
