package session

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/haiderzaidi/allaboutme/internal/common"
	"github.com/haiderzaidi/allaboutme/internal/idgen"
	"github.com/haiderzaidi/allaboutme/internal/server/users"
)

// LegacyCodec encodes claims as base64(JSON) with no integrity protection.
type LegacyCodec struct {
	validity time.Duration
	now      func() time.Time
}

func (c *LegacyCodec) Issue(user *users.User) (string, error) {
	claims := &Claims{
		SessionID:     idgen.NewSessionID(),
		UserID:        user.ID,
		Email:         user.Email,
		Name:          user.FullName,
		ExpiresAt:     c.now().Add(c.validity).UnixMilli(),
		UserCreatedAt: user.CreatedAt,
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

func (c *LegacyCodec) Decode(token string) (*Claims, error) {
	payload, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, common.ErrorInvalidToken
	}

	claims := &Claims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		return nil, common.ErrorInvalidToken
	}

	if claims.ExpiresAt <= c.now().UnixMilli() {
		return nil, common.ErrorInvalidToken
	}

	return claims, nil
}
