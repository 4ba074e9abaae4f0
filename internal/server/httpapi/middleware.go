package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haiderzaidi/allaboutme/internal/common"
	"github.com/haiderzaidi/allaboutme/internal/server/session"
)

const claimsContextKey = "sessionClaims"

// requestID tags every request with a fresh id for log correlation and
// echoes it back to the caller.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("requestID", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header. An empty
// string means no usable header was present.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader(common.AuthHeaderName)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != common.BearerPrefix {
		return ""
	}
	return parts[1]
}

// authRequired rejects requests without a decodable, unexpired session
// token. Malformed and expired tokens are reported identically.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, err := s.codec.Decode(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// authOptional decodes a session token when one is present but lets the
// request through either way. Handlers behind it serve public data and
// widen their result set for an authenticated owner.
func (s *Server) authOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := s.codec.Decode(token); err == nil {
				c.Set(claimsContextKey, claims)
			}
		}
		c.Next()
	}
}

// requesterClaims returns the decoded claims set by the auth middleware,
// or nil for an unauthenticated request.
func requesterClaims(c *gin.Context) *session.Claims {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*session.Claims)
	if !ok {
		return nil
	}
	return claims
}

// requesterID returns the authenticated user id, or "" when anonymous.
func requesterID(c *gin.Context) string {
	if claims := requesterClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}
