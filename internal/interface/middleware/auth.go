package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-devconnector/pkg/response"
)

const (
	CtxUserIDKey = "userID"

	DefaultAuthHeader = "x-auth-token"

	msgNoToken      = "No token, authorization denied"
	msgInvalidToken = "Token is not valid"
)

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth gates a route on a valid token read from header, falling back to
// "Authorization: Bearer". On success the user id is stored under CtxUserIDKey.
func Auth(tokens TokenVerifier, header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultAuthHeader
	}
	return func(c *gin.Context) {
		token := extractToken(c, header)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, msgNoToken, nil)
			return
		}
		userID, err := tokens.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, msgInvalidToken, nil)
			return
		}
		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

func extractToken(c *gin.Context, header string) string {
	if t := strings.TrimSpace(c.GetHeader(header)); t != "" {
		return t
	}
	authz := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(authz) > 7 && strings.EqualFold(authz[:7], "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}

// UserID returns the id set by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserIDKey)
}
