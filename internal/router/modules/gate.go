package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
)

// NewGate builds the auth middleware shared by every protected route.
func NewGate(tokens middleware.TokenVerifier, header string) gin.HandlerFunc {
	return middleware.Auth(tokens, header)
}
