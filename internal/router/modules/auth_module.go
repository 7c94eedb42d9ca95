package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-devconnector/internal/interface/http"
)

// AuthModule
// Public: POST /api/auth (login)
// Protected: GET /api/auth (current user)
type AuthModule struct {
	Handler *handlers.AuthHandler
	Gate    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, gate gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Gate: gate}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth", m.Handler.Login)
	rg.GET("/auth", m.Gate, m.Handler.Me)
}
