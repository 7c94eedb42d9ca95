package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-devconnector/internal/interface/http"
)

// UserModule wires identity registration and listing.
// Public: POST /api/users, GET /api/users
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Register)
	rg.GET("/users", m.Handler.List)
}
