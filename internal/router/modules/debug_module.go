package modules

import (
	"expvar"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-devconnector/pkg/response"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
}

// Health mounts the liveness endpoint. It has no dependencies, so it is a plain route function.
func Health(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "healthy", nil)
	})
}
