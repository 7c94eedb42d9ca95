package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-devconnector/internal/interface/http"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Gate    gin.HandlerFunc
}

func NewProfileModule(h *handlers.ProfileHandler, gate gin.HandlerFunc) *ProfileModule {
	return &ProfileModule{Handler: h, Gate: gate}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/profile")

	// Public
	g.GET("", m.Handler.List)
	g.GET("/user/:user_id", m.Handler.ByUser)
	g.GET("/search", m.Handler.Search)

	// Protected
	auth := g.Group("")
	auth.Use(m.Gate)
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("", m.Handler.Upsert)
		auth.DELETE("", m.Handler.Delete)
		auth.PUT("/experience", m.Handler.AddExperience)
		auth.DELETE("/experience/:exp_id", m.Handler.RemoveExperience)
		auth.PUT("/education", m.Handler.AddEducation)
		auth.DELETE("/education/:edu_id", m.Handler.RemoveEducation)
	}
}
