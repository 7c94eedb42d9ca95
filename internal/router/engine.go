package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-devconnector/internal/container"
	"github.com/oksasatya/go-devconnector/internal/interface/middleware"
	"github.com/oksasatya/go-devconnector/pkg/validation"
)

// NewEngine builds the gin engine with global middleware and every module registered.
func NewEngine() (*gin.Engine, Services, error) {
	cfg := container.GetConfig()
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	origins := cfg.CORSOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:    origins,
		AllowAllOrigins: len(origins) == 0,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", cfg.AuthHeader, middleware.RequestIDHeader},
		ExposeHeaders:   []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(container.GetLogger()))
	}

	reg := NewRegistry(r)
	svc, err := InitModules(reg)
	if err != nil {
		return nil, Services{}, err
	}
	reg.RegisterAll()
	container.GetLogger().WithField("routes", reg.Routes()).Debug("routes mounted")
	return r, svc, nil
}
