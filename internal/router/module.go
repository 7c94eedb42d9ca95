package router

import "github.com/gin-gonic/gin"

// Module mounts one feature's routes under the /api group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// ModuleFunc lets a bare route function stand in for a Module.
type ModuleFunc func(rg *gin.RouterGroup)

func (f ModuleFunc) Register(rg *gin.RouterGroup) { f(rg) }
