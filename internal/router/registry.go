package router

import "github.com/gin-gonic/gin"

// APIPrefix is the group every module is mounted under.
const APIPrefix = "/api"

// Registry collects group middleware and modules, then mounts them in one pass.
// Middleware added with Use only applies to the API group, not to the engine.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	mounted     bool
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group(APIPrefix)}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll mounts every added module. Later calls are no-ops, since gin panics
// on a route registered twice.
func (r *Registry) RegisterAll() {
	if r.mounted {
		return
	}
	r.mounted = true
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}

// Routes lists "METHOD path" for everything mounted on the engine so far.
func (r *Registry) Routes() []string {
	infos := r.Engine.Routes()
	out := make([]string, 0, len(infos))
	for _, ri := range infos {
		out = append(out, ri.Method+" "+ri.Path)
	}
	return out
}
