// Package router wires the partner endpoints onto the gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	basePath   string
	auth       gin.HandlerFunc
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithBasePath overrides the partner API base path
func WithBasePath(basePath string) RouterOption {
	return func(r *Router) {
		r.basePath = basePath
	}
}

// NewRouter creates a new Router. auth guards every partner route; the
// health endpoint stays public.
func NewRouter(engine *gin.Engine, auth gin.HandlerFunc, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		basePath:   "/api/holo",
		auth:       auth,
		registrars: make([]RouteRegistrar, 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group(r.basePath, r.auth)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}
