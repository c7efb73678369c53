// Package router assembles the versioned API surface from per-context
// route groups.
package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is anything that can mount routes onto a gin group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects registrars and mounts them under /api/<version>.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithAPIVersion overrides the default "v1" path segment.
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a Router on top of the given engine.
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues registrars for Setup. Chainable.
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every queued registrar under the version prefix.
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup is a declarative route list for one bounded context,
// mounted under a shared prefix.
type DomainGroup struct {
	prefix string
	routes []route
}

type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

// NewDomainGroup creates an empty group for the given prefix.
func NewDomainGroup(prefix string) *DomainGroup {
	return &DomainGroup{prefix: prefix}
}

// GET registers a GET route.
func (dg *DomainGroup) GET(path string, handler gin.HandlerFunc) *DomainGroup {
	return dg.handle("GET", path, handler)
}

// POST registers a POST route.
func (dg *DomainGroup) POST(path string, handler gin.HandlerFunc) *DomainGroup {
	return dg.handle("POST", path, handler)
}

// PUT registers a PUT route.
func (dg *DomainGroup) PUT(path string, handler gin.HandlerFunc) *DomainGroup {
	return dg.handle("PUT", path, handler)
}

// DELETE registers a DELETE route.
func (dg *DomainGroup) DELETE(path string, handler gin.HandlerFunc) *DomainGroup {
	return dg.handle("DELETE", path, handler)
}

func (dg *DomainGroup) handle(method, path string, handler gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: path, handler: handler})
	return dg
}

// RegisterRoutes implements RouteRegistrar.
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	for _, r := range dg.routes {
		group.Handle(r.method, r.path, r.handler)
	}
}
