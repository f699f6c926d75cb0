// Package api serves path searches over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pfrederiksen/six-degrees/internal/cache"
	"github.com/pfrederiksen/six-degrees/internal/search"
)

// RouterDeps holds everything the handlers need
type RouterDeps struct {
	Engine   *search.Engine
	Checker  *search.Checker
	Store    cache.Store
	Language string
	Version  string
	// Timeout bounds a single request's search time. Zero means no bound.
	Timeout time.Duration
}

// NewRouter creates the gin engine with middleware and routes
func NewRouter(deps *RouterDeps) http.Handler {
	r := gin.New()
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds
	r.Use(requestID())
	r.Use(accessLog())
	r.Use(gin.Recovery())
	r.Use(prometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	registerRoutes(r.Group("/api/v1"), deps)
	return r
}

func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	health := NewHealthHandler(deps.Store, deps.Version)
	paths := NewPathHandler(deps.Engine, deps.Checker, deps.Language, deps.Timeout)

	api.GET("/health", health.Liveness)
	api.GET("/path", paths.Path)
	api.GET("/degrees", paths.Degrees)
}
