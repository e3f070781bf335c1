// router/router.go

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/postcache/controller"
	"github.com/dev-mohitbeniwal/postcache/middleware"
)

type Options struct {
	Limiter           middleware.Limiter
	RateLimitRequests int
	RateLimitDuration time.Duration
	JWTSecret         string
	RequiredGroups    []string
}

// SetupRouter mounts every controller under /api/v1. Write and admin routes
// sit behind the group auth middleware.
func SetupRouter(controllers *controller.Controllers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	if opts.Limiter != nil {
		router.Use(middleware.RateLimiter(opts.Limiter, opts.RateLimitRequests, opts.RateLimitDuration))
	}

	api := router.Group("/api/v1")
	protected := api.Group("", middleware.GroupAuthMiddleware(opts.JWTSecret, opts.RequiredGroups))

	controllers.Health.RegisterRoutes(api)
	controllers.Post.RegisterRoutes(api, protected)
	controllers.User.RegisterRoutes(api)
	controllers.Cache.RegisterRoutes(api, protected)

	return router
}
