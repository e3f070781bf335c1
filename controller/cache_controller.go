// controller/cache_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/postcache/service"
	"github.com/dev-mohitbeniwal/postcache/util"
	helper_util "github.com/dev-mohitbeniwal/postcache/util/helper"
)

// DefaultAuditWindow is the range queried when no from/to is given.
const DefaultAuditWindow = time.Hour

type CacheController struct {
	cacheService   service.ICacheService
	postService    service.IPostService
	userService    service.IUserService
	validationUtil *util.ValidationUtil
	now            func() time.Time
}

func NewCacheController(
	cacheService service.ICacheService,
	postService service.IPostService,
	userService service.IUserService,
	validationUtil *util.ValidationUtil,
) *CacheController {
	return &CacheController{
		cacheService:   cacheService,
		postService:    postService,
		userService:    userService,
		validationUtil: validationUtil,
		now:            time.Now,
	}
}

func (cc *CacheController) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/cache/stats", cc.GetStats)

	admin := protected.Group("/cache")
	{
		admin.DELETE("/posts/:id", cc.InvalidatePost)
		admin.DELETE("/users/:id", cc.InvalidateUser)
		admin.GET("/audit", cc.GetAuditLogs)
	}
}

func (cc *CacheController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"caches": cc.cacheService.Stats()})
}

func (cc *CacheController) InvalidatePost(c *gin.Context) {
	id, err := cc.validationUtil.ParseID(c.Param("id"))
	if err != nil {
		util.RespondWithLookupError(c, "post", err)
		return
	}

	if err := cc.postService.InvalidatePost(c.Request.Context(), id); err != nil {
		util.RespondWithLookupError(c, "post", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (cc *CacheController) InvalidateUser(c *gin.Context) {
	id, err := cc.validationUtil.ParseID(c.Param("id"))
	if err != nil {
		util.RespondWithLookupError(c, "user", err)
		return
	}

	if err := cc.userService.InvalidateUser(c.Request.Context(), id); err != nil {
		util.RespondWithLookupError(c, "user", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAuditLogs endpoint
func (cc *CacheController) GetAuditLogs(c *gin.Context) {
	from, to, err := helper_util.GetTimeRange(c, DefaultAuditWindow, cc.now())
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	logs, err := cc.cacheService.AuditLogs(c.Request.Context(), from, to, c.Query("cache"), c.Query("key"))
	if err != nil {
		if errors.Is(err, service.ErrAuditDisabled) {
			util.RespondWithError(c, http.StatusNotFound, err.Error(), err)
			return
		}
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit logs", err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
