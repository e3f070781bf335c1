// controller/post_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	"github.com/dev-mohitbeniwal/postcache/model"
	"github.com/dev-mohitbeniwal/postcache/service"
	"github.com/dev-mohitbeniwal/postcache/util"
	helper_util "github.com/dev-mohitbeniwal/postcache/util/helper"
)

type PostController struct {
	postService    service.IPostService
	validationUtil *util.ValidationUtil
}

func NewPostController(postService service.IPostService, validationUtil *util.ValidationUtil) *PostController {
	return &PostController{
		postService:    postService,
		validationUtil: validationUtil,
	}
}

// RegisterRoutes registers the read routes on public and the write routes on
// protected.
func (pc *PostController) RegisterRoutes(public, protected *gin.RouterGroup) {
	posts := public.Group("/posts")
	{
		posts.GET("/:id", pc.GetPost)
		posts.GET("", pc.ListPosts)
	}

	writes := protected.Group("/posts")
	{
		writes.PUT("/:id", pc.UpdatePost)
		writes.DELETE("/:id", pc.DeletePost)
	}
}

// GetPost endpoint
func (pc *PostController) GetPost(c *gin.Context) {
	id, err := pc.validationUtil.ParseID(c.Param("id"))
	if err != nil {
		util.RespondWithLookupError(c, "post", err)
		return
	}

	post, err := pc.postService.GetPost(c.Request.Context(), id)
	if err != nil {
		util.RespondWithLookupError(c, "post", err)
		return
	}

	c.JSON(http.StatusOK, model.NewPostResponse(*post))
}

// ListPosts serves either a page of the listing or, with ?ids=, a batch lookup
func (pc *PostController) ListPosts(c *gin.Context) {
	if raw, ok := c.GetQuery("ids"); ok {
		pc.getPostsByIDs(c, raw)
		return
	}

	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	posts, err := pc.postService.ListPosts(c.Request.Context(), limit, offset)
	if err != nil {
		util.RespondWithLookupError(c, "posts", err)
		return
	}

	c.JSON(http.StatusOK, model.NewPostResponses(posts))
}

func (pc *PostController) getPostsByIDs(c *gin.Context, raw string) {
	ids, err := pc.validationUtil.ParseIDs(raw)
	if err != nil {
		util.RespondWithLookupError(c, "posts", err)
		return
	}

	posts, err := pc.postService.GetPostsByIDs(c.Request.Context(), ids)
	if err != nil {
		util.RespondWithLookupError(c, "posts", err)
		return
	}

	c.JSON(http.StatusOK, model.NewPostResponses(posts))
}

// UpdatePost endpoint
func (pc *PostController) UpdatePost(c *gin.Context) {
	id, err := pc.validationUtil.ParseID(c.Param("id"))
	if err != nil {
		util.RespondWithLookupError(c, "post", err)
		return
	}

	var update model.PostUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid post data", postcache_errors.ErrInvalidPostData)
		return
	}

	post, err := pc.postService.UpdatePost(c.Request.Context(), id, update)
	if err != nil {
		util.RespondWithLookupError(c, "post", err)
		return
	}

	c.JSON(http.StatusOK, model.NewPostResponse(*post))
}

// DeletePost endpoint
func (pc *PostController) DeletePost(c *gin.Context) {
	id, err := pc.validationUtil.ParseID(c.Param("id"))
	if err != nil {
		util.RespondWithLookupError(c, "post", err)
		return
	}

	if err := pc.postService.DeletePost(c.Request.Context(), id); err != nil {
		util.RespondWithLookupError(c, "post", err)
		return
	}

	c.Status(http.StatusNoContent)
}
