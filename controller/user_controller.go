// controller/user_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dev-mohitbeniwal/postcache/model"
	"github.com/dev-mohitbeniwal/postcache/service"
	"github.com/dev-mohitbeniwal/postcache/util"
	helper_util "github.com/dev-mohitbeniwal/postcache/util/helper"
)

type UserController struct {
	userService    service.IUserService
	validationUtil *util.ValidationUtil
}

func NewUserController(userService service.IUserService, validationUtil *util.ValidationUtil) *UserController {
	return &UserController{
		userService:    userService,
		validationUtil: validationUtil,
	}
}

func (uc *UserController) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("/:id", uc.GetUser)
		users.GET("", uc.ListUsers)
	}
}

func (uc *UserController) GetUser(c *gin.Context) {
	id, err := uc.validationUtil.ParseID(c.Param("id"))
	if err != nil {
		util.RespondWithLookupError(c, "user", err)
		return
	}

	user, err := uc.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		util.RespondWithLookupError(c, "user", err)
		return
	}

	c.JSON(http.StatusOK, model.NewUserResponse(*user))
}

func (uc *UserController) ListUsers(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	users, err := uc.userService.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		util.RespondWithLookupError(c, "users", err)
		return
	}

	c.JSON(http.StatusOK, model.NewUserResponses(users))
}
