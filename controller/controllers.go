// controller/controllers.go
package controller

import (
	"github.com/dev-mohitbeniwal/postcache/service"
	"github.com/dev-mohitbeniwal/postcache/util"
)

type Controllers struct {
	Post   *PostController
	User   *UserController
	Cache  *CacheController
	Health *HealthController
}

func InitializeControllers(services *service.Services, validationUtil *util.ValidationUtil) *Controllers {
	return &Controllers{
		Post:   NewPostController(services.Post, validationUtil),
		User:   NewUserController(services.User, validationUtil),
		Cache:  NewCacheController(services.Cache, services.Post, services.User, validationUtil),
		Health: NewHealthController(),
	}
}
