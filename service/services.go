// service/services.go
package service

import (
	"github.com/dev-mohitbeniwal/postcache/audit"
	"github.com/dev-mohitbeniwal/postcache/client"
	"github.com/dev-mohitbeniwal/postcache/model"
	"github.com/dev-mohitbeniwal/postcache/util"
)

type Services struct {
	Post  IPostService
	User  IUserService
	Cache ICacheService
}

// Lookups groups the four caches the services read through.
type Lookups struct {
	Posts    Lookup[int64, model.Post]
	PostList Lookup[string, []model.Post]
	Users    Lookup[int64, model.User]
	UserList Lookup[string, []model.User]
}

func InitializeServices(
	lookups Lookups,
	postClient client.IPostClient,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *Services {
	notificationSvc.Register(eventBus)
	if auditService != nil {
		RegisterAuditSubscriber(eventBus, auditService)
	}

	return &Services{
		Post: NewPostService(lookups.Posts, lookups.PostList, postClient, validationUtil, eventBus),
		User: NewUserService(lookups.Users, lookups.UserList, eventBus),
		Cache: NewCacheService(auditService,
			lookups.Posts, lookups.PostList, lookups.Users, lookups.UserList),
	}
}
