package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/postcache/audit"
	"github.com/dev-mohitbeniwal/postcache/cache"
	"github.com/dev-mohitbeniwal/postcache/client"
	"github.com/dev-mohitbeniwal/postcache/config"
	"github.com/dev-mohitbeniwal/postcache/controller"
	"github.com/dev-mohitbeniwal/postcache/db"
	logger "github.com/dev-mohitbeniwal/postcache/logging"
	"github.com/dev-mohitbeniwal/postcache/middleware"
	"github.com/dev-mohitbeniwal/postcache/model"
	"github.com/dev-mohitbeniwal/postcache/router"
	"github.com/dev-mohitbeniwal/postcache/service"
	"github.com/dev-mohitbeniwal/postcache/storage"
	"github.com/dev-mohitbeniwal/postcache/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	cfg := config.GetConfig()

	// Initialize logger
	logger.InitLogger(cfg.Log.Dir)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backends := &tierBackends{
		names:           cfg.Cache.Tiers,
		redisPrefix:     cfg.Redis.Prefix,
		encryptionKey:   []byte(cfg.Redis.EncryptionKey),
		s3Bucket:        cfg.S3.Bucket,
		s3Prefix:        cfg.S3.Prefix,
		cleanupInterval: cfg.Cache.Memory.CleanupInterval,
	}

	// Initialize Redis when it backs a cache tier or the rate limiter
	var limiter middleware.Limiter
	if backends.uses(tierRedis) || cfg.RateLimit.Requests > 0 {
		if err := db.InitRedis(); err != nil {
			if backends.uses(tierRedis) {
				logger.Fatal("Failed to initialize Redis", zap.Error(err))
			}
			logger.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		} else {
			defer db.CloseRedis()
			backends.redis = db.RedisClient
			if cfg.RateLimit.Requests > 0 {
				limiter = db.NewRedisRateLimiter(db.RedisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)
			}
		}
	}

	// Initialize Neo4j
	if backends.uses(tierNeo4j) {
		if err := db.InitNeo4j(); err != nil {
			logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
		}
		defer db.CloseNeo4j()
		backends.neo4j = db.NewNeo4jQuerier(db.Neo4jDriver, cfg.Neo4j.Database)
	}

	// Initialize S3
	if backends.uses(tierS3) {
		s3Client, err := storage.NewS3Client(ctx, storage.ClientOptions{
			Region:       cfg.S3.Region,
			Endpoint:     cfg.S3.Endpoint,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
		if err != nil {
			logger.Fatal("Failed to initialize S3", zap.Error(err))
		}
		backends.s3 = s3Client
	}

	// Initialize EventBus
	eventBus := util.NewEventBus()
	eventBus.Start(ctx)

	// Initialize audit
	var auditService audit.Service
	if cfg.Audit.Enabled {
		auditRepository, err := audit.NewElasticsearchRepository(cfg.Elasticsearch.URL, cfg.Audit.Index)
		if err != nil {
			logger.Fatal("Failed to initialize audit repository", zap.Error(err))
		}
		auditService = audit.NewService(auditRepository)
	}

	// Initialize source clients
	sourceClient := client.NewClient(client.Options{
		BaseURL:         cfg.Source.BaseURL,
		ResponseTimeout: cfg.Source.ResponseTimeout,
		ConnectTimeout:  cfg.Source.ConnectTimeout,
		RetryMax:        cfg.Source.RetryMax,
	})
	postClient := client.NewPostClient(sourceClient)
	userClient := client.NewUserClient(sourceClient)

	validationUtil := util.NewValidationUtil()

	// Initialize caches
	lookups, err := buildLookups(ctx, cfg, backends, postClient, userClient, validationUtil, eventBus, auditService != nil)
	if err != nil {
		logger.Fatal("Failed to initialize caches", zap.Error(err))
	}

	// Initialize services and controllers
	services := service.InitializeServices(
		lookups,
		postClient,
		auditService,
		validationUtil,
		util.NewNotificationService(),
		eventBus,
	)
	controllers := controller.InitializeControllers(services, validationUtil)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(controllers, router.Options{
		Limiter:           limiter,
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitDuration: cfg.RateLimit.Window,
		JWTSecret:         cfg.Auth.JWTSecret,
		RequiredGroups:    cfg.Auth.RequiredGroups,
	})

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	// Let in-flight audit and notification handlers finish
	eventBus.Wait()
	logger.Info("Server exiting")
}

func buildLookups(
	ctx context.Context,
	cfg *config.Configuration,
	backends *tierBackends,
	postClient client.IPostClient,
	userClient client.IUserClient,
	validationUtil *util.ValidationUtil,
	eventBus *util.EventBus,
	audited bool,
) (service.Lookups, error) {
	common := []cache.Option{
		cache.WithSingleFlight(cfg.Cache.SingleFlight),
		cache.WithAsyncPopulate(cfg.Cache.AsyncPopulate),
	}
	byID := append([]cache.Option{
		cache.WithTTL(cfg.Cache.DefaultTTL),
		cache.WithKeyValidator(validationUtil.ValidateID),
	}, common...)
	listing := append([]cache.Option{cache.WithTTL(cfg.Cache.ListTTL)}, common...)
	if audited {
		byID = append(byID, cache.WithLookupHook(service.LookupEventHook[int64](eventBus)))
		listing = append(listing, cache.WithLookupHook(service.LookupEventHook[string](eventBus)))
	}

	postStore, err := buildStore[int64, model.Post](ctx, backends, "post")
	if err != nil {
		return service.Lookups{}, err
	}
	postListStore, err := buildStore[string, []model.Post](ctx, backends, "posts")
	if err != nil {
		return service.Lookups{}, err
	}
	userStore, err := buildStore[int64, model.User](ctx, backends, "user")
	if err != nil {
		return service.Lookups{}, err
	}
	userListStore, err := buildStore[string, []model.User](ctx, backends, "users")
	if err != nil {
		return service.Lookups{}, err
	}

	return service.Lookups{
		Posts:    cache.New(postStore, service.NewPostLoader(postClient), withName("posts", byID)...),
		PostList: cache.New(postListStore, service.NewPostListLoader(postClient), withName("post-list", listing)...),
		Users:    cache.New(userStore, service.NewUserLoader(userClient), withName("users", byID)...),
		UserList: cache.New(userListStore, service.NewUserListLoader(userClient), withName("user-list", listing)...),
	}, nil
}

func withName(name string, opts []cache.Option) []cache.Option {
	return append([]cache.Option{cache.WithName(name)}, opts...)
}
