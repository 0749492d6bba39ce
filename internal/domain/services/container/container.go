package container

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
	"github.com/RealSujal/community-app/internal/infrastructure/mailer"
	"github.com/RealSujal/community-app/internal/infrastructure/storage"
	Logger "github.com/RealSujal/community-app/pkg/logger"
)

// ServiceContainer wires every service of the application
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client
	mailer mailer.Mailer
	files  *storage.FileStore

	// Infrastructure services
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService
	otpService   services.InterfaceOTPService

	// Business services
	authService         services.InterfaceAuthService
	userService         services.InterfaceUserService
	familyService       services.InterfaceFamilyService
	personService       services.InterfacePersonService
	communityService    services.InterfaceCommunityService
	postService         services.InterfacePostService
	eventService        services.InterfaceEventService
	notificationService services.InterfaceNotificationService
	privacyService      services.InterfacePrivacyService
	helpService         services.InterfaceHelpService

	mu sync.RWMutex
}

// NewServiceContainer creates the container. redisClient may be nil unless
// OTP codes are kept in Redis, in which case a client is built from cfg.
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client, m mailer.Mailer) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}
	if cfg == nil {
		panic("config is nil")
	}
	if m == nil {
		panic("mailer is nil")
	}

	if redisClient == nil && cfg.OTPStore == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			Logger.Warning("Redis ping failed: %v", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
		mailer: m,
		files:  storage.NewFileStore(cfg),
	}
	container.initializeServices()
	return container
}

// initializeServices builds all services
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jwtService = services.NewJWTService(c.config)

	var store services.OTPStore
	if c.redis != nil {
		c.redisService = services.NewRedisServiceWithClient(c.redis)
	}
	if c.config.OTPStore == "redis" {
		store = services.NewRedisOTPStore(c.redisService)
		Logger.Info("OTP codes are stored in Redis")
	} else {
		store = services.NewGormOTPStore(c.db)
	}
	c.otpService = services.NewOTPService(store, c.mailer, c.config)

	c.notificationService = services.NewNotificationService(c.db, c.config)
	c.authService = services.NewAuthService(c.db, c.config, c.otpService, c.jwtService)
	c.userService = services.NewUserService(c.db, c.config, c.files, c.authService)
	c.familyService = services.NewFamilyService(c.db, c.config)
	c.personService = services.NewPersonService(c.db, c.config)
	c.communityService = services.NewCommunityService(c.db, c.config, c.notificationService, c.files)
	c.postService = services.NewPostService(c.db, c.config, c.notificationService, c.files)
	c.eventService = services.NewEventService(c.db, c.config, c.files)
	c.privacyService = services.NewPrivacyService(c.db, c.config)
	c.helpService = services.NewHelpService(c.db, c.config)
}

// GetService returns the service registered under name, or nil
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "files":
		return c.files
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "otp":
		return c.otpService
	case "auth":
		return c.authService
	case "user":
		return c.userService
	case "family":
		return c.familyService
	case "person":
		return c.personService
	case "community":
		return c.communityService
	case "post":
		return c.postService
	case "event":
		return c.eventService
	case "notification":
		return c.notificationService
	case "privacy":
		return c.privacyService
	case "help":
		return c.helpService
	default:
		return nil
	}
}

// Close waits for pending notifications and releases the Redis client
func (c *ServiceContainer) Close() error {
	c.notificationService.Wait()
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}
