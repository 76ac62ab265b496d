package container

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"cuca-backend/internal/domain/services"
	"cuca-backend/internal/infrastructure/config"
)

// ServiceContainer 管理所有服务的依赖注入。
// 所有处理器通过容器获取服务，进程内不存在模块级单例状态。
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	authTokenService services.InterfaceAuthTokenService
	redisService     services.InterfaceRedisService

	// 业务服务
	userService      services.InterfaceUserService
	productService   services.InterfaceProductService
	orderService     services.InterfaceOrderService
	contactService   services.InterfaceContactService
	analyticsService services.InterfaceAnalyticsService
	fanPhotoService  services.InterfaceFanPhotoService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}
	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接；连接失败时继续运行，登出吊销退化为客户端丢弃令牌
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，令牌黑名单不可用", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化Redis服务
	if c.redis != nil {
		c.redisService = services.NewRedisServiceWithClient(c.redis)
	}

	// 初始化基础服务
	c.authTokenService = services.NewAuthTokenService(c.config, c.db, c.redisService)

	// 初始化业务服务
	c.userService = services.NewUserService(c.db, c.config)
	c.productService = services.NewProductService(c.db, c.config)
	c.orderService = services.NewOrderService(c.db, c.config)
	c.contactService = services.NewContactService(c.db, c.config)
	c.analyticsService = services.NewAnalyticsService(c.db, c.config)
	c.fanPhotoService = services.NewFanPhotoService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "auth_token":
		return c.authTokenService
	case "redis":
		return c.redisService
	case "user":
		return c.userService
	case "product":
		return c.productService
	case "order":
		return c.orderService
	case "contact":
		return c.contactService
	case "analytics":
		return c.analyticsService
	case "fan_photo":
		return c.fanPhotoService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// GetAuthTokenService 获取认证令牌服务
func (c *ServiceContainer) GetAuthTokenService() services.InterfaceAuthTokenService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authTokenService
}

// GetRedisService 获取Redis服务，未配置时返回nil
func (c *ServiceContainer) GetRedisService() services.InterfaceRedisService {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.redisService
}
