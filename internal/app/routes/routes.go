package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"cuca-backend/internal/app/controllers"
	"cuca-backend/internal/app/middleware"
	"cuca-backend/internal/domain/services/container"

	_ "cuca-backend/docs"
)

// CORS 跨域中间件，允许来源列表来自配置
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SetupRouter 配置所有API路由
func SetupRouter(serviceContainer *container.ServiceContainer) *gin.Engine {
	r := gin.Default()

	cfg := serviceContainer.GetConfig()
	authService := serviceContainer.GetAuthTokenService()

	// 全局中间件
	r.Use(CORS(cfg.AllowedOrigins))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(func(c *gin.Context) {
		c.Header("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/ping", controllers.HandleHealthFunc(serviceContainer, "ping"))
	r.GET("/health", controllers.HandleHealthFunc(serviceContainer, "status"))

	api := r.Group("/api")

	// 健康检查（/api 前缀别名，供反向代理统一转发）
	api.GET("/ping", controllers.HandleHealthFunc(serviceContainer, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(serviceContainer, "status"))
	api.GET("/health/status", controllers.HandleHealthFunc(serviceContainer, "status"))

	// 公开接口：限制单IP请求频率
	public := api.Group("")
	public.Use(middleware.IPRateLimiter(10, 20))
	{
		// 认证
		auth := public.Group("/auth")
		{
			auth.POST("/register", controllers.HandleAuthFunc(serviceContainer, "register"))
			auth.POST("/login", controllers.HandleAuthFunc(serviceContainer, "login"))
		}

		// 产品目录：只读接口加响应缓存
		products := public.Group("/products")
		products.Use(middleware.Cache(middleware.CacheConfig{Expiration: 5 * time.Minute}))
		{
			products.GET("", controllers.HandleProductFunc(serviceContainer, "getProducts"))
			products.GET("/:id", controllers.HandleProductFunc(serviceContainer, "getProduct"))
		}

		// 联系表单
		public.POST("/contact", controllers.HandleContactFunc(serviceContainer, "submitMessage"))

		// 埋点上报：可选认证，登录用户自动关联
		public.POST("/analytics/events",
			middleware.OptionalAuthentication(authService),
			controllers.HandleAnalyticsFunc(serviceContainer, "recordEvent"))

		// 粉丝相册：公开展示已审核照片
		public.GET("/fan-photos", controllers.HandleFanPhotoFunc(serviceContainer, "getApprovedPhotos"))
	}

	// 认证接口：需要有效令牌
	authenticated := api.Group("")
	authenticated.Use(middleware.Authentication(authService))
	{
		authenticated.POST("/auth/logout", controllers.HandleAuthFunc(serviceContainer, "logout"))
		authenticated.GET("/auth/user", controllers.HandleAuthFunc(serviceContainer, "getUser"))

		authenticated.POST("/orders", controllers.HandleOrderFunc(serviceContainer, "createOrder"))
		authenticated.GET("/orders", controllers.HandleOrderFunc(serviceContainer, "getMyOrders"))
		authenticated.GET("/orders/:id", controllers.HandleOrderFunc(serviceContainer, "getOrder"))

		authenticated.POST("/fan-photos", controllers.HandleFanPhotoFunc(serviceContainer, "submitPhoto"))
	}

	// 管理接口：需要管理员角色
	admin := api.Group("/admin")
	admin.Use(middleware.Authentication(authService), middleware.RequireAdmin())
	{
		// 产品管理
		admin.GET("/products", controllers.HandleProductFunc(serviceContainer, "getAllProducts"))
		admin.POST("/products", controllers.HandleProductFunc(serviceContainer, "createProduct"))
		admin.PUT("/products/:id", controllers.HandleProductFunc(serviceContainer, "updateProduct"))
		admin.DELETE("/products/:id", controllers.HandleProductFunc(serviceContainer, "deleteProduct"))

		// 订单管理
		admin.GET("/orders", controllers.HandleOrderFunc(serviceContainer, "getAllOrders"))
		admin.PUT("/orders/:id/status", controllers.HandleOrderFunc(serviceContainer, "updateOrderStatus"))

		// 账户管理
		admin.GET("/users", controllers.HandleUserFunc(serviceContainer, "getAllUsers"))
		admin.GET("/users/:id", controllers.HandleUserFunc(serviceContainer, "getUser"))
		admin.PUT("/users/:id/status", controllers.HandleUserFunc(serviceContainer, "setUserActive"))

		// 留言管理
		admin.GET("/contact-messages", controllers.HandleContactFunc(serviceContainer, "getAllMessages"))
		admin.PUT("/contact-messages/:id/status", controllers.HandleContactFunc(serviceContainer, "updateMessageStatus"))
		admin.DELETE("/contact-messages/:id", controllers.HandleContactFunc(serviceContainer, "deleteMessage"))

		// 埋点统计
		admin.GET("/analytics/events", controllers.HandleAnalyticsFunc(serviceContainer, "getEvents"))
		admin.GET("/analytics/stats", controllers.HandleAnalyticsFunc(serviceContainer, "getEventStats"))

		// 粉丝相册审核
		admin.GET("/fan-photos", controllers.HandleFanPhotoFunc(serviceContainer, "getAllPhotos"))
		admin.PUT("/fan-photos/:id/status", controllers.HandleFanPhotoFunc(serviceContainer, "moderatePhoto"))

		// 运维
		admin.GET("/cache/stats", controllers.HandleHealthFunc(serviceContainer, "cacheStats"))
	}

	return r
}
