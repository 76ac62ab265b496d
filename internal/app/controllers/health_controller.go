package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cuca-backend/internal/app/middleware"
	"cuca-backend/internal/domain/services/container"
	"cuca-backend/internal/error/code"
	"cuca-backend/internal/error/response"
)

// InterfaceHealthController 定义健康检查控制器接口
type InterfaceHealthController interface {
	Ping()
	Status()
	CacheStats()
}

// HealthController 健康检查控制器
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController 创建一个新的健康检查控制器
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		case "cacheStats":
			controller.CacheStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// 1. Ping 存活探针
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /ping [get]
func (c *HealthController) Ping() {
	response.SuccessWithMessage(c.Ctx, "pong", gin.H{
		"time": time.Now().Format(time.RFC3339),
	})
}

// 2. Status 就绪探针：探测数据库与Redis连通性
// @Summary      Readiness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (c *HealthController) Status() {
	dbStatus := "ok"
	healthy := true

	db := c.Container.GetDB()
	if sqlDB, err := db.Session(&gorm.Session{}).DB(); err != nil {
		dbStatus = "error"
		healthy = false
	} else if err := sqlDB.PingContext(c.Ctx.Request.Context()); err != nil {
		dbStatus = "error"
		healthy = false
	}

	// Redis可选：未配置不影响整体健康
	redisStatus := "disabled"
	if redisService := c.Container.GetRedisService(); redisService != nil {
		redisStatus = "ok"
		if err := redisService.Ping(c.Ctx.Request.Context()); err != nil {
			redisStatus = "error"
		}
	}

	data := gin.H{
		"database": dbStatus,
		"redis":    redisStatus,
		"time":     time.Now().Format(time.RFC3339),
	}

	if !healthy {
		c.Ctx.JSON(code.StatusServiceUnavailable, response.Response{
			Success: false,
			Message: "service degraded",
			Data:    data,
		})
		return
	}

	response.SuccessWithMessage(c.Ctx, "service healthy", data)
}

// 3. CacheStats 获取响应缓存统计（管理端）
// @Summary      Response cache stats (admin)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/cache/stats [get]
// @Security     BearerAuth
func (c *HealthController) CacheStats() {
	response.Success(c.Ctx, middleware.CacheStats())
}
