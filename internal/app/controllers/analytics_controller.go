package controllers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"cuca-backend/internal/app/middleware"
	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/domain/services"
	"cuca-backend/internal/domain/services/container"
	"cuca-backend/internal/error/code"
	"cuca-backend/internal/error/response"
)

// InterfaceAnalyticsController 定义埋点事件控制器接口
type InterfaceAnalyticsController interface {
	RecordEvent()
	GetEvents()
	GetEventStats()
}

// AnalyticsController 埋点事件控制器
type AnalyticsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAnalyticsController 创建一个新的埋点事件控制器
func NewAnalyticsController(ctx *gin.Context, container *container.ServiceContainer) *AnalyticsController {
	return &AnalyticsController{
		Ctx:       ctx,
		Container: container,
	}
}

// RecordEventRequest 埋点上报请求
type RecordEventRequest struct {
	EventType string          `json:"event_type" binding:"required" example:"page_view"`
	EventData json.RawMessage `json:"event_data"`
	SessionID string          `json:"session_id" example:"4f6c1c4e-8f63-4c43-90ab-0d52f8f1a001"`
}

// HandleAnalyticsFunc 返回一个处理埋点请求的Gin处理函数
func HandleAnalyticsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAnalyticsController(ctx, container)

		switch method {
		case "recordEvent":
			controller.RecordEvent()
		case "getEvents":
			controller.GetEvents()
		case "getEventStats":
			controller.GetEventStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// 1. RecordEvent 公开上报埋点事件，登录用户自动关联用户ID
// @Summary      Record analytics event
// @Tags         Analytics
// @Accept       json
// @Produce      json
// @Param        request body RecordEventRequest true "Event"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /analytics/events [post]
func (c *AnalyticsController) RecordEvent() {
	var req RecordEventRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "event_type is required")
		return
	}

	event := &models.AnalyticsEvent{
		EventType: req.EventType,
		EventData: req.EventData,
		SessionID: req.SessionID,
		IPAddress: c.Ctx.ClientIP(),
		UserAgent: c.Ctx.Request.UserAgent(),
	}

	// 可选认证：携带有效令牌时关联用户
	if userID, ok := middleware.CurrentUserID(c.Ctx); ok {
		event.UserID = &userID
	}

	analyticsService := c.Container.GetService("analytics").(services.InterfaceAnalyticsService)
	if err := analyticsService.RecordEvent(c.Ctx.Request.Context(), event); err != nil {
		failStorageError(c.Ctx, err, code.ErrRecordNotFound)
		return
	}

	response.SuccessWithMessage(c.Ctx, "event recorded", gin.H{
		"id":         event.ID,
		"session_id": event.SessionID,
	})
}

// 2. GetEvents 获取埋点事件列表（管理端）
// @Summary      List analytics events (admin)
// @Tags         Analytics
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        event_type query string false "Event type filter"
// @Success      200  {object}  response.Response
// @Router       /admin/analytics/events [get]
// @Security     BearerAuth
func (c *AnalyticsController) GetEvents() {
	page, pageSize := parsePagination(c.Ctx)
	eventType := c.Ctx.Query("event_type")

	analyticsService := c.Container.GetService("analytics").(services.InterfaceAnalyticsService)
	events, total, err := analyticsService.GetEvents(c.Ctx.Request.Context(), page, pageSize, eventType)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrRecordNotFound)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"events":     events,
	})
}

// 3. GetEventStats 按事件类型聚合统计（管理端）
// @Summary      Analytics event stats (admin)
// @Tags         Analytics
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/analytics/stats [get]
// @Security     BearerAuth
func (c *AnalyticsController) GetEventStats() {
	analyticsService := c.Container.GetService("analytics").(services.InterfaceAnalyticsService)
	stats, err := analyticsService.GetEventStats(c.Ctx.Request.Context())
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrRecordNotFound)
		return
	}

	response.Success(c.Ctx, gin.H{"stats": stats})
}
