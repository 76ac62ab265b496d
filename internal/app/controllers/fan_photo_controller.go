package controllers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"cuca-backend/internal/app/middleware"
	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/domain/services"
	"cuca-backend/internal/domain/services/container"
	"cuca-backend/internal/error/code"
	"cuca-backend/internal/error/response"
)

// InterfaceFanPhotoController 定义粉丝相册控制器接口
type InterfaceFanPhotoController interface {
	SubmitPhoto()
	GetApprovedPhotos()
	GetAllPhotos()
	ModeratePhoto()
}

// FanPhotoController 粉丝相册控制器
type FanPhotoController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewFanPhotoController 创建一个新的粉丝相册控制器
func NewFanPhotoController(ctx *gin.Context, container *container.ServiceContainer) *FanPhotoController {
	return &FanPhotoController{
		Ctx:       ctx,
		Container: container,
	}
}

// SubmitPhotoRequest 粉丝照片投稿请求
type SubmitPhotoRequest struct {
	Name      string `json:"name" binding:"required" example:"Maria Fernanda"`
	Caption   string `json:"caption" binding:"required" example:"CUCA na festa do Kuduro"`
	ImageData string `json:"image_data" binding:"required"`
}

// ModeratePhotoRequest 审核照片请求
type ModeratePhotoRequest struct {
	Status string `json:"status" binding:"required" example:"approved"`
}

// HandleFanPhotoFunc 返回一个处理粉丝相册请求的Gin处理函数
func HandleFanPhotoFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFanPhotoController(ctx, container)

		switch method {
		case "submitPhoto":
			controller.SubmitPhoto()
		case "getApprovedPhotos":
			controller.GetApprovedPhotos()
		case "getAllPhotos":
			controller.GetAllPhotos()
		case "moderatePhoto":
			controller.ModeratePhoto()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// 1. SubmitPhoto 提交粉丝照片投稿，新投稿总是进入待审核状态
// @Summary      Submit fan photo
// @Tags         FanPhoto
// @Accept       json
// @Produce      json
// @Param        request body SubmitPhotoRequest true "Photo submission"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /fan-photos [post]
// @Security     BearerAuth
func (c *FanPhotoController) SubmitPhoto() {
	var req SubmitPhotoRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "name, caption and image_data are required")
		return
	}

	photo := &models.FanPhoto{
		Name:      strings.TrimSpace(req.Name),
		Caption:   strings.TrimSpace(req.Caption),
		ImageData: req.ImageData,
	}
	if userID, ok := middleware.CurrentUserID(c.Ctx); ok {
		photo.UserID = &userID
	}

	fanPhotoService := c.Container.GetService("fan_photo").(services.InterfaceFanPhotoService)
	if err := fanPhotoService.SubmitPhoto(c.Ctx.Request.Context(), photo); err != nil {
		failStorageError(c.Ctx, err, code.ErrPhotoNotFound)
		return
	}

	response.SuccessWithMessage(c.Ctx, "photo submitted for review", photo)
}

// 2. GetApprovedPhotos 获取已通过审核的照片（公开）
// @Summary      Approved fan photos
// @Tags         FanPhoto
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Success      200  {object}  response.Response
// @Router       /fan-photos [get]
func (c *FanPhotoController) GetApprovedPhotos() {
	page, pageSize := parsePagination(c.Ctx)

	fanPhotoService := c.Container.GetService("fan_photo").(services.InterfaceFanPhotoService)
	photos, total, err := fanPhotoService.GetApprovedPhotos(c.Ctx.Request.Context(), page, pageSize)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrPhotoNotFound)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"photos":     photos,
	})
}

// 3. GetAllPhotos 按状态获取照片列表（管理端）
// @Summary      List fan photos (admin)
// @Tags         FanPhoto
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        status query string false "pending, approved or rejected"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /admin/fan-photos [get]
// @Security     BearerAuth
func (c *FanPhotoController) GetAllPhotos() {
	page, pageSize := parsePagination(c.Ctx)
	status := c.Ctx.Query("status")

	if status != "" && !models.ValidPhotoStatus(status) {
		response.Fail(c.Ctx, code.ErrPhotoStatusInvalid)
		return
	}

	fanPhotoService := c.Container.GetService("fan_photo").(services.InterfaceFanPhotoService)
	photos, total, err := fanPhotoService.GetPhotosByStatus(c.Ctx.Request.Context(), page, pageSize, status)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrPhotoNotFound)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"photos":     photos,
	})
}

// 4. ModeratePhoto 审核照片（管理端）
// @Summary      Moderate fan photo (admin)
// @Tags         FanPhoto
// @Accept       json
// @Produce      json
// @Param        id path int true "Photo ID"
// @Param        request body ModeratePhotoRequest true "Moderation decision"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/fan-photos/{id}/status [put]
// @Security     BearerAuth
func (c *FanPhotoController) ModeratePhoto() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	var req ModeratePhotoRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "status is required")
		return
	}

	moderator := c.Ctx.GetString(middleware.ContextUsernameKey)

	fanPhotoService := c.Container.GetService("fan_photo").(services.InterfaceFanPhotoService)
	photo, err := fanPhotoService.ModeratePhoto(c.Ctx.Request.Context(), id, req.Status, moderator)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPhotoStatus) {
			response.Fail(c.Ctx, code.ErrPhotoStatusInvalid)
			return
		}
		failStorageError(c.Ctx, err, code.ErrPhotoNotFound)
		return
	}

	response.Success(c.Ctx, photo)
}
