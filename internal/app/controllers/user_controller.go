package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/domain/services"
	"cuca-backend/internal/domain/services/container"
	"cuca-backend/internal/error/code"
	"cuca-backend/internal/error/response"
)

// InterfaceUserController 定义账户管理控制器接口
type InterfaceUserController interface {
	GetAllUsers()
	GetUser()
	SetUserActive()
}

// UserController 账户管理控制器
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的账户管理控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// SetUserActiveRequest 启用或停用账户请求
type SetUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required" example:"false"`
}

// HandleUserFunc 返回一个处理账户管理请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getAllUsers":
			controller.GetAllUsers()
		case "getUser":
			controller.GetUser()
		case "setUserActive":
			controller.SetUserActive()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// 1. GetAllUsers 获取账户列表（管理端）
// @Summary      List accounts (admin)
// @Tags         User
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search username, email or name"
// @Success      200  {object}  response.Response
// @Router       /admin/users [get]
// @Security     BearerAuth
func (c *UserController) GetAllUsers() {
	page, pageSize := parsePagination(c.Ctx)
	search := c.Ctx.Query("search")

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	users, total, err := userService.GetAllUsers(c.Ctx.Request.Context(), page, pageSize, search)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrUserNotFound)
		return
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, newUserView(&users[i]))
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"users":      views,
	})
}

// 2. GetUser 获取账户详情（管理端）
// @Summary      Account detail (admin)
// @Tags         User
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id} [get]
// @Security     BearerAuth
func (c *UserController) GetUser() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.GetUserByID(c.Ctx.Request.Context(), id)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrUserNotFound)
		return
	}

	response.Success(c.Ctx, newUserView(user))
}

// 3. SetUserActive 启用或停用账户（管理端）
// @Summary      Activate or deactivate account (admin)
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        request body SetUserActiveRequest true "Target state"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id}/status [put]
// @Security     BearerAuth
func (c *UserController) SetUserActive() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	var req SetUserActiveRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "is_active is required")
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	user, err := userService.SetUserActive(c.Ctx.Request.Context(), id, *req.IsActive)
	if err != nil {
		if errors.Is(err, services.ErrLastActiveAdmin) {
			response.FailWithMessage(c.Ctx, code.ErrValidation, "at least one active admin account must remain")
			return
		}
		failStorageError(c.Ctx, err, code.ErrUserNotFound)
		return
	}

	response.Success(c.Ctx, newUserView(user))
}
