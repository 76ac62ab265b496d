package controllers

import (
	"context"
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

// 注册密码最小长度
const minPasswordLength = 6

// InterfaceAuthController 定义认证控制器接口
type InterfaceAuthController interface {
	Register()
	Login()
	Logout()
	GetUser()
}

// AuthController 处理注册、登录、登出与身份查询请求
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 创建一个新的认证控制器
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username  string `json:"username" binding:"required" example:"usuario"`
	Email     string `json:"email" binding:"required" example:"usuario@example.com"`
	Password  string `json:"password" binding:"required" example:"123456"`
	FirstName string `json:"firstName" binding:"required" example:"Ana"`
	LastName  string `json:"lastName" binding:"required" example:"Silva"`
	Phone     string `json:"phone" example:"+244 912 345 678"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"usuario"`
	Password string `json:"password" binding:"required" example:"123456"`
}

// UserView 返回给客户端的账户信息，永不包含密码哈希
type UserView struct {
	ID        uint   `json:"id" example:"1"`
	Username  string `json:"username" example:"usuario"`
	Email     string `json:"email" example:"usuario@example.com"`
	FirstName string `json:"first_name" example:"Ana"`
	LastName  string `json:"last_name" example:"Silva"`
	Role      string `json:"role" example:"user"`
}

// newUserView 从账户模型构造响应视图
func newUserView(user *models.User) UserView {
	return UserView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}
}

// HandleAuthFunc 返回一个处理认证请求的Gin处理函数
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "logout":
			controller.Logout()
		case "getUser":
			controller.GetUser()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// 1. Register 注册新账户
// @Summary      User registration
// @Description  Create a new customer account; username and email must be unique
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration parameters"
// @Success      200  {object}  response.Response{data=UserView}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /auth/register [post]
func (c *AuthController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "all fields are required")
		return
	}

	// 字段级校验
	fieldErrors := map[string]string{}
	if len(strings.TrimSpace(req.Username)) == 0 {
		fieldErrors["username"] = "username is required"
	}
	if !validEmail(strings.TrimSpace(req.Email)) {
		fieldErrors["email"] = "invalid email address"
	}
	if len(req.Password) < minPasswordLength {
		fieldErrors["password"] = "password must be at least 6 characters"
	}
	if len(fieldErrors) > 0 {
		response.FailWithFieldErrors(c.Ctx, code.GetMessage(code.ErrValidation), fieldErrors)
		return
	}

	authService := c.Container.GetAuthTokenService()
	user, err := authService.Register(c.Ctx.Request.Context(), &services.RegisterDraft{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, services.ErrDuplicateAccount) {
			response.Fail(c.Ctx, code.ErrUserAlreadyExist)
			return
		}
		if errors.Is(err, context.DeadlineExceeded) {
			response.Fail(c.Ctx, code.ErrTimeout)
			return
		}
		response.ServerError(c.Ctx)
		return
	}

	response.SuccessWithMessage(c.Ctx, "account created successfully, you can now log in", newUserView(user))
}

// 2. Login 处理用户登录
// @Summary      User login
// @Description  Verify credentials and return a bearer token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login parameters"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "username and password are required")
		return
	}

	authService := c.Container.GetAuthTokenService()
	result, err := authService.Login(c.Ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			response.Fail(c.Ctx, code.ErrPasswordIncorrect)
		case errors.Is(err, services.ErrAccountInactive):
			response.Fail(c.Ctx, code.ErrAccountInactive)
		case errors.Is(err, context.DeadlineExceeded):
			response.Fail(c.Ctx, code.ErrTimeout)
		default:
			response.ServerError(c.Ctx)
		}
		return
	}

	response.SuccessWithMessage(c.Ctx, "login successful", gin.H{
		"token": result.Token,
		"user":  newUserView(result.User),
	})
}

// 3. Logout 登出：吊销当前令牌
// @Summary      User logout
// @Description  Revoke the presented bearer token
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (c *AuthController) Logout() {
	authHeader := c.Ctx.GetHeader("Authorization")
	tokenString := ""
	if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
		tokenString = strings.TrimSpace(parts[1])
	}

	authService := c.Container.GetAuthTokenService()
	if err := authService.RevokeToken(c.Ctx.Request.Context(), tokenString); err != nil {
		// 吊销失败不阻塞登出，客户端仍会丢弃令牌
		response.SuccessWithMessage(c.Ctx, "logout successful", nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "logout successful", nil)
}

// 4. GetUser 返回当前认证身份
// @Summary      Current user
// @Description  Return the identity attached by the authentication middleware
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/user [get]
// @Security     BearerAuth
func (c *AuthController) GetUser() {
	claims, ok := middleware.CurrentClaims(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":       claims.UserID,
		"username": claims.Username,
		"email":    claims.Email,
		"role":     claims.Role,
	})
}
