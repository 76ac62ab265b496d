package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"cuca-backend/internal/domain/services"
	"cuca-backend/internal/error/response"
)

// 请求上下文中的身份键
const (
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
	ContextRoleKey     = "role"
	ContextClaimsKey   = "claims"
)

// extractBearerToken 从授权头中提取token，格式必须为 "Bearer {token}"
func extractBearerToken(authHeader string) string {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Authentication 认证中间件：校验Bearer令牌并将身份写入请求上下文。
// 缺失、格式错误、过期、吊销一律返回同一个401响应，不向客户端区分失败原因。
func Authentication(authService services.InterfaceAuthTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// 存储身份到上下文
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Set(ContextRoleKey, claims.Role)
		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuthentication 可选认证：令牌有效时附加身份，无令牌或无效令牌不拦截请求。
// 用于公开埋点接口关联已登录用户。
func OptionalAuthentication(authService services.InterfaceAuthTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c.GetHeader("Authorization"))
		if tokenString != "" {
			if claims, err := authService.ValidateToken(c.Request.Context(), tokenString); err == nil {
				c.Set(ContextUserIDKey, claims.UserID)
				c.Set(ContextUsernameKey, claims.Username)
				c.Set(ContextRoleKey, claims.Role)
				c.Set(ContextClaimsKey, claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin 角色门禁：只读取Authentication写入的上下文身份，从不重新校验令牌。
// 必须注册在Authentication之后。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleKey)
		if !exists {
			// Authentication未运行，视为未认证
			response.Unauthorized(c)
			c.Abort()
			return
		}

		if roleStr, ok := role.(string); !ok || roleStr != "admin" {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUserID 从上下文读取当前用户ID
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// CurrentClaims 从上下文读取当前令牌声明
func CurrentClaims(c *gin.Context) (*services.JWTClaims, bool) {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.JWTClaims)
	return claims, ok
}
