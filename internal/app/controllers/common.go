package controllers

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	Logger "cuca-backend/pkg/logger"

	"cuca-backend/internal/error/code"
	"cuca-backend/internal/error/response"
)

// 简化的邮箱格式校验，与前端表单保持一致
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validEmail 校验邮箱格式
func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// parsePagination 解析分页查询参数，越界时回退到默认值
func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// parseIDParam 解析URL路径中的ID参数
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ParamError(c, "invalid id parameter")
		return 0, false
	}
	return uint(id), true
}

// failStorageError 将存储层错误映射为响应：
// 超时→503，记录不存在→404，其余记录日志后返回通用500，不泄露内部细节。
func failStorageError(c *gin.Context, err error, notFoundCode int) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		response.Fail(c, code.ErrTimeout)
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, notFoundCode)
	default:
		Logger.Error("存储层错误: %v", err)
		response.ServerError(c)
	}
}
