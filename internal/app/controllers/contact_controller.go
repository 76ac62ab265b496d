package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/domain/services"
	"cuca-backend/internal/domain/services/container"
	"cuca-backend/internal/error/code"
	"cuca-backend/internal/error/response"
)

const (
	minContactNameLength    = 2
	minContactMessageLength = 10
)

// InterfaceContactController 定义联系留言控制器接口
type InterfaceContactController interface {
	SubmitMessage()
	GetAllMessages()
	UpdateMessageStatus()
	DeleteMessage()
}

// ContactController 联系留言控制器
type ContactController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewContactController 创建一个新的联系留言控制器
func NewContactController(ctx *gin.Context, container *container.ServiceContainer) *ContactController {
	return &ContactController{
		Ctx:       ctx,
		Container: container,
	}
}

// ContactMessageRequest 公开联系表单请求
type ContactMessageRequest struct {
	Name    string `json:"name" example:"João Silva"`
	Email   string `json:"email" example:"joao@example.com"`
	Phone   string `json:"phone" example:"+244 923 000 000"`
	Message string `json:"message" example:"Gostaria de saber mais sobre a CUCA."`
}

// UpdateMessageStatusRequest 更新留言状态请求
type UpdateMessageStatusRequest struct {
	Status string `json:"status" binding:"required" example:"read"`
}

// HandleContactFunc 返回一个处理联系留言请求的Gin处理函数
func HandleContactFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewContactController(ctx, container)

		switch method {
		case "submitMessage":
			controller.SubmitMessage()
		case "getAllMessages":
			controller.GetAllMessages()
		case "updateMessageStatus":
			controller.UpdateMessageStatus()
		case "deleteMessage":
			controller.DeleteMessage()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// validateContactRequest 逐字段校验联系表单
func validateContactRequest(req *ContactMessageRequest) map[string]string {
	fieldErrors := make(map[string]string)

	if len(strings.TrimSpace(req.Name)) < minContactNameLength {
		fieldErrors["name"] = "name must be at least 2 characters"
	}
	if !validEmail(req.Email) {
		fieldErrors["email"] = "a valid email address is required"
	}
	if len(strings.TrimSpace(req.Message)) < minContactMessageLength {
		fieldErrors["message"] = "message must be at least 10 characters"
	}

	return fieldErrors
}

// 1. SubmitMessage 公开提交联系留言
// @Summary      Submit contact message
// @Description  Public contact form; no authentication required
// @Tags         Contact
// @Accept       json
// @Produce      json
// @Param        request body ContactMessageRequest true "Message"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /contact [post]
func (c *ContactController) SubmitMessage() {
	var req ContactMessageRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters")
		return
	}

	if fieldErrors := validateContactRequest(&req); len(fieldErrors) > 0 {
		response.FailWithFieldErrors(c.Ctx, "validation failed", fieldErrors)
		return
	}

	message := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Message: strings.TrimSpace(req.Message),
	}

	contactService := c.Container.GetService("contact").(services.InterfaceContactService)
	if err := contactService.CreateMessage(c.Ctx.Request.Context(), message); err != nil {
		failStorageError(c.Ctx, err, code.ErrMessageNotFound)
		return
	}

	response.SuccessWithMessage(c.Ctx, "message received", message)
}

// 2. GetAllMessages 获取留言列表（管理端）
// @Summary      List contact messages (admin)
// @Tags         Contact
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        status query string false "unread or read"
// @Success      200  {object}  response.Response
// @Router       /admin/contact-messages [get]
// @Security     BearerAuth
func (c *ContactController) GetAllMessages() {
	page, pageSize := parsePagination(c.Ctx)
	status := c.Ctx.Query("status")

	contactService := c.Container.GetService("contact").(services.InterfaceContactService)
	messages, total, err := contactService.GetAllMessages(c.Ctx.Request.Context(), page, pageSize, status)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrMessageNotFound)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"messages":   messages,
	})
}

// 3. UpdateMessageStatus 更新留言状态（管理端）
// @Summary      Update message status (admin)
// @Tags         Contact
// @Accept       json
// @Produce      json
// @Param        id path int true "Message ID"
// @Param        request body UpdateMessageStatusRequest true "New status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/contact-messages/{id}/status [put]
// @Security     BearerAuth
func (c *ContactController) UpdateMessageStatus() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdateMessageStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "status is required")
		return
	}

	if req.Status != models.MessageStatusUnread && req.Status != models.MessageStatusRead {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "status must be unread or read")
		return
	}

	contactService := c.Container.GetService("contact").(services.InterfaceContactService)
	message, err := contactService.UpdateMessageStatus(c.Ctx.Request.Context(), id, req.Status)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrMessageNotFound)
		return
	}

	response.Success(c.Ctx, message)
}

// 4. DeleteMessage 删除留言（管理端）
// @Summary      Delete message (admin)
// @Tags         Contact
// @Produce      json
// @Param        id path int true "Message ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/contact-messages/{id} [delete]
// @Security     BearerAuth
func (c *ContactController) DeleteMessage() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	contactService := c.Container.GetService("contact").(services.InterfaceContactService)
	if err := contactService.DeleteMessage(c.Ctx.Request.Context(), id); err != nil {
		failStorageError(c.Ctx, err, code.ErrMessageNotFound)
		return
	}

	response.SuccessWithMessage(c.Ctx, "message deleted", nil)
}
