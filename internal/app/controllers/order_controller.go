package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cuca-backend/internal/app/middleware"
	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/domain/services"
	"cuca-backend/internal/domain/services/container"
	"cuca-backend/internal/error/code"
	"cuca-backend/internal/error/response"
)

// InterfaceOrderController 定义订单控制器接口
type InterfaceOrderController interface {
	CreateOrder()
	GetMyOrders()
	GetOrder()
	GetAllOrders()
	UpdateOrderStatus()
}

// OrderController 订单控制器
type OrderController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewOrderController 创建一个新的订单控制器
func NewOrderController(ctx *gin.Context, container *container.ServiceContainer) *OrderController {
	return &OrderController{
		Ctx:       ctx,
		Container: container,
	}
}

// OrderItemRequest 下单请求中的商品行
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required" example:"1"`
	Quantity  int  `json:"quantity" binding:"required,min=1" example:"2"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress string             `json:"shipping_address" binding:"required" example:"Rua da Missão 123, Luanda"`
	PaymentMethod   string             `json:"payment_method" example:"cash"`
	Notes           string             `json:"notes"`
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"shipped"`
}

// HandleOrderFunc 返回一个处理订单请求的Gin处理函数
func HandleOrderFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewOrderController(ctx, container)

		switch method {
		case "createOrder":
			controller.CreateOrder()
		case "getMyOrders":
			controller.GetMyOrders()
		case "getOrder":
			controller.GetOrder()
		case "getAllOrders":
			controller.GetAllOrders()
		case "updateOrderStatus":
			controller.UpdateOrderStatus()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// 1. CreateOrder 创建订单
// @Summary      Create order
// @Description  Place an order; stock is checked and decremented within a single transaction
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        request body CreateOrderRequest true "Order parameters"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /orders [post]
// @Security     BearerAuth
func (c *OrderController) CreateOrder() {
	userID, ok := middleware.CurrentUserID(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	var req CreateOrderRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters")
		return
	}

	items := make([]services.OrderItemDraft, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, services.OrderItemDraft{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	orderService := c.Container.GetService("order").(services.InterfaceOrderService)
	order, err := orderService.CreateOrder(c.Ctx.Request.Context(), &services.OrderDraft{
		UserID:          userID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNoItems):
			response.Fail(c.Ctx, code.ErrOrderEmpty)
		case errors.Is(err, services.ErrProductUnavailable):
			response.Fail(c.Ctx, code.ErrProductInactive)
		case errors.Is(err, services.ErrInsufficientStock):
			response.Fail(c.Ctx, code.ErrInsufficientStock)
		default:
			failStorageError(c.Ctx, err, code.ErrOrderNotFound)
		}
		return
	}

	response.SuccessWithMessage(c.Ctx, "order created", order)
}

// 2. GetMyOrders 获取当前用户的订单列表
// @Summary      My orders
// @Tags         Order
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /orders [get]
// @Security     BearerAuth
func (c *OrderController) GetMyOrders() {
	userID, ok := middleware.CurrentUserID(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	page, pageSize := parsePagination(c.Ctx)

	orderService := c.Container.GetService("order").(services.InterfaceOrderService)
	orders, total, err := orderService.GetOrdersByUser(c.Ctx.Request.Context(), userID, page, pageSize)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrOrderNotFound)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"orders":     orders,
	})
}

// 3. GetOrder 获取订单详情，仅允许订单所有者或管理员访问
// @Summary      Order detail
// @Tags         Order
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /orders/{id} [get]
// @Security     BearerAuth
func (c *OrderController) GetOrder() {
	userID, ok := middleware.CurrentUserID(c.Ctx)
	if !ok {
		response.Unauthorized(c.Ctx)
		return
	}

	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	orderService := c.Container.GetService("order").(services.InterfaceOrderService)
	order, err := orderService.GetOrderByID(c.Ctx.Request.Context(), id)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrOrderNotFound)
		return
	}

	role := c.Ctx.GetString(middleware.ContextRoleKey)
	if order.UserID != userID && role != models.RoleAdmin {
		response.Forbidden(c.Ctx)
		return
	}

	response.Success(c.Ctx, order)
}

// 4. GetAllOrders 获取所有订单（管理端）
// @Summary      List all orders (admin)
// @Tags         Order
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Status filter"
// @Success      200  {object}  response.Response
// @Router       /admin/orders [get]
// @Security     BearerAuth
func (c *OrderController) GetAllOrders() {
	page, pageSize := parsePagination(c.Ctx)
	status := c.Ctx.Query("status")

	orderService := c.Container.GetService("order").(services.InterfaceOrderService)
	orders, total, err := orderService.GetAllOrders(c.Ctx.Request.Context(), page, pageSize, status)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrOrderNotFound)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"orders":     orders,
	})
}

// 5. UpdateOrderStatus 更新订单状态（管理端）
// @Summary      Update order status (admin)
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        id path int true "Order ID"
// @Param        request body UpdateOrderStatusRequest true "New status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/orders/{id}/status [put]
// @Security     BearerAuth
func (c *OrderController) UpdateOrderStatus() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "status is required")
		return
	}

	orderService := c.Container.GetService("order").(services.InterfaceOrderService)
	order, err := orderService.UpdateOrderStatus(c.Ctx.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOrderStatus) {
			response.Fail(c.Ctx, code.ErrOrderStatusInvalid)
			return
		}
		failStorageError(c.Ctx, err, code.ErrOrderNotFound)
		return
	}

	response.Success(c.Ctx, order)
}
