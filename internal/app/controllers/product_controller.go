package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/domain/services"
	"cuca-backend/internal/domain/services/container"
	"cuca-backend/internal/error/code"
	"cuca-backend/internal/error/response"
)

// InterfaceProductController 定义产品控制器接口
type InterfaceProductController interface {
	GetProducts()
	GetProduct()
	GetAllProducts()
	CreateProduct()
	UpdateProduct()
	DeleteProduct()
}

// ProductController 产品控制器
type ProductController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewProductController 创建一个新的产品控制器
func NewProductController(ctx *gin.Context, container *container.ServiceContainer) *ProductController {
	return &ProductController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateProductRequest 创建产品请求
type CreateProductRequest struct {
	Name          string `json:"name" binding:"required" example:"CUCA Original"`
	Description   string `json:"description" example:"A cerveja original de Angola"`
	Price         string `json:"price" binding:"required" example:"1500.00"`
	Category      string `json:"category" example:"Cerveja"`
	ImageURL      string `json:"image_url" example:"/images/cuca-original.jpg"`
	StockQuantity int    `json:"stock_quantity" example:"100"`
	IsActive      *bool  `json:"is_active"`
}

// UpdateProductRequest 更新产品请求
type UpdateProductRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *string `json:"price"`
	Category      *string `json:"category"`
	ImageURL      *string `json:"image_url"`
	StockQuantity *int    `json:"stock_quantity"`
	IsActive      *bool   `json:"is_active"`
}

// HandleProductFunc 返回一个处理产品请求的Gin处理函数
func HandleProductFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewProductController(ctx, container)

		switch method {
		case "getProducts":
			controller.GetProducts()
		case "getProduct":
			controller.GetProduct()
		case "getAllProducts":
			controller.GetAllProducts()
		case "createProduct":
			controller.CreateProduct()
		case "updateProduct":
			controller.UpdateProduct()
		case "deleteProduct":
			controller.DeleteProduct()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method")
		}
	}
}

// 1. GetProducts 获取上架产品列表
// @Summary      List products
// @Description  Paginated list of active products with optional category and search filters
// @Tags         Product
// @Produce      json
// @Param        page query int false "Page, defaults to 1"
// @Param        page_size query int false "Page size, defaults to 10"
// @Param        category query string false "Category filter"
// @Param        search query string false "Search keyword"
// @Success      200  {object}  response.Response
// @Router       /products [get]
func (c *ProductController) GetProducts() {
	page, pageSize := parsePagination(c.Ctx)
	category := c.Ctx.Query("category")
	search := c.Ctx.Query("search")

	productService := c.Container.GetService("product").(services.InterfaceProductService)
	products, total, err := productService.GetActiveProducts(c.Ctx.Request.Context(), page, pageSize, category, search)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrProductNotFound)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"products":   products,
	})
}

// 2. GetProduct 获取产品详情
// @Summary      Product detail
// @Tags         Product
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /products/{id} [get]
func (c *ProductController) GetProduct() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	productService := c.Container.GetService("product").(services.InterfaceProductService)
	product, err := productService.GetProductByID(c.Ctx.Request.Context(), id)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrProductNotFound)
		return
	}

	response.Success(c.Ctx, product)
}

// 3. GetAllProducts 获取所有产品（管理端，含下架产品）
// @Summary      List all products (admin)
// @Tags         Product
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search keyword"
// @Success      200  {object}  response.Response
// @Router       /admin/products [get]
// @Security     BearerAuth
func (c *ProductController) GetAllProducts() {
	page, pageSize := parsePagination(c.Ctx)
	search := c.Ctx.Query("search")

	productService := c.Container.GetService("product").(services.InterfaceProductService)
	products, total, err := productService.GetAllProducts(c.Ctx.Request.Context(), page, pageSize, search)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrProductNotFound)
		return
	}

	response.Success(c.Ctx, gin.H{
		"pagination": models.NewPaginationResult(total, page, pageSize),
		"products":   products,
	})
}

// 4. CreateProduct 创建产品
// @Summary      Create product (admin)
// @Tags         Product
// @Accept       json
// @Produce      json
// @Param        request body CreateProductRequest true "Product parameters"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /admin/products [post]
// @Security     BearerAuth
func (c *ProductController) CreateProduct() {
	var req CreateProductRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters")
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		response.ParamError(c.Ctx, "invalid price")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         price,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		StockQuantity: req.StockQuantity,
		IsActive:      isActive,
	}

	productService := c.Container.GetService("product").(services.InterfaceProductService)
	if err := productService.CreateProduct(c.Ctx.Request.Context(), product); err != nil {
		failStorageError(c.Ctx, err, code.ErrProductNotFound)
		return
	}

	response.Success(c.Ctx, product)
}

// 5. UpdateProduct 更新产品
// @Summary      Update product (admin)
// @Tags         Product
// @Accept       json
// @Produce      json
// @Param        id path int true "Product ID"
// @Param        request body UpdateProductRequest true "Fields to update"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/products/{id} [put]
// @Security     BearerAuth
func (c *ProductController) UpdateProduct() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "invalid request parameters")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || price.IsNegative() {
			response.ParamError(c.Ctx, "invalid price")
			return
		}
		updates["price"] = price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.StockQuantity != nil {
		updates["stock_quantity"] = *req.StockQuantity
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		response.ParamError(c.Ctx, "no fields to update")
		return
	}

	productService := c.Container.GetService("product").(services.InterfaceProductService)
	product, err := productService.UpdateProduct(c.Ctx.Request.Context(), id, updates)
	if err != nil {
		failStorageError(c.Ctx, err, code.ErrProductNotFound)
		return
	}

	response.Success(c.Ctx, product)
}

// 6. DeleteProduct 删除产品
// @Summary      Delete product (admin)
// @Tags         Product
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /admin/products/{id} [delete]
// @Security     BearerAuth
func (c *ProductController) DeleteProduct() {
	id, ok := parseIDParam(c.Ctx)
	if !ok {
		return
	}

	productService := c.Container.GetService("product").(services.InterfaceProductService)
	if err := productService.DeleteProduct(c.Ctx.Request.Context(), id); err != nil {
		failStorageError(c.Ctx, err, code.ErrProductNotFound)
		return
	}

	response.SuccessWithMessage(c.Ctx, "product deleted", nil)
}
