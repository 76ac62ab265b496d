package services

import (
	"context"

	"gorm.io/gorm"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/infrastructure/config"
)

// InterfaceProductService 产品目录服务接口
type InterfaceProductService interface {
	GetActiveProducts(ctx context.Context, page, pageSize int, category, search string) ([]models.Product, int64, error)
	GetAllProducts(ctx context.Context, page, pageSize int, search string) ([]models.Product, int64, error)
	GetProductByID(ctx context.Context, id uint) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id uint, updates map[string]interface{}) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// ProductService 提供产品目录相关的服务
type ProductService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewProductService 创建一个新的产品服务
func NewProductService(db *gorm.DB, cfg *config.Config) InterfaceProductService {
	return &ProductService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetActiveProducts 获取上架产品列表，供公开接口使用
func (s *ProductService) GetActiveProducts(ctx context.Context, page, pageSize int, category, search string) ([]models.Product, int64, error) {
	query := s.DB.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)

	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		query = query.Where("name LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	return s.paginate(query, page, pageSize)
}

// 2 GetAllProducts 获取所有产品（含下架），供管理接口使用
func (s *ProductService) GetAllProducts(ctx context.Context, page, pageSize int, search string) ([]models.Product, int64, error) {
	query := s.DB.WithContext(ctx).Model(&models.Product{})

	if search != "" {
		query = query.Where("name LIKE ? OR category LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	return s.paginate(query, page, pageSize)
}

// 3 GetProductByID 根据ID获取产品
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// 4 CreateProduct 创建新产品
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.DB.WithContext(ctx).Create(product).Error
}

// 5 UpdateProduct 更新产品信息
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, updates map[string]interface{}) (*models.Product, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetProductByID(ctx, id)
}

// 6 DeleteProduct 删除产品
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// paginate 统一的分页查询
func (s *ProductService) paginate(query *gorm.DB, page, pageSize int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("id").Offset(offset).Limit(pageSize).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}
