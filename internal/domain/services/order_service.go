package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/infrastructure/config"
)

// 订单相关的哨兵错误
var (
	ErrOrderNoItems       = errors.New("order must contain at least one item")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// OrderItemDraft 下单请求中的单个商品行
type OrderItemDraft struct {
	ProductID uint
	Quantity  int
}

// OrderDraft 经过校验的下单数据
type OrderDraft struct {
	UserID          uint
	Items           []OrderItemDraft
	ShippingAddress string
	PaymentMethod   string
	Notes           string
}

// InterfaceOrderService 订单服务接口
type InterfaceOrderService interface {
	CreateOrder(ctx context.Context, draft *OrderDraft) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uint) (*models.Order, error)
	GetOrdersByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.Order, int64, error)
	GetAllOrders(ctx context.Context, page, pageSize int, status string) ([]models.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error)
}

// OrderService 提供订单相关的服务
type OrderService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewOrderService 创建一个新的订单服务
func NewOrderService(db *gorm.DB, cfg *config.Config) InterfaceOrderService {
	return &OrderService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CreateOrder 创建订单。整个流程在单个事务内完成：
// 锁定并校验产品、扣减库存、按当前单价快照计算总额、写入订单与订单行。
func (s *OrderService) CreateOrder(ctx context.Context, draft *OrderDraft) (*models.Order, error) {
	if len(draft.Items) == 0 {
		return nil, ErrOrderNoItems
	}

	var created models.Order

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(draft.Items))

		for _, line := range draft.Items {
			if line.Quantity <= 0 {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, line.ProductID)
			}

			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrProductUnavailable, line.ProductID)
				}
				return err
			}

			if !product.IsActive {
				return fmt.Errorf("%w: %s", ErrProductUnavailable, product.Name)
			}
			if product.StockQuantity < line.Quantity {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			// 条件更新扣减库存，并发下单时由影响行数兜底
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", product.ID, line.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(lineTotal)

			items = append(items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			})
		}

		order := models.Order{
			UserID:          draft.UserID,
			Status:          models.OrderStatusPending,
			Total:           total,
			ShippingAddress: draft.ShippingAddress,
			PaymentMethod:   draft.PaymentMethod,
			PaymentStatus:   models.PaymentStatusPending,
			Notes:           draft.Notes,
			Items:           items,
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// 2 GetOrderByID 根据ID获取订单及其订单行
func (s *OrderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).Preload("Items").Preload("Items.Product").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// 3 GetOrdersByUser 获取指定账户的订单列表
func (s *OrderService) GetOrdersByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.Order, int64, error) {
	query := s.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)
	return s.paginate(query, page, pageSize)
}

// 4 GetAllOrders 获取所有订单，供管理接口使用
func (s *OrderService) GetAllOrders(ctx context.Context, page, pageSize int, status string) ([]models.Order, int64, error) {
	query := s.DB.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	return s.paginate(query, page, pageSize)
}

// 5 UpdateOrderStatus 更新订单状态
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Model(&models.Order{BaseModel: models.BaseModel{ID: order.ID}}).
		Update("status", status).Error; err != nil {
		return nil, err
	}

	return s.GetOrderByID(ctx, id)
}

// paginate 统一的分页查询，订单按创建时间倒序
func (s *OrderService) paginate(query *gorm.DB, page, pageSize int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Preload("Items").Order("created_at DESC, id DESC").
		Offset(offset).Limit(pageSize).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
