package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/infrastructure/config"
)

// ErrLastActiveAdmin 系统必须至少保留一个可用的管理员账户
var ErrLastActiveAdmin = errors.New("cannot deactivate the last active admin account")

// InterfaceUserService 账户管理服务接口
type InterfaceUserService interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetAllUsers(ctx context.Context, page, pageSize int, search string) ([]models.User, int64, error)
	SetUserActive(ctx context.Context, id uint, isActive bool) (*models.User, error)
}

// UserService 提供账户管理相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的账户管理服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetUserByID 根据ID获取账户
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// 2 GetUserByUsername 根据用户名获取账户，精确匹配
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// 3 GetAllUsers 获取所有账户，支持分页与搜索
func (s *UserService) GetAllUsers(ctx context.Context, page, pageSize int, search string) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := s.DB.WithContext(ctx).Model(&models.User{})

	// 添加搜索条件
	if search != "" {
		query = query.Where("username LIKE ? OR email LIKE ? OR first_name LIKE ? OR last_name LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Order("id").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// 4 SetUserActive 启用或停用账户。账户从不物理删除，停用后无法登录。
func (s *UserService) SetUserActive(ctx context.Context, id uint, isActive bool) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 保护最后一个管理员账户不被停用
	if user.IsAdmin() && !isActive {
		var activeAdmins int64
		if err := s.DB.WithContext(ctx).Model(&models.User{}).
			Where("role = ? AND is_active = ?", models.RoleAdmin, true).
			Count(&activeAdmins).Error; err != nil {
			return nil, err
		}
		if activeAdmins <= 1 {
			return nil, ErrLastActiveAdmin
		}
	}

	if err := s.DB.WithContext(ctx).Model(user).Update("is_active", isActive).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(ctx, id)
}
