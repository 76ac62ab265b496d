package services

import (
	"context"

	"gorm.io/gorm"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/infrastructure/config"
)

// InterfaceContactService 联系留言服务接口
type InterfaceContactService interface {
	CreateMessage(ctx context.Context, message *models.ContactMessage) error
	GetMessageByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	GetAllMessages(ctx context.Context, page, pageSize int, status string) ([]models.ContactMessage, int64, error)
	UpdateMessageStatus(ctx context.Context, id uint, status string) (*models.ContactMessage, error)
	DeleteMessage(ctx context.Context, id uint) error
}

// ContactService 提供联系留言相关的服务
type ContactService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewContactService 创建一个新的联系留言服务
func NewContactService(db *gorm.DB, cfg *config.Config) InterfaceContactService {
	return &ContactService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CreateMessage 保存公开表单提交的留言
func (s *ContactService) CreateMessage(ctx context.Context, message *models.ContactMessage) error {
	if message.Status == "" {
		message.Status = models.MessageStatusUnread
	}
	return s.DB.WithContext(ctx).Create(message).Error
}

// 2 GetMessageByID 根据ID获取留言
func (s *ContactService) GetMessageByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := s.DB.WithContext(ctx).First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// 3 GetAllMessages 获取留言列表，支持分页与状态过滤
func (s *ContactService) GetAllMessages(ctx context.Context, page, pageSize int, status string) ([]models.ContactMessage, int64, error) {
	var messages []models.ContactMessage
	var total int64

	query := s.DB.WithContext(ctx).Model(&models.ContactMessage{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(pageSize).Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// 4 UpdateMessageStatus 更新留言的已读/未读状态
func (s *ContactService) UpdateMessageStatus(ctx context.Context, id uint, status string) (*models.ContactMessage, error) {
	message, err := s.GetMessageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Model(message).Update("status", status).Error; err != nil {
		return nil, err
	}

	return s.GetMessageByID(ctx, id)
}

// 5 DeleteMessage 删除留言
func (s *ContactService) DeleteMessage(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.ContactMessage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
