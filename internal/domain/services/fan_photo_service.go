package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/infrastructure/config"
)

// ErrInvalidPhotoStatus 审核状态只能是 approved 或 rejected
var ErrInvalidPhotoStatus = errors.New("invalid photo status")

// InterfaceFanPhotoService 粉丝相册服务接口
type InterfaceFanPhotoService interface {
	SubmitPhoto(ctx context.Context, photo *models.FanPhoto) error
	GetApprovedPhotos(ctx context.Context, page, pageSize int) ([]models.FanPhoto, int64, error)
	GetPhotosByStatus(ctx context.Context, page, pageSize int, status string) ([]models.FanPhoto, int64, error)
	ModeratePhoto(ctx context.Context, id uint, status, moderator string) (*models.FanPhoto, error)
}

// FanPhotoService 提供粉丝相册相关的服务
type FanPhotoService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewFanPhotoService 创建一个新的粉丝相册服务
func NewFanPhotoService(db *gorm.DB, cfg *config.Config) InterfaceFanPhotoService {
	return &FanPhotoService{
		DB:     db,
		Config: cfg,
	}
}

// 1 SubmitPhoto 保存粉丝投稿，初始状态为待审核
func (s *FanPhotoService) SubmitPhoto(ctx context.Context, photo *models.FanPhoto) error {
	photo.Status = models.PhotoStatusPending
	photo.ApprovedAt = nil
	photo.ApprovedBy = ""
	return s.DB.WithContext(ctx).Create(photo).Error
}

// 2 GetApprovedPhotos 获取已通过审核的照片，供公开接口使用
func (s *FanPhotoService) GetApprovedPhotos(ctx context.Context, page, pageSize int) ([]models.FanPhoto, int64, error) {
	return s.GetPhotosByStatus(ctx, page, pageSize, models.PhotoStatusApproved)
}

// 3 GetPhotosByStatus 按审核状态获取照片列表
func (s *FanPhotoService) GetPhotosByStatus(ctx context.Context, page, pageSize int, status string) ([]models.FanPhoto, int64, error) {
	var photos []models.FanPhoto
	var total int64

	query := s.DB.WithContext(ctx).Model(&models.FanPhoto{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(pageSize).Find(&photos).Error; err != nil {
		return nil, 0, err
	}

	return photos, total, nil
}

// 4 ModeratePhoto 审核照片：通过时记录审核人和时间
func (s *FanPhotoService) ModeratePhoto(ctx context.Context, id uint, status, moderator string) (*models.FanPhoto, error) {
	if status != models.PhotoStatusApproved && status != models.PhotoStatusRejected {
		return nil, ErrInvalidPhotoStatus
	}

	var photo models.FanPhoto
	if err := s.DB.WithContext(ctx).First(&photo, id).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status": status,
	}
	if status == models.PhotoStatusApproved {
		now := time.Now()
		updates["approved_at"] = &now
		updates["approved_by"] = moderator
	} else {
		updates["approved_at"] = nil
		updates["approved_by"] = ""
	}

	if err := s.DB.WithContext(ctx).Model(&photo).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).First(&photo, id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}
