package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/infrastructure/config"
)

// InterfaceAnalyticsService 埋点事件服务接口
type InterfaceAnalyticsService interface {
	RecordEvent(ctx context.Context, event *models.AnalyticsEvent) error
	GetEvents(ctx context.Context, page, pageSize int, eventType string) ([]models.AnalyticsEvent, int64, error)
	GetEventStats(ctx context.Context) ([]models.EventTypeCount, error)
}

// AnalyticsService 提供埋点事件相关的服务
type AnalyticsService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAnalyticsService 创建一个新的埋点事件服务
func NewAnalyticsService(db *gorm.DB, cfg *config.Config) InterfaceAnalyticsService {
	return &AnalyticsService{
		DB:     db,
		Config: cfg,
	}
}

// 1 RecordEvent 记录埋点事件，客户端未携带会话ID时生成匿名会话ID
func (s *AnalyticsService) RecordEvent(ctx context.Context, event *models.AnalyticsEvent) error {
	if event.SessionID == "" {
		event.SessionID = uuid.NewString()
	}
	return s.DB.WithContext(ctx).Create(event).Error
}

// 2 GetEvents 获取事件列表，支持分页与类型过滤
func (s *AnalyticsService) GetEvents(ctx context.Context, page, pageSize int, eventType string) ([]models.AnalyticsEvent, int64, error) {
	var events []models.AnalyticsEvent
	var total int64

	query := s.DB.WithContext(ctx).Model(&models.AnalyticsEvent{})
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(pageSize).Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// 3 GetEventStats 按事件类型聚合统计
func (s *AnalyticsService) GetEventStats(ctx context.Context) ([]models.EventTypeCount, error) {
	var stats []models.EventTypeCount
	err := s.DB.WithContext(ctx).Model(&models.AnalyticsEvent{}).
		Select("event_type, COUNT(*) as count").
		Group("event_type").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
