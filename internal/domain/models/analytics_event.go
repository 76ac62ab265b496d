package models

import (
	"encoding/json"
	"time"
)

// AnalyticsEvent 记录站点埋点事件
type AnalyticsEvent struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	EventType string          `gorm:"type:varchar(100);index;not null" json:"event_type"`
	EventData json.RawMessage `gorm:"type:json" json:"event_data,omitempty"`
	UserID    *uint           `gorm:"index" json:"user_id,omitempty"`
	SessionID string          `gorm:"type:varchar(255);index" json:"session_id"`
	IPAddress string          `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent string          `gorm:"type:text" json:"user_agent"`
	CreatedAt time.Time       `json:"created_at"`
}

// EventTypeCount 按事件类型聚合的统计结果
type EventTypeCount struct {
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}
