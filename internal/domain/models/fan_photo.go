package models

import "time"

// 粉丝照片审核状态
const (
	PhotoStatusPending  = "pending"
	PhotoStatusApproved = "approved"
	PhotoStatusRejected = "rejected"
)

// FanPhoto represents a fan gallery submission awaiting moderation
type FanPhoto struct {
	BaseModel
	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	Caption    string     `gorm:"type:text;not null" json:"caption"`
	ImageData  string     `gorm:"type:longtext;not null" json:"image_data"` // base64编码的图片内容
	UserID     *uint      `gorm:"index" json:"user_id,omitempty"`
	Status     string     `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	ApprovedBy string     `gorm:"type:varchar(255)" json:"approved_by,omitempty"`
}

// ValidPhotoStatus 校验照片审核状态取值
func ValidPhotoStatus(status string) bool {
	switch status {
	case PhotoStatusPending, PhotoStatusApproved, PhotoStatusRejected:
		return true
	}
	return false
}
