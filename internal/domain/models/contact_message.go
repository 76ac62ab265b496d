package models

// 留言状态
const (
	MessageStatusUnread = "unread"
	MessageStatusRead   = "read"
)

// ContactMessage represents a public contact form submission
type ContactMessage struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Email   string `gorm:"type:varchar(255);not null" json:"email"`
	Phone   string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Message string `gorm:"type:text;not null" json:"message"`
	Status  string `gorm:"type:varchar(20);not null;default:unread" json:"status"`
}
