package models

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered customer or administrator account
type User struct {
	BaseModel
	Username  string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string `gorm:"type:varchar(100);not null" json:"-"` // Password hash, never exposed in JSON
	FirstName string `gorm:"type:varchar(100)" json:"first_name"`
	LastName  string `gorm:"type:varchar(100)" json:"last_name"`
	Phone     string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role      string `gorm:"type:varchar(50);not null;default:user" json:"role"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`
}

// IsAdmin 判断账户是否具有管理员角色
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
