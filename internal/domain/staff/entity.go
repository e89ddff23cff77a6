// internal/domain/staff/entity.go
package staff

import (
	"time"
)

// Staff represents a shop employee with backend access
type Staff struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null;size:100" json:"username"`
	PasswordHash string     `gorm:"not null;size:255" json:"-"`
	DisplayName  string     `gorm:"size:255" json:"display_name"`
	Role         string     `gorm:"not null;default:'staff';size:50" json:"role"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName overrides the table name
func (Staff) TableName() string {
	return "staff"
}
