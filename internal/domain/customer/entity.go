// internal/domain/customer/entity.go
package customer

import (
	"time"
)

// Customer represents a shop member
type Customer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;size:255" json:"name"`
	MobileNumber  string    `gorm:"size:50;index" json:"mobile_number"`
	Email         string    `gorm:"size:255" json:"email"`
	BandaiID      string    `gorm:"column:bandai_id;size:100" json:"bandai_id"`
	BushiroadID   string    `gorm:"column:bushiroad_id;size:100" json:"bushiroad_id"`
	Status        string    `gorm:"not null;default:'Active';size:20" json:"status"`
	LoyaltyPoints int       `gorm:"not null;default:0" json:"loyalty_points"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Customer) TableName() string {
	return "customers"
}
