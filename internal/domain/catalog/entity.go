// internal/domain/catalog/entity.go
package catalog

import (
	"time"
)

// Category represents a product category (e.g. "Booster Box", "Single Card")
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Supplier represents a distributor the shop restocks from
type Supplier struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;size:255" json:"name"`
	ContactPerson string    `gorm:"size:100" json:"contact_person"`
	Email         string    `gorm:"size:255" json:"email"`
	Phone         string    `gorm:"size:50" json:"phone"`
	PaymentTerms  string    `gorm:"size:50;default:'Immediate'" json:"payment_terms"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides
func (Category) TableName() string { return "categories" }
func (Supplier) TableName() string { return "suppliers" }
