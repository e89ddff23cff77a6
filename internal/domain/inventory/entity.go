// internal/domain/inventory/entity.go
package inventory

import (
	"time"

	"github.com/your-org/cardshop-backend/internal/domain/catalog"
)

// InventoryItem represents a sellable product: a single card, a booster
// box, a case, or any other stocked unit.
type InventoryItem struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Barcode       string     `gorm:"size:64;index" json:"barcode"`
	GameTitle     string     `gorm:"size:100;index" json:"game_title"`
	CategoryID    *uint      `gorm:"index" json:"category_id"`
	CardID        string     `gorm:"size:100" json:"card_id"`
	CardName      string     `gorm:"not null;size:255" json:"card_name"`
	Price         float64    `gorm:"type:decimal(10,2);default:0" json:"price"`
	CostPrice     float64    `gorm:"type:decimal(10,2);default:0" json:"cost_price"`
	StockQuantity int        `gorm:"not null;default:0" json:"stock_quantity"`
	PacksPerBox   int        `gorm:"default:1" json:"packs_per_box"`
	BoxesPerCase  int        `gorm:"default:1" json:"boxes_per_case"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relationships
	Category *catalog.Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// ItemStatus is the admin stock-intelligence view of one inventory item.
// The qty_ordered / qty_allocated / active_po_count columns are derived
// from purchase-order lines on every read, never stored.
type ItemStatus struct {
	ID            uint    `json:"id"`
	Barcode       string  `json:"barcode"`
	GameTitle     string  `json:"game_title"`
	CategoryID    *uint   `json:"category_id"`
	CardID        string  `json:"card_id"`
	CardName      string  `json:"card_name"`
	Price         float64 `json:"price"`
	CostPrice     float64 `json:"cost_price"`
	StockQuantity int     `json:"stock_quantity"`
	PacksPerBox   int     `json:"packs_per_box"`
	BoxesPerCase  int     `json:"boxes_per_case"`
	CategoryName  string  `json:"category_name"`
	QtyOrdered    int     `json:"qty_ordered"`
	QtyAllocated  int     `json:"qty_allocated"`
	ActivePOCount int     `json:"active_po_count"`
}

// TableName overrides
func (InventoryItem) TableName() string { return "inventory" }
