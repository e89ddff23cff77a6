// internal/domain/purchasing/entity.go
package purchasing

import (
	"time"

	"github.com/your-org/cardshop-backend/internal/domain/catalog"
)

// Status represents the purchase order lifecycle status
type Status string

const (
	StatusOrdered  Status = "Ordered"
	StatusInvoiced Status = "Invoiced"
	StatusReceived Status = "Received"
)

// PaymentStatus represents how much of a purchase order has been paid
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusPartial   PaymentStatus = "Partial"
	PaymentStatusFullyPaid PaymentStatus = "Fully Paid"
)

// DerivePaymentStatus computes the payment status from a total and the
// cumulative paid amount. Supplier invoices carry exact figures, so the
// comparison is strict: a shortfall of even a fraction of a cent stays
// Partial. The transition to Fully Paid is one-way in practice: it is
// only evaluated when a payment is recorded, never when reads happen,
// so a status never silently regresses.
func DerivePaymentStatus(totalCost, paidAmount float64) PaymentStatus {
	if paidAmount >= totalCost {
		return PaymentStatusFullyPaid
	}
	if paidAmount > 0 {
		return PaymentStatusPartial
	}
	return PaymentStatusPending
}

// PurchaseOrder represents a supplier-facing restocking order
type PurchaseOrder struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	SupplierID    uint          `gorm:"not null;index" json:"supplier_id"`
	PONumber      string        `gorm:"column:po_number;uniqueIndex;not null;size:50" json:"po_number"`
	OrderDate     time.Time     `gorm:"not null" json:"order_date"`
	Status        Status        `gorm:"not null;default:'Ordered';size:20" json:"status"`
	PaymentStatus PaymentStatus `gorm:"not null;default:'Pending';size:20" json:"payment_status"`
	TotalCost     float64       `gorm:"type:decimal(10,2);default:0" json:"total_cost"`
	DepositPaid   float64       `gorm:"type:decimal(10,2);default:0" json:"deposit_paid"`
	PaidAmount    float64       `gorm:"type:decimal(10,2);default:0" json:"paid_amount"`
	InvoiceNo     string        `gorm:"size:100" json:"invoice_no"`
	PaymentDate   *time.Time    `json:"payment_date"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Relationships
	Supplier *catalog.Supplier   `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Items    []PurchaseOrderItem `gorm:"foreignKey:POID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// PurchaseOrderItem represents one ordered line on a purchase order.
// received_qty starts at zero and only ever increases through receiving.
type PurchaseOrderItem struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	POID         uint      `gorm:"column:po_id;not null;index" json:"po_id"`
	InventoryID  uint      `gorm:"not null;index" json:"inventory_id"`
	OrderedQty   int       `gorm:"not null" json:"ordered_qty"`
	ReceivedQty  int       `gorm:"not null;default:0" json:"received_qty"`
	AllocatedQty int       `gorm:"default:0" json:"allocated_qty"`
	UnitCost     float64   `gorm:"type:decimal(10,2);default:0" json:"unit_cost"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsActive reports whether the order still counts toward on-order and
// allocation aggregates.
func (p *PurchaseOrder) IsActive() bool {
	return p.Status == StatusOrdered || p.Status == StatusInvoiced
}

// TableName overrides
func (PurchaseOrder) TableName() string     { return "purchase_orders" }
func (PurchaseOrderItem) TableName() string { return "po_items" }
