// internal/domain/sales/entity.go
package sales

import (
	"time"
)

// OrderType distinguishes immediate sales from preorders. Only In-Stock
// orders move inventory at creation time; a preorder waits for a separate
// fulfillment step.
type OrderType string

const (
	OrderTypeInStock  OrderType = "In-Stock"
	OrderTypePreorder OrderType = "Preorder"
)

// OrderStatus represents the customer order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPartial   OrderStatus = "Partial"
	OrderStatusPaid      OrderStatus = "Paid"
	OrderStatusFulfilled OrderStatus = "Fulfilled"
)

const paymentEpsilon = 0.01

// DeriveStatus computes the payment-driven status from the order total
// and the cumulative amount received.
func DeriveStatus(totalAmount, totalPaid float64) OrderStatus {
	if totalPaid >= totalAmount-paymentEpsilon {
		return OrderStatusPaid
	}
	return OrderStatusPartial
}

// CustomerOrder represents a sale or preorder
type CustomerOrder struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerID    uint        `gorm:"not null;index" json:"customer_id"`
	OrderType     OrderType   `gorm:"not null;size:20" json:"order_type"`
	Status        OrderStatus `gorm:"not null;default:'Paid';size:20" json:"status"`
	TotalAmount   float64     `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	DepositAmount float64     `gorm:"type:decimal(10,2);default:0" json:"deposit_amount"`
	PaymentMethod string      `gorm:"size:50" json:"payment_method"`
	OrderDate     time.Time   `gorm:"not null;autoCreateTime" json:"order_date"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Relationships
	Items []CustomerOrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}

// CustomerOrderItem is one line on a customer order. unit_price is a
// snapshot of the price at sale time, not a live reference.
type CustomerOrderItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	InventoryID uint      `gorm:"not null;index" json:"inventory_id"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides
func (CustomerOrder) TableName() string     { return "customer_orders" }
func (CustomerOrderItem) TableName() string { return "customer_order_items" }
