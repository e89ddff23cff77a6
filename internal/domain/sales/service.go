// internal/domain/sales/service.go
package sales

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/domain/inventory"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles customer sales and preorders
type Service struct {
	db        *gorm.DB
	config    *config.Config
	inventory *inventory.Service
}

// NewService creates a new sales service
func NewService(db *gorm.DB, cfg *config.Config, inv *inventory.Service) *Service {
	return &Service{
		db:        db,
		config:    cfg,
		inventory: inv,
	}
}

// SaleLine is one line of an incoming sale request
type SaleLine struct {
	InventoryID uint    `json:"id" binding:"required"`
	Quantity    int     `json:"qty" binding:"required"`
	UnitPrice   float64 `json:"price"`
}

// CreateOrderRequest represents a new sale or preorder
type CreateOrderRequest struct {
	CustomerID    uint        `json:"customer_id" binding:"required"`
	OrderType     OrderType   `json:"order_type" binding:"required"`
	Status        OrderStatus `json:"status"`
	DepositAmount float64     `json:"deposit_amount"`
	PaymentMethod string      `json:"payment_method"`
	Items         []SaleLine  `json:"items" binding:"required"`
}

// RecordPaymentRequest represents a follow-up payment on a preorder
type RecordPaymentRequest struct {
	AmountPaid float64 `json:"amount_paid" binding:"required"`
}

// OrderSummary is a customer order joined with the customer's name
type OrderSummary struct {
	ID            uint        `json:"id"`
	CustomerID    uint        `json:"customer_id"`
	CustomerName  string      `json:"customer_name"`
	OrderType     OrderType   `json:"order_type"`
	Status        OrderStatus `json:"status"`
	TotalAmount   float64     `json:"total_amount"`
	DepositAmount float64     `json:"deposit_amount"`
	PaymentMethod string      `json:"payment_method"`
	OrderDate     time.Time   `json:"order_date"`
	ItemsSummary  string      `json:"items_summary"`
	GameTitles    string      `json:"game_titles"`
}

// Create records a sale or preorder atomically. The total is always
// recomputed server side from the submitted lines. In-Stock orders
// decrement stock through the shared adjustment engine inside the same
// transaction; preorders leave stock untouched until fulfillment.
func (s *Service) Create(req *CreateOrderRequest) (*CustomerOrder, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Validation("order must contain at least one item")
	}
	if req.OrderType != OrderTypeInStock && req.OrderType != OrderTypePreorder {
		return nil, apperr.Validation("order_type must be 'In-Stock' or 'Preorder'")
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, apperr.Validation("quantity must be positive for item %d", line.InventoryID)
		}
		if line.UnitPrice < 0 {
			return nil, apperr.Validation("price must not be negative for item %d", line.InventoryID)
		}
	}

	var total float64
	for _, line := range req.Items {
		total += float64(line.Quantity) * line.UnitPrice
	}

	status := req.Status
	if status == "" {
		status = OrderStatusPaid
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var exists int64
	if err := tx.Table("customers").Where("id = ?", req.CustomerID).Count(&exists).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Transaction(err, "failed to verify customer")
	}
	if exists == 0 {
		tx.Rollback()
		return nil, apperr.NotFound("customer %d not found", req.CustomerID)
	}

	order := &CustomerOrder{
		CustomerID:    req.CustomerID,
		OrderType:     req.OrderType,
		Status:        status,
		TotalAmount:   total,
		DepositAmount: req.DepositAmount,
		PaymentMethod: req.PaymentMethod,
		OrderDate:     time.Now(),
	}
	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Transaction(err, "failed to create order")
	}

	for _, line := range req.Items {
		var count int64
		if err := tx.Model(&inventory.InventoryItem{}).Where("id = ?", line.InventoryID).Count(&count).Error; err != nil {
			tx.Rollback()
			return nil, apperr.Transaction(err, "failed to verify inventory item")
		}
		if count == 0 {
			tx.Rollback()
			return nil, apperr.NotFound("inventory item %d not found", line.InventoryID)
		}

		item := &CustomerOrderItem{
			OrderID:     order.ID,
			InventoryID: line.InventoryID,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		}
		if err := tx.Create(item).Error; err != nil {
			tx.Rollback()
			return nil, apperr.Transaction(err, "failed to create order item")
		}

		if req.OrderType == OrderTypeInStock {
			if err := s.inventory.AdjustStock(tx, line.InventoryID, -line.Quantity); err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Transaction(err, "failed to commit order")
	}

	if err := s.db.Preload("Items").First(order, order.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	return order, nil
}

// RecordPayment applies a follow-up payment to an order, typically a
// preorder balance. The status flips to Paid once cumulative payments
// cover the total within a cent.
func (s *Service) RecordPayment(orderID uint, req *RecordPaymentRequest) (*CustomerOrder, error) {
	if req.AmountPaid <= 0 {
		return nil, apperr.Validation("amount_paid must be positive")
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var order CustomerOrder
	if err := tx.First(&order, orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order %d not found", orderID)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	newDeposit := order.DepositAmount + req.AmountPaid
	status := DeriveStatus(order.TotalAmount, newDeposit)

	updates := map[string]interface{}{
		"deposit_amount": newDeposit,
		"status":         status,
	}
	if err := tx.Model(&CustomerOrder{}).Where("id = ?", orderID).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Transaction(err, "failed to record payment")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Transaction(err, "failed to commit payment")
	}

	order.DepositAmount = newDeposit
	order.Status = status
	return &order, nil
}

// History retrieves all customer orders, newest first, with per-order
// line summaries.
func (s *Service) History(search string) ([]OrderSummary, error) {
	query := s.db.Table("customer_orders o").
		Select(`o.id, o.customer_id, c.name AS customer_name, o.order_type, o.status,
			o.total_amount, o.deposit_amount, o.payment_method, o.order_date,
			COALESCE(string_agg(i.card_name || ' (x' || oi.quantity || ')', ', '), '') AS items_summary,
			COALESCE(string_agg(DISTINCT i.game_title, ', '), '') AS game_titles`).
		Joins("JOIN customers c ON c.id = o.customer_id").
		Joins("LEFT JOIN customer_order_items oi ON oi.order_id = o.id").
		Joins("LEFT JOIN inventory i ON i.id = oi.inventory_id").
		Group("o.id, c.name")

	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("c.name ILIKE ?", "%"+search+"%")
	}

	var rows []OrderSummary
	if err := query.Order("o.order_date DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve sales history: %w", err)
	}
	return rows, nil
}

// Preorders retrieves outstanding preorders that still await fulfillment.
func (s *Service) Preorders() ([]OrderSummary, error) {
	var rows []OrderSummary
	err := s.db.Table("customer_orders o").
		Select(`o.id, o.customer_id, c.name AS customer_name, o.order_type, o.status,
			o.total_amount, o.deposit_amount, o.payment_method, o.order_date,
			COALESCE(string_agg(i.card_name || ' (x' || oi.quantity || ')', ', '), '') AS items_summary,
			COALESCE(string_agg(DISTINCT i.game_title, ', '), '') AS game_titles`).
		Joins("JOIN customers c ON c.id = o.customer_id").
		Joins("LEFT JOIN customer_order_items oi ON oi.order_id = o.id").
		Joins("LEFT JOIN inventory i ON i.id = oi.inventory_id").
		Where("o.order_type = ? AND o.status <> ?", OrderTypePreorder, OrderStatusFulfilled).
		Group("o.id, c.name").
		Order("o.order_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve preorders: %w", err)
	}
	return rows, nil
}
