// internal/domain/purchasing/service.go
package purchasing

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/domain/catalog"
	"github.com/your-org/cardshop-backend/internal/domain/inventory"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service coordinates purchase order transactions
type Service struct {
	db        *gorm.DB
	config    *config.Config
	inventory *inventory.Service
	numbers   NumberGenerator
}

// NewService creates a new purchasing service. A nil generator falls back
// to the UUID strategy.
func NewService(db *gorm.DB, cfg *config.Config, invService *inventory.Service, gen NumberGenerator) *Service {
	if gen == nil {
		gen = UUIDNumberGenerator{}
	}
	return &Service{
		db:        db,
		config:    cfg,
		inventory: invService,
		numbers:   gen,
	}
}

// CreateOrderLine is one ordered line in a creation request
type CreateOrderLine struct {
	InventoryID uint    `json:"inventory_id" binding:"required"`
	Qty         int     `json:"qty" binding:"required"`
	Cost        float64 `json:"cost"`
}

// CreateOrderRequest represents purchase order creation data
type CreateOrderRequest struct {
	SupplierID    uint              `json:"supplier_id" binding:"required"`
	PONumber      string            `json:"po_number"`
	PaymentStatus PaymentStatus     `json:"payment_status"`
	TotalCost     float64           `json:"total_cost"`
	DepositPaid   float64           `json:"deposit_paid"`
	PaidAmount    float64           `json:"paid_amount"`
	Items         []CreateOrderLine `json:"items" binding:"required"`
}

// ReceiveLine is one received line in a receiving request
type ReceiveLine struct {
	POItemID    uint `json:"po_item_id" binding:"required"`
	InventoryID uint `json:"inventory_id" binding:"required"`
	QtyReceived int  `json:"qty_received" binding:"required"`
}

// RecordPaymentRequest represents supplier payment data
type RecordPaymentRequest struct {
	InvoiceNo      string  `json:"invoice_no"`
	PaymentDate    string  `json:"payment_date"`
	AmountPaid     float64 `json:"amount_paid"`
	FinalTotalCost float64 `json:"final_total_cost" binding:"required"`
}

// ListRequest represents purchase order list filters
type ListRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Limit     int    `form:"limit,default=100"`
}

// OrderSummary is one row of the purchase order history view
type OrderSummary struct {
	ID            uint          `json:"id"`
	PONumber      string        `json:"po_number"`
	Status        Status        `json:"status"`
	OrderDate     time.Time     `json:"order_date"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TotalCost     float64       `json:"total_cost"`
	PaidAmount    float64       `json:"paid_amount"`
	InvoiceNo     string        `json:"invoice_no"`
	PaymentDate   *time.Time    `json:"payment_date"`
	SupplierName  string        `json:"supplier_name"`
	OriginalValue float64       `json:"original_value"`
}

// ItemDetail is one line of a purchase order detail view
type ItemDetail struct {
	ID           uint    `json:"id"`
	POID         uint    `json:"po_id"`
	InventoryID  uint    `json:"inventory_id"`
	OrderedQty   int     `json:"ordered_qty"`
	ReceivedQty  int     `json:"received_qty"`
	AllocatedQty int     `json:"allocated_qty"`
	UnitCost     float64 `json:"unit_cost"`
	CardName     string  `json:"card_name"`
	GameTitle    string  `json:"game_title"`
}

// Create creates a purchase order header and its lines in one atomic
// unit. Either the whole order exists afterwards or none of it does.
func (s *Service) Create(req *CreateOrderRequest) (*PurchaseOrder, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Validation("purchase order requires at least one line")
	}
	for _, line := range req.Items {
		if line.Qty <= 0 {
			return nil, apperr.Validation("ordered quantity must be positive for item %d", line.InventoryID)
		}
	}

	var supplier catalog.Supplier
	if err := s.db.First(&supplier, req.SupplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("supplier %d not found", req.SupplierID)
		}
		return nil, fmt.Errorf("failed to load supplier: %w", err)
	}

	poNumber := req.PONumber
	if poNumber == "" {
		poNumber = s.numbers.Next(time.Now())
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = PaymentStatusPending
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	order := &PurchaseOrder{
		SupplierID:    req.SupplierID,
		PONumber:      poNumber,
		OrderDate:     time.Now(),
		Status:        StatusOrdered,
		PaymentStatus: paymentStatus,
		TotalCost:     req.TotalCost,
		DepositPaid:   req.DepositPaid,
		PaidAmount:    req.PaidAmount,
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Transaction(err, "failed to create purchase order")
	}

	for _, line := range req.Items {
		var item inventory.InventoryItem
		if err := tx.First(&item, line.InventoryID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("inventory item %d not found", line.InventoryID)
			}
			return nil, apperr.Transaction(err, "failed to validate order line")
		}

		poItem := PurchaseOrderItem{
			POID:        order.ID,
			InventoryID: line.InventoryID,
			OrderedQty:  line.Qty,
			ReceivedQty: 0,
			UnitCost:    line.Cost,
		}
		if err := tx.Create(&poItem).Error; err != nil {
			tx.Rollback()
			return nil, apperr.Transaction(err, "failed to create purchase order line")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Transaction(err, "failed to commit purchase order")
	}
	return order, nil
}

// Receive records a shipment against a purchase order. For every line the
// item's received_qty and the matching inventory stock both increase by
// qty_received, in one transaction: a multi-line shipment is never
// partially committed.
func (s *Service) Receive(poID uint, lines []ReceiveLine) error {
	if len(lines) == 0 {
		return apperr.Validation("receive requires at least one line")
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, line := range lines {
		if line.QtyReceived <= 0 {
			tx.Rollback()
			return apperr.Validation("received quantity must be positive for line %d", line.POItemID)
		}

		var item PurchaseOrderItem
		if err := tx.Where("id = ? AND po_id = ?", line.POItemID, poID).First(&item).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("purchase order line %d not found on order %d", line.POItemID, poID)
			}
			return apperr.Transaction(err, "failed to load purchase order line")
		}

		if item.ReceivedQty+line.QtyReceived > item.OrderedQty {
			tx.Rollback()
			return apperr.BusinessRule("line %d: receiving %d would exceed ordered quantity %d (already received %d)",
				line.POItemID, line.QtyReceived, item.OrderedQty, item.ReceivedQty)
		}

		result := tx.Model(&PurchaseOrderItem{}).
			Where("id = ?", line.POItemID).
			UpdateColumn("received_qty", gorm.Expr("received_qty + ?", line.QtyReceived))
		if result.Error != nil {
			tx.Rollback()
			return apperr.Transaction(result.Error, "failed to update received quantity")
		}

		if err := s.inventory.AdjustStock(tx, line.InventoryID, line.QtyReceived); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return apperr.Transaction(err, "failed to commit receiving")
	}
	return nil
}

// RecordPayment records a supplier payment and invoice against an order.
// The payment status is re-derived against the final total supplied with
// the call, since invoiced totals routinely differ from ordered totals.
func (s *Service) RecordPayment(poID uint, req *RecordPaymentRequest) (*PurchaseOrder, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var order PurchaseOrder
	if err := tx.First(&order, poID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("purchase order %d not found", poID)
		}
		return nil, apperr.Transaction(err, "failed to load purchase order")
	}

	newPaid := order.PaidAmount + req.AmountPaid
	updates := map[string]interface{}{
		"paid_amount":    newPaid,
		"total_cost":     req.FinalTotalCost,
		"payment_status": DerivePaymentStatus(req.FinalTotalCost, newPaid),
	}
	if req.InvoiceNo != "" {
		updates["invoice_no"] = req.InvoiceNo
	}
	if req.PaymentDate != "" {
		parsed, err := time.Parse("2006-01-02", req.PaymentDate)
		if err != nil {
			tx.Rollback()
			return nil, apperr.Validation("invalid payment_date %q, expected YYYY-MM-DD", req.PaymentDate)
		}
		updates["payment_date"] = parsed
	}

	if err := tx.Model(&order).Updates(updates).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Transaction(err, "failed to record payment")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Transaction(err, "failed to commit payment")
	}

	if err := s.db.First(&order, poID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload purchase order: %w", err)
	}
	return &order, nil
}

// List retrieves purchase order history with filters. original_value is
// recomputed from the lines for comparison against the invoiced total.
func (s *Service) List(req *ListRequest) ([]OrderSummary, error) {
	query := s.db.Table("purchase_orders po").
		Select(`po.id, po.po_number, po.status, po.order_date, po.payment_status,
			po.total_cost, po.paid_amount, po.invoice_no, po.payment_date,
			COALESCE(s.name, 'Unknown Supplier') AS supplier_name,
			COALESCE((SELECT SUM(poi.ordered_qty * poi.unit_cost)
				FROM po_items poi WHERE poi.po_id = po.id), 0) AS original_value`).
		Joins("LEFT JOIN suppliers s ON po.supplier_id = s.id")

	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("po.po_number ILIKE ? OR s.name ILIKE ? OR po.invoice_no ILIKE ?", like, like, like)
	}
	if req.Status != "" {
		query = query.Where("po.status = ?", req.Status)
	}
	if req.StartDate != "" {
		query = query.Where("po.order_date >= ?", req.StartDate)
	}
	if req.EndDate != "" {
		query = query.Where("po.order_date <= ?", req.EndDate)
	}

	limit := req.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var rows []OrderSummary
	if err := query.Order("po.order_date DESC").Limit(limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve purchase orders: %w", err)
	}
	return rows, nil
}

// GetItems retrieves the lines of one purchase order with product names
func (s *Service) GetItems(poID uint) ([]ItemDetail, error) {
	var rows []ItemDetail
	err := s.db.Table("po_items poi").
		Select("poi.*, i.card_name, i.game_title").
		Joins("JOIN inventory i ON poi.inventory_id = i.id").
		Where("poi.po_id = ?", poID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve purchase order items: %w", err)
	}
	return rows, nil
}
