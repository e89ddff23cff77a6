// internal/domain/inventory/service.go
package inventory

import (
	"errors"
	"fmt"

	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles inventory business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddItemRequest represents product registration data
type AddItemRequest struct {
	Barcode       string  `json:"barcode"`
	GameTitle     string  `json:"game_title"`
	CategoryID    *uint   `json:"category_id"`
	CardID        string  `json:"card_id"`
	CardName      string  `json:"card_name" binding:"required"`
	Price         float64 `json:"price"`
	CostPrice     float64 `json:"cost_price"`
	StockQuantity int     `json:"stock_quantity"`
	PacksPerBox   int     `json:"packs_per_box"`
	BoxesPerCase  int     `json:"boxes_per_case"`
}

// UpdateItemRequest represents an inventory edit
type UpdateItemRequest struct {
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	CostPrice     float64 `json:"cost_price"`
	CategoryID    *uint   `json:"category_id"`
}

// STOCK ADJUSTMENT ENGINE

// AdjustStock applies a signed quantity delta to an inventory row as a
// single relative read-modify-write. It must be called inside the same
// transaction as the business event that justifies the change; tx may be
// the pooled handle only for standalone manual edits.
//
// No floor is enforced: negative stock is representable, matching the
// store policy of recording oversells rather than rejecting them.
func (s *Service) AdjustStock(tx *gorm.DB, inventoryID uint, delta int) error {
	result := tx.Model(&InventoryItem{}).
		Where("id = ?", inventoryID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta))

	if result.Error != nil {
		return fmt.Errorf("failed to adjust stock for item %d: %w", inventoryID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("inventory item %d not found", inventoryID)
	}
	return nil
}

// INVENTORY CRUD

// GetItems retrieves the public inventory view (non-negative stock only)
func (s *Service) GetItems() ([]ItemStatus, error) {
	return s.queryStatus("WHERE i.stock_quantity >= 0", "ORDER BY category_name, i.card_name ASC")
}

// GetStatus retrieves the admin view of every item with derived
// purchase-order aggregates.
func (s *Service) GetStatus() ([]ItemStatus, error) {
	return s.queryStatus("", "ORDER BY i.card_name ASC")
}

func (s *Service) queryStatus(where, order string) ([]ItemStatus, error) {
	var rows []ItemStatus
	query := fmt.Sprintf(`
		SELECT i.*, COALESCE(c.name, '') AS category_name,
			COALESCE((SELECT SUM(poi.ordered_qty)
				FROM po_items poi
				JOIN purchase_orders po ON po.id = poi.po_id
				WHERE poi.inventory_id = i.id AND po.status = 'Ordered'), 0) AS qty_ordered,
			COALESCE((SELECT SUM(poi.allocated_qty)
				FROM po_items poi
				JOIN purchase_orders po ON po.id = poi.po_id
				WHERE poi.inventory_id = i.id AND po.status = 'Invoiced'), 0) AS qty_allocated,
			COALESCE((SELECT COUNT(DISTINCT po.id)
				FROM po_items poi
				JOIN purchase_orders po ON po.id = poi.po_id
				WHERE poi.inventory_id = i.id AND po.status IN ('Ordered', 'Invoiced')), 0) AS active_po_count
		FROM inventory i
		LEFT JOIN categories c ON i.category_id = c.id
		%s %s`, where, order)

	if err := s.db.Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve inventory: %w", err)
	}
	return rows, nil
}

// GetItem retrieves a single inventory item
func (s *Service) GetItem(id uint) (*InventoryItem, error) {
	var item InventoryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("inventory item %d not found", id)
		}
		return nil, fmt.Errorf("failed to retrieve inventory item: %w", err)
	}
	return &item, nil
}

// AddItem registers a new product
func (s *Service) AddItem(req *AddItemRequest) (*InventoryItem, error) {
	packsPerBox := req.PacksPerBox
	if packsPerBox <= 0 {
		packsPerBox = 1
	}
	boxesPerCase := req.BoxesPerCase
	if boxesPerCase <= 0 {
		boxesPerCase = 1
	}

	item := &InventoryItem{
		Barcode:       req.Barcode,
		GameTitle:     req.GameTitle,
		CategoryID:    req.CategoryID,
		CardID:        req.CardID,
		CardName:      req.CardName,
		Price:         req.Price,
		CostPrice:     req.CostPrice,
		StockQuantity: req.StockQuantity,
		PacksPerBox:   packsPerBox,
		BoxesPerCase:  boxesPerCase,
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to register product: %w", err)
	}
	return item, nil
}

// UpdateItem edits price, cost, category and stock. The absolute stock
// value from the request is converted to a delta and applied through the
// adjustment engine so the edit shares the same serialization path as
// receipts and sales.
func (s *Service) UpdateItem(id uint, req *UpdateItemRequest) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var item InventoryItem
	if err := tx.First(&item, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("inventory item %d not found", id)
		}
		return fmt.Errorf("failed to load inventory item: %w", err)
	}

	if delta := req.StockQuantity - item.StockQuantity; delta != 0 {
		if err := s.AdjustStock(tx, id, delta); err != nil {
			tx.Rollback()
			return err
		}
	}

	updates := map[string]interface{}{
		"price":       req.Price,
		"cost_price":  req.CostPrice,
		"category_id": req.CategoryID,
	}
	if err := tx.Model(&InventoryItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		tx.Rollback()
		return apperr.Transaction(err, "failed to update inventory item")
	}

	if err := tx.Commit().Error; err != nil {
		return apperr.Transaction(err, "failed to commit inventory update")
	}
	return nil
}

// DeleteItem removes a product unless order lines still reference it
func (s *Service) DeleteItem(id uint) error {
	var item InventoryItem
	if err := s.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("inventory item %d not found", id)
		}
		return fmt.Errorf("failed to load inventory item: %w", err)
	}

	var refs int64
	if err := s.db.Table("po_items").Where("inventory_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to check purchase references: %w", err)
	}
	if refs == 0 {
		if err := s.db.Table("customer_order_items").Where("inventory_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to check sale references: %w", err)
		}
	}
	if refs > 0 {
		return apperr.ReferentialIntegrity("cannot delete: product appears on existing orders")
	}

	if err := s.db.Delete(&item).Error; err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}
