// internal/domain/customer/service.go
package customer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles customer management
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new customer service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateRequest represents new customer data
type CreateRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	BandaiID     string `json:"bandai_id"`
	BushiroadID  string `json:"bushiroad_id"`
	Notes        string `json:"notes"`
}

// HistoryEntry is one past order with a flattened line summary
type HistoryEntry struct {
	ID            uint      `json:"id"`
	OrderType     string    `json:"order_type"`
	Status        string    `json:"status"`
	TotalAmount   float64   `json:"total_amount"`
	DepositAmount float64   `json:"deposit_amount"`
	PaymentMethod string    `json:"payment_method"`
	OrderDate     time.Time `json:"order_date"`
	Items         string    `json:"items"`
}

// RecentEvent is an event the customer registered for
type RecentEvent struct {
	EventID      uint      `json:"event_id"`
	Name         string    `json:"name"`
	EventDate    time.Time `json:"event_date"`
	Fee          float64   `json:"fee"`
	RegisteredAt time.Time `json:"registered_at"`
}

// List retrieves customers, optionally filtered by a free-text search
// across name, contact and loyalty-program identifiers.
func (s *Service) List(search string) ([]Customer, error) {
	query := s.db.Model(&Customer{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"name ILIKE ? OR email ILIKE ? OR mobile_number ILIKE ? OR bandai_id ILIKE ? OR bushiroad_id ILIKE ?",
			like, like, like, like, like)
	}

	var customers []Customer
	if err := query.Order("name ASC").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve customers: %w", err)
	}
	return customers, nil
}

// Create registers a new customer
func (s *Service) Create(req *CreateRequest) (*Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("customer name is required")
	}

	customer := &Customer{
		Name:         name,
		Email:        strings.TrimSpace(req.Email),
		MobileNumber: strings.TrimSpace(req.MobileNumber),
		BandaiID:     strings.TrimSpace(req.BandaiID),
		BushiroadID:  strings.TrimSpace(req.BushiroadID),
		Status:       "Active",
		Notes:        req.Notes,
	}
	if err := s.db.Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// Get retrieves a single customer
func (s *Service) Get(id uint) (*Customer, error) {
	var customer Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("customer %d not found", id)
		}
		return nil, fmt.Errorf("failed to retrieve customer: %w", err)
	}
	return &customer, nil
}

// Delete removes a customer unless orders, pack balances or event
// registrations still reference them.
func (s *Service) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	tables := []string{"customer_orders", "pack_balances", "event_registrations"}
	for _, table := range tables {
		var refs int64
		if err := s.db.Table(table).Where("customer_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("failed to check customer references: %w", err)
		}
		if refs > 0 {
			return apperr.ReferentialIntegrity("cannot delete: customer has existing orders")
		}
	}

	if err := s.db.Delete(&Customer{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// History retrieves a customer's past orders, newest first, each with a
// flattened "Card A (x2), Card B (x1)" line summary.
func (s *Service) History(customerID uint) ([]HistoryEntry, error) {
	var rows []HistoryEntry
	err := s.db.Table("customer_orders o").
		Select(`o.id, o.order_type, o.status, o.total_amount, o.deposit_amount,
			o.payment_method, o.order_date,
			COALESCE(string_agg(i.card_name || ' (x' || oi.quantity || ')', ', '), '') AS items`).
		Joins("JOIN customer_order_items oi ON oi.order_id = o.id").
		Joins("JOIN inventory i ON i.id = oi.inventory_id").
		Where("o.customer_id = ?", customerID).
		Group("o.id").
		Order("o.order_date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve customer history: %w", err)
	}
	return rows, nil
}

// RecentEvents retrieves the customer's latest event registrations.
func (s *Service) RecentEvents(customerID uint, limit int) ([]RecentEvent, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var rows []RecentEvent
	err := s.db.Table("event_registrations r").
		Select("r.event_id, e.name, e.event_date, e.fee, r.created_at AS registered_at").
		Joins("JOIN events e ON e.id = r.event_id").
		Where("r.customer_id = ?", customerID).
		Order("e.event_date DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recent events: %w", err)
	}
	return rows, nil
}
