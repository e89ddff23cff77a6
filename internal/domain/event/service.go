// internal/domain/event/service.go
package event

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles events and registrations
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new event service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateRequest represents new event data
type CreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	GameTitle   string  `json:"game_title"`
	EventDate   string  `json:"event_date" binding:"required"`
	Fee         float64 `json:"fee"`
	Description string  `json:"description"`
}

// RegisterRequest represents a customer signing up for an event
type RegisterRequest struct {
	CustomerID uint `json:"customer_id" binding:"required"`
}

// List retrieves all events, upcoming first
func (s *Service) List() ([]Event, error) {
	var events []Event
	if err := s.db.Order("event_date DESC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve events: %w", err)
	}
	return events, nil
}

// Create schedules a new event
func (s *Service) Create(req *CreateRequest) (*Event, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("event name is required")
	}
	eventDate, err := time.Parse("2006-01-02", req.EventDate)
	if err != nil {
		return nil, apperr.Validation("event_date must be YYYY-MM-DD")
	}
	if req.Fee < 0 {
		return nil, apperr.Validation("fee must not be negative")
	}

	ev := &Event{
		Name:        name,
		GameTitle:   strings.TrimSpace(req.GameTitle),
		EventDate:   eventDate,
		Fee:         req.Fee,
		Description: req.Description,
	}
	if err := s.db.Create(ev).Error; err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return ev, nil
}

// Register signs a customer up for an event
func (s *Service) Register(eventID uint, req *RegisterRequest) (*EventRegistration, error) {
	var ev Event
	if err := s.db.First(&ev, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event %d not found", eventID)
		}
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	var exists int64
	if err := s.db.Table("customers").Where("id = ?", req.CustomerID).Count(&exists).Error; err != nil {
		return nil, fmt.Errorf("failed to verify customer: %w", err)
	}
	if exists == 0 {
		return nil, apperr.NotFound("customer %d not found", req.CustomerID)
	}

	var dup int64
	if err := s.db.Model(&EventRegistration{}).
		Where("event_id = ? AND customer_id = ?", eventID, req.CustomerID).
		Count(&dup).Error; err != nil {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}
	if dup > 0 {
		return nil, apperr.Conflict("customer %d is already registered for event %d", req.CustomerID, eventID)
	}

	reg := &EventRegistration{
		EventID:    eventID,
		CustomerID: req.CustomerID,
	}
	if err := s.db.Create(reg).Error; err != nil {
		return nil, fmt.Errorf("failed to register customer: %w", err)
	}
	return reg, nil
}

// IsRegistered reports whether a customer holds a registration for an
// event. Used by the pack ledger's policy check.
func (s *Service) IsRegistered(tx *gorm.DB, customerID, eventID uint) (bool, error) {
	var count int64
	if err := tx.Model(&EventRegistration{}).
		Where("event_id = ? AND customer_id = ?", eventID, customerID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check event registration: %w", err)
	}
	return count > 0, nil
}
