// internal/domain/packs/service.go
package packs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/domain/event"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service maintains the pack storage ledger
type Service struct {
	db     *gorm.DB
	config *config.Config
	events *event.Service
}

// NewService creates a new pack ledger service
func NewService(db *gorm.DB, cfg *config.Config, events *event.Service) *Service {
	return &Service{
		db:     db,
		config: cfg,
		events: events,
	}
}

// ApplyChangeRequest represents a signed pack credit or redemption
type ApplyChangeRequest struct {
	CustomerID   uint   `json:"customer_id" binding:"required"`
	GameTitle    string `json:"game_title" binding:"required"`
	PackType     string `json:"pack_type" binding:"required"`
	ChangeAmount int    `json:"change_amount" binding:"required"`
	EventID      *uint  `json:"event_id"`
	Note         string `json:"note"`
}

// BalanceView is a pack balance joined with the customer's name
type BalanceView struct {
	ID           uint      `json:"id"`
	CustomerID   uint      `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	GameTitle    string    `json:"game_title"`
	PackType     string    `json:"pack_type"`
	Quantity     int       `json:"quantity"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TransactionView is a ledger entry joined with the event name, if any
type TransactionView struct {
	ID        uint      `json:"id"`
	GameTitle string    `json:"game_title"`
	PackType  string    `json:"pack_type"`
	Amount    int       `json:"amount"`
	EventID   *uint     `json:"event_id"`
	EventName string    `json:"event_name"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// ApplyChange applies a signed pack quantity change for one
// (customer, game, pack type) key: the balance row is upserted and a
// ledger entry appended in the same transaction, so the balance always
// equals the sum of logged amounts.
//
// Pack additions tied to an event require a prior registration for
// that event. Redemptions that would drive a balance negative are
// rejected.
func (s *Service) ApplyChange(req *ApplyChangeRequest) (*PackBalance, error) {
	gameTitle := strings.TrimSpace(req.GameTitle)
	packType := strings.TrimSpace(req.PackType)
	if gameTitle == "" || packType == "" {
		return nil, apperr.Validation("game_title and pack_type are required")
	}
	if req.ChangeAmount == 0 {
		return nil, apperr.Validation("change_amount must not be zero")
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

	if req.ChangeAmount > 0 && req.EventID != nil {
		registered, err := s.events.IsRegistered(tx, req.CustomerID, *req.EventID)
		if err != nil {
			tx.Rollback()
			return nil, apperr.Transaction(err, "failed to verify event registration")
		}
		if !registered {
			tx.Rollback()
			return nil, apperr.BusinessRule("customer %d is not registered for event %d", req.CustomerID, *req.EventID)
		}
	}

	var balance PackBalance
	err := tx.Where("customer_id = ? AND game_title = ? AND pack_type = ?",
		req.CustomerID, gameTitle, packType).First(&balance).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if req.ChangeAmount < 0 {
			tx.Rollback()
			return nil, apperr.BusinessRule("insufficient pack balance: have 0, requested %d", -req.ChangeAmount)
		}
		balance = PackBalance{
			CustomerID: req.CustomerID,
			GameTitle:  gameTitle,
			PackType:   packType,
			Quantity:   req.ChangeAmount,
		}
		if err := tx.Create(&balance).Error; err != nil {
			tx.Rollback()
			return nil, apperr.Transaction(err, "failed to create pack balance")
		}
	case err != nil:
		tx.Rollback()
		return nil, apperr.Transaction(err, "failed to load pack balance")
	default:
		newQuantity := balance.Quantity + req.ChangeAmount
		if newQuantity < 0 {
			tx.Rollback()
			return nil, apperr.BusinessRule("insufficient pack balance: have %d, requested %d",
				balance.Quantity, -req.ChangeAmount)
		}
		if err := tx.Model(&PackBalance{}).Where("id = ?", balance.ID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", req.ChangeAmount)).Error; err != nil {
			tx.Rollback()
			return nil, apperr.Transaction(err, "failed to update pack balance")
		}
		balance.Quantity = newQuantity
	}

	entry := &PackTransaction{
		CustomerID: req.CustomerID,
		GameTitle:  gameTitle,
		PackType:   packType,
		Amount:     req.ChangeAmount,
		EventID:    req.EventID,
		Note:       strings.TrimSpace(req.Note),
	}
	if err := tx.Create(entry).Error; err != nil {
		tx.Rollback()
		return nil, apperr.Transaction(err, "failed to append pack transaction")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperr.Transaction(err, "failed to commit pack change")
	}
	return &balance, nil
}

// Balances retrieves every non-empty pack balance with the customer name
func (s *Service) Balances() ([]BalanceView, error) {
	var rows []BalanceView
	err := s.db.Table("pack_balances b").
		Select("b.id, b.customer_id, c.name AS customer_name, b.game_title, b.pack_type, b.quantity, b.updated_at").
		Joins("JOIN customers c ON c.id = b.customer_id").
		Where("b.quantity > 0").
		Order("c.name ASC, b.game_title ASC, b.pack_type ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pack balances: %w", err)
	}
	return rows, nil
}

// History retrieves a customer's full ledger, newest first
func (s *Service) History(customerID uint) ([]TransactionView, error) {
	var rows []TransactionView
	err := s.db.Table("pack_transactions t").
		Select("t.id, t.game_title, t.pack_type, t.amount, t.event_id, COALESCE(e.name, '') AS event_name, t.note, t.created_at").
		Joins("LEFT JOIN events e ON e.id = t.event_id").
		Where("t.customer_id = ?", customerID).
		Order("t.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve pack history: %w", err)
	}
	return rows, nil
}
