// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles category and supplier business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateSupplierRequest represents supplier creation data
type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PaymentTerms  string `json:"payment_terms"`
}

// CATEGORIES

// GetCategories retrieves all categories ordered by name
func (s *Service) GetCategories() ([]Category, error) {
	var categories []Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a new category, rejecting duplicate names
func (s *Service) CreateCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("category name is required")
	}

	var existing Category
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("category '%s' already exists", name)
	}

	category := &Category{Name: name}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// DeleteCategory deletes a category unless inventory rows still reference it
func (s *Service) DeleteCategory(id uint) error {
	var category Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("category %d not found", id)
		}
		return fmt.Errorf("failed to load category: %w", err)
	}

	var refs int64
	if err := s.db.Table("inventory").Where("category_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to check category references: %w", err)
	}
	if refs > 0 {
		return apperr.ReferentialIntegrity("cannot delete: category is linked to %d products", refs)
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// SUPPLIERS

// GetSuppliers retrieves all suppliers ordered by name
func (s *Service) GetSuppliers() ([]Supplier, error) {
	var suppliers []Supplier
	if err := s.db.Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve suppliers: %w", err)
	}
	return suppliers, nil
}

// CreateSupplier creates a new supplier
func (s *Service) CreateSupplier(req *CreateSupplierRequest) (*Supplier, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.Validation("supplier name is required")
	}

	terms := req.PaymentTerms
	if terms == "" {
		terms = "Immediate"
	}

	supplier := &Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		PaymentTerms:  terms,
	}
	if err := s.db.Create(supplier).Error; err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return supplier, nil
}

// DeleteSupplier deletes a supplier unless purchase orders still reference it
func (s *Service) DeleteSupplier(id uint) error {
	var supplier Supplier
	if err := s.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("supplier %d not found", id)
		}
		return fmt.Errorf("failed to load supplier: %w", err)
	}

	var refs int64
	if err := s.db.Table("purchase_orders").Where("supplier_id = ?", id).Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to check supplier references: %w", err)
	}
	if refs > 0 {
		return apperr.ReferentialIntegrity("cannot delete: supplier is linked to %d purchase orders", refs)
	}

	if err := s.db.Delete(&supplier).Error; err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}
