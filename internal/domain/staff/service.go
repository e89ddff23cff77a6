// internal/domain/staff/service.go
package staff

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/your-org/cardshop-backend/internal/config"
	"github.com/your-org/cardshop-backend/internal/pkg/apperr"
	"github.com/your-org/cardshop-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles staff accounts and authentication
type Service struct {
	db        *gorm.DB
	config    *config.Config
	jwt       *auth.JWTManager
	passwords *auth.PasswordManager
}

// NewService creates a new staff service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:        db,
		config:    cfg,
		jwt:       auth.NewJWTManager(cfg),
		passwords: auth.NewPasswordManager(cfg),
	}
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the staff profile
type LoginResponse struct {
	Token string `json:"token"`
	User  *Staff `json:"user"`
}

// CreateRequest represents a new staff account
type CreateRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Login verifies credentials and issues an access token
func (s *Service) Login(req *LoginRequest) (*LoginResponse, error) {
	var member Staff
	err := s.db.Where("username = ?", strings.ToLower(strings.TrimSpace(req.Username))).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Validation("invalid username or password")
		}
		return nil, fmt.Errorf("failed to load staff account: %w", err)
	}

	if !member.IsActive {
		return nil, apperr.Validation("account is deactivated")
	}
	if err := s.passwords.VerifyPassword(req.Password, member.PasswordHash); err != nil {
		return nil, apperr.Validation("invalid username or password")
	}

	token, err := s.jwt.GenerateToken(member.ID, member.Username, member.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	now := time.Now()
	s.db.Model(&member).UpdateColumn("last_login_at", &now)
	member.LastLoginAt = &now

	return &LoginResponse{Token: token, User: &member}, nil
}

// Create registers a new staff account
func (s *Service) Create(req *CreateRequest) (*Staff, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if username == "" {
		return nil, apperr.Validation("username is required")
	}

	var existing int64
	if err := s.db.Model(&Staff{}).Where("username = ?", username).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing > 0 {
		return nil, apperr.Conflict("username '%s' is already taken", username)
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}

	role := req.Role
	if role == "" {
		role = "staff"
	}

	member := &Staff{
		Username:     username,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Role:         role,
		IsActive:     true,
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, fmt.Errorf("failed to create staff account: %w", err)
	}
	return member, nil
}

// Get retrieves a staff member by id
func (s *Service) Get(id uint) (*Staff, error) {
	var member Staff
	if err := s.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("staff %d not found", id)
		}
		return nil, fmt.Errorf("failed to load staff account: %w", err)
	}
	return &member, nil
}
