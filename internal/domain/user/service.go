// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/auth"
	"gorm.io/gorm"
)

// Sentinel errors surfaced to HTTP handlers
var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountInactive    = errors.New("account is inactive")
)

// Service handles account registration and authentication
type Service struct {
	db        *gorm.DB
	jwt       *auth.JWTManager
	passwords *auth.PasswordManager
	log       *logrus.Entry
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config, log *logrus.Entry) *Service {
	return &Service{
		db:        db,
		jwt:       auth.NewJWTManager(cfg),
		passwords: auth.NewPasswordManager(cfg),
		log:       log,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and the authenticated account
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Register creates a new customer account and issues a token
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(req.Email)

	var existing User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashed, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account := User{
		Name:     req.Name,
		Email:    email,
		Password: hashed,
		Role:     RoleUser,
		IsActive: true,
	}
	if err := s.db.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwt.GenerateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": account.ID,
		"email":   account.Email,
	}).Info("user registered")

	return &AuthResponse{Token: token, User: &account}, nil
}

// Login verifies credentials and issues a token
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var account User
	err := s.db.Where("email = ?", strings.ToLower(req.Email)).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	if err := s.passwords.VerifyPassword(req.Password, account.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}

	s.log.WithField("user_id", account.ID).Info("user logged in")

	return &AuthResponse{Token: token, User: &account}, nil
}

// Get returns an account by id
func (s *Service) Get(userID uint) (*User, error) {
	var account User
	err := s.db.Where("id = ?", userID).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	return &account, nil
}
