package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
	Logger "github.com/RealSujal/community-app/pkg/logger"
	"github.com/RealSujal/community-app/pkg/utils"
)

// InterfaceAuthService defines the account service interface
type InterfaceAuthService interface {
	SendRegisterOTP(email string) (bool, error)
	Register(input RegisterInput) (*models.User, error)
	Login(email, password string) (*LoginResult, error)
	RequestPasswordReset(email string) (bool, error)
	ResetPassword(email, otp, newPassword, confirmPassword string) error
	ChangePassword(userID uint, currentPassword, newPassword, confirmPassword string) error
}

// RegisterInput is the payload of an OTP confirmed registration
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	OTP      string
}

// LoginUser is the user summary returned on login
type LoginUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResult is the reply of a successful login
type LoginResult struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// AuthService handles registration, login and passwords
type AuthService struct {
	DB     *gorm.DB
	Config *config.Config
	OTP    InterfaceOTPService
	JWT    InterfaceJWTService
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB, cfg *config.Config, otp InterfaceOTPService, jwtService InterfaceJWTService) InterfaceAuthService {
	return &AuthService{
		DB:     db,
		Config: cfg,
		OTP:    otp,
		JWT:    jwtService,
	}
}

func (s *AuthService) findByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// 1 SendRegisterOTP mails a registration code unless the email is taken
func (s *AuthService) SendRegisterOTP(email string) (bool, error) {
	if _, err := s.findByEmail(email); err == nil {
		return false, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return false, err
	}
	return s.OTP.Send(email, models.OTPPurposeRegister)
}

// 2 Register creates a verified user and its default privacy settings
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := NormalizeEmail(input.Email)
	if strings.TrimSpace(input.Name) == "" || email == "" || input.Password == "" || input.OTP == "" {
		return nil, fmt.Errorf("%w: name, email, password, and OTP are required", ErrInvalidInput)
	}

	if err := s.OTP.Verify(email, input.OTP, models.OTPPurposeRegister); err != nil {
		return nil, err
	}

	if _, err := s.findByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// The code is spent before the account exists so it can never be reused
	if err := s.OTP.Consume(email); err != nil {
		return nil, fmt.Errorf("consume OTP: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		IsVerified:   true,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if err := tx.Create(models.NewPrivacySetting(user.ID)).Error; err != nil {
			return fmt.Errorf("create privacy settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	Logger.Info("user %d registered", user.ID)
	return user, nil
}

// 3 Login checks credentials and issues a token
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.findByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredential
	}
	if !user.IsVerified {
		return nil, ErrUserNotVerified
	}

	token, err := s.JWT.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token: token,
		User:  LoginUser{ID: user.ID, Name: user.Name, Email: user.Email},
	}, nil
}

// 4 RequestPasswordReset mails a reset code to a registered email
func (s *AuthService) RequestPasswordReset(email string) (bool, error) {
	if NormalizeEmail(email) == "" {
		return false, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := s.findByEmail(email); err != nil {
		return false, err
	}
	return s.OTP.Send(email, models.OTPPurposeReset)
}

// 5 ResetPassword replaces the password after OTP confirmation
func (s *AuthService) ResetPassword(email, otp, newPassword, confirmPassword string) error {
	if NormalizeEmail(email) == "" || otp == "" || newPassword == "" || confirmPassword == "" {
		return fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	if err := s.OTP.Verify(email, otp, models.OTPPurposeReset); err != nil {
		return err
	}

	user, err := s.findByEmail(email)
	if err != nil {
		return err
	}
	if err := s.OTP.Consume(email); err != nil {
		return fmt.Errorf("consume OTP: %w", err)
	}
	return s.setPassword(user.ID, newPassword)
}

// 6 ChangePassword replaces the password after checking the current one
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword, confirmPassword string) error {
	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}
	return s.setPassword(user.ID, newPassword)
}

func (s *AuthService) setPassword(userID uint, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return s.DB.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", hash).Error
}
