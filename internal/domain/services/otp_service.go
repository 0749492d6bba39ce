package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
	"github.com/RealSujal/community-app/internal/infrastructure/mailer"
	Logger "github.com/RealSujal/community-app/pkg/logger"
	"github.com/RealSujal/community-app/pkg/utils"
)

// InterfaceOTPService defines the one-time code service interface
type InterfaceOTPService interface {
	Send(email string, purpose models.OTPPurpose) (resent bool, err error)
	Verify(email, otp string, purpose models.OTPPurpose) error
	Consume(email string) error
}

// OTPService issues, mails and checks one-time codes. One expiry and one
// resend policy apply to every purpose.
type OTPService struct {
	Store    OTPStore
	Mailer   mailer.Mailer
	Config   *config.Config
	now      func() time.Time
	generate func() string
}

// NewOTPService creates a new OTP service
func NewOTPService(store OTPStore, m mailer.Mailer, cfg *config.Config) InterfaceOTPService {
	return &OTPService{
		Store:    store,
		Mailer:   m,
		Config:   cfg,
		now:      time.Now,
		generate: utils.GenerateOTP,
	}
}

// NormalizeEmail trims and lower-cases an address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// 1 Send mails a code for purpose. A still valid code of the same purpose is
// re-sent; otherwise a fresh code replaces whatever was stored.
func (s *OTPService) Send(email string, purpose models.OTPPurpose) (bool, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return false, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	now := s.now()
	record, err := s.Store.Get(email)
	if err != nil && !errors.Is(err, ErrOTPNotFound) {
		return false, err
	}

	resent := record != nil && record.Purpose == purpose && record.Valid(now)
	if !resent {
		record = &models.OTPVerification{
			Email:     email,
			OTP:       s.generate(),
			Purpose:   purpose,
			ExpiresAt: now.Add(s.Config.OTPExpiry()),
		}
		if err := s.Store.Save(record); err != nil {
			return false, fmt.Errorf("store otp: %w", err)
		}
	}

	if err := s.Mailer.SendOTP(email, record.OTP, mailer.Purpose(purpose), s.Config.OTPExpiry()); err != nil {
		Logger.Error("failed to send OTP to %s: %v", email, err)
		return false, ErrOTPSend
	}
	return resent, nil
}

// 2 Verify checks the code without consuming it
func (s *OTPService) Verify(email, otp string, purpose models.OTPPurpose) error {
	record, err := s.Store.Get(NormalizeEmail(email))
	if err != nil {
		return err
	}
	if record.OTP != strings.TrimSpace(otp) || record.Purpose != purpose {
		return ErrOTPInvalid
	}
	if !record.Valid(s.now()) {
		return ErrOTPExpired
	}
	return nil
}

// 3 Consume deletes the code of email after a successful use
func (s *OTPService) Consume(email string) error {
	return s.Store.Delete(NormalizeEmail(email))
}
