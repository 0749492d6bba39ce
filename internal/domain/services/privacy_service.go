package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
)

// InterfacePrivacyService defines the privacy settings service interface
type InterfacePrivacyService interface {
	Get(userID uint) (*models.PrivacySetting, error)
	Replace(userID uint, input PrivacyInput) (*models.PrivacySetting, error)
	SetField(userID uint, field string, value bool) error
}

// PrivacyInput is a full settings update. Nil flags are reset to visible.
type PrivacyInput struct {
	ShowPhone       *bool `json:"show_phone"`
	ShowEmail       *bool `json:"show_email"`
	ShowDOB         *bool `json:"show_dob"`
	ShowAddress     *bool `json:"show_address"`
	ShowGender      *bool `json:"show_gender"`
	ShowSocialLinks *bool `json:"show_social_links"`
}

// privacyFields maps the short names used by the settings screen to columns
var privacyFields = map[string]string{
	"phone":        "show_phone",
	"email":        "show_email",
	"dob":          "show_dob",
	"address":      "show_address",
	"gender":       "show_gender",
	"social_links": "show_social_links",
}

// PrivacyService reads and writes privacy_settings rows
type PrivacyService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPrivacyService creates a new privacy service
func NewPrivacyService(db *gorm.DB, cfg *config.Config) InterfacePrivacyService {
	return &PrivacyService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Get returns the settings of userID, all visible when no row exists
func (s *PrivacyService) Get(userID uint) (*models.PrivacySetting, error) {
	return loadPrivacy(s.DB, userID)
}

func loadPrivacy(db *gorm.DB, userID uint) (*models.PrivacySetting, error) {
	var setting models.PrivacySetting
	err := db.Where("user_id = ?", userID).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewPrivacySetting(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// 2 Replace overwrites every flag of userID
func (s *PrivacyService) Replace(userID uint, input PrivacyInput) (*models.PrivacySetting, error) {
	updates := map[string]interface{}{
		"show_phone":        boolOr(input.ShowPhone, true),
		"show_email":        boolOr(input.ShowEmail, true),
		"show_dob":          boolOr(input.ShowDOB, true),
		"show_address":      boolOr(input.ShowAddress, true),
		"show_gender":       boolOr(input.ShowGender, true),
		"show_social_links": boolOr(input.ShowSocialLinks, true),
	}
	if err := s.upsert(userID, updates); err != nil {
		return nil, err
	}
	return s.Get(userID)
}

// 3 SetField updates a single flag by its short name
func (s *PrivacyService) SetField(userID uint, field string, value bool) error {
	column, ok := privacyFields[field]
	if !ok {
		return fmt.Errorf("%w: invalid field name", ErrInvalidInput)
	}
	return s.upsert(userID, map[string]interface{}{column: value})
}

func (s *PrivacyService) upsert(userID uint, updates map[string]interface{}) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PrivacySetting{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := tx.Create(models.NewPrivacySetting(userID)).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.PrivacySetting{}).Where("user_id = ?", userID).Updates(updates).Error
	})
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
