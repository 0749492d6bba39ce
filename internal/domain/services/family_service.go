package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
)

// InterfaceFamilyService defines the family service interface
type InterfaceFamilyService interface {
	Register(userID uint, familyName, address string) (*models.Family, error)
	List() ([]FamilySummary, error)
	MyFamily(userID uint) (*FamilyDetails, error)
	ByPerson(personID uint) (*FamilyDetails, error)
}

// FamilySummary is one entry of the public family list
type FamilySummary struct {
	ID         uint   `json:"id"`
	FamilyName string `json:"family_name"`
}

// FamilyDetails is a family with its members. FamilyExists is false when
// the lookup found nothing.
type FamilyDetails struct {
	FamilyExists bool            `json:"familyExists"`
	Family       *models.Family  `json:"family,omitempty"`
	Members      []models.Person `json:"members,omitempty"`
}

// FamilyService manages family records
type FamilyService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewFamilyService creates a new family service
func NewFamilyService(db *gorm.DB, cfg *config.Config) InterfaceFamilyService {
	return &FamilyService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Register creates a family owned by userID and links the user to it
func (s *FamilyService) Register(userID uint, familyName, address string) (*models.Family, error) {
	familyName = strings.TrimSpace(familyName)
	if familyName == "" {
		return nil, fmt.Errorf("%w: family name is required", ErrInvalidInput)
	}

	family := &models.Family{
		FamilyName: familyName,
		Address:    strings.TrimSpace(address),
		UserID:     userID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(family).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Update("family_id", family.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return family, nil
}

// 2 List returns the id and name of every family
func (s *FamilyService) List() ([]FamilySummary, error) {
	var families []FamilySummary
	err := s.DB.Model(&models.Family{}).Select("id, family_name").Order("id").Scan(&families).Error
	return families, err
}

// 3 MyFamily returns the family linked to userID
func (s *FamilyService) MyFamily(userID uint) (*FamilyDetails, error) {
	var user models.User
	if err := s.DB.Select("id, family_id").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.FamilyID == nil {
		return &FamilyDetails{}, nil
	}
	return s.details(*user.FamilyID)
}

// 4 ByPerson returns the family that personID belongs to
func (s *FamilyService) ByPerson(personID uint) (*FamilyDetails, error) {
	var person models.Person
	err := s.DB.Select("id, family_id").First(&person, personID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &FamilyDetails{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.details(person.FamilyID)
}

func (s *FamilyService) details(familyID uint) (*FamilyDetails, error) {
	var family models.Family
	err := s.DB.First(&family, familyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &FamilyDetails{}, nil
	}
	if err != nil {
		return nil, err
	}

	members, err := familyMembers(s.DB, familyID)
	if err != nil {
		return nil, err
	}
	return &FamilyDetails{FamilyExists: true, Family: &family, Members: members}, nil
}

func familyMembers(db *gorm.DB, familyID uint) ([]models.Person, error) {
	members := []models.Person{}
	err := db.Where("family_id = ?", familyID).Order("id ASC").Find(&members).Error
	return members, err
}
