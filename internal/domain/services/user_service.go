package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
	"github.com/RealSujal/community-app/internal/infrastructure/storage"
	Logger "github.com/RealSujal/community-app/pkg/logger"
)

// InterfaceUserService defines the user profile service interface
type InterfaceUserService interface {
	EditProfile(userID uint, input ProfileInput) error
	UploadProfilePicture(userID uint, file *multipart.FileHeader) (string, error)
	Me(userID uint) (*Profile, error)
	PublicProfile(viewerID, userID uint) (*PublicProfile, error)
	ChangePassword(userID uint, currentPassword, newPassword, confirmPassword string) error
}

// ProfileInput is a partial profile update. Empty fields are left untouched.
type ProfileInput struct {
	Name        string            `json:"name"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	Gender      string            `json:"gender"`
	DOB         string            `json:"dob"`
	Location    string            `json:"location"`
	SocialLinks map[string]string `json:"socialLinks"`
}

// Profile is the caller's own profile
type Profile struct {
	ID             uint              `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Gender         string            `json:"gender"`
	DOB            string            `json:"dob"`
	Location       string            `json:"location"`
	ProfilePicture *string           `json:"profile_picture"`
	SocialLinks    map[string]string `json:"socialLinks"`
	Role           *string           `json:"role"`
}

// PrivacyFlags tells which fields of a public profile are visible
type PrivacyFlags struct {
	Phone       bool `json:"phone"`
	Email       bool `json:"email"`
	DOB         bool `json:"dob"`
	Gender      bool `json:"gender"`
	Location    bool `json:"location"`
	SocialLinks bool `json:"social_links"`
}

// FamilyEntry is one relative shown on a public profile
type FamilyEntry struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
}

// PublicProfile is a profile as other members see it. Hidden fields are
// blanked unless the viewer owns the profile.
type PublicProfile struct {
	User    Profile       `json:"user"`
	Privacy PrivacyFlags  `json:"privacy"`
	Family  []FamilyEntry `json:"family"`
}

// UserService manages user profiles
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
	Files  *storage.FileStore
	Auth   InterfaceAuthService
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB, cfg *config.Config, files *storage.FileStore, auth InterfaceAuthService) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
		Files:  files,
		Auth:   auth,
	}
}

func (s *UserService) find(userID uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// 1 EditProfile applies the non-empty fields of input
func (s *UserService) EditProfile(userID uint, input ProfileInput) error {
	updates := map[string]interface{}{}
	set := func(column, value string) {
		if v := strings.TrimSpace(value); v != "" {
			updates[column] = v
		}
	}
	set("name", input.Name)
	set("phone", input.Phone)
	set("gender", input.Gender)
	set("dob", input.DOB)
	set("location", input.Location)
	if len(input.SocialLinks) > 0 {
		raw, err := json.Marshal(input.SocialLinks)
		if err != nil {
			return fmt.Errorf("%w: invalid socialLinks", ErrInvalidInput)
		}
		updates["social_links"] = string(raw)
	}

	if email := NormalizeEmail(input.Email); email != "" {
		var count int64
		err := s.DB.Model(&models.User{}).Where("email = ? AND id <> ?", email, userID).Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		updates["email"] = email
	}

	if len(updates) == 0 {
		return fmt.Errorf("%w: no valid fields to update", ErrInvalidInput)
	}
	if _, err := s.find(userID); err != nil {
		return err
	}
	return s.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

// 2 UploadProfilePicture stores a new picture and returns its relative path
func (s *UserService) UploadProfilePicture(userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.find(userID)
	if err != nil {
		return "", err
	}

	path, err := s.Files.Save(file, "profile_pictures", storage.ImageExtensions)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return "", ErrInvalidMedia
		}
		return "", err
	}
	old := user.ProfilePicture
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).Update("profile_picture", path).Error; err != nil {
		_ = s.Files.Remove(path)
		return "", err
	}
	if old != "" && old != path {
		if err := s.Files.Remove(old); err != nil {
			Logger.Warning("failed to remove old profile picture %s: %v", old, err)
		}
	}
	return path, nil
}

func (s *UserService) profile(user *models.User) (*Profile, error) {
	p := &Profile{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Phone:          user.Phone,
		Gender:         user.Gender,
		DOB:            user.DOB,
		Location:       user.Location,
		ProfilePicture: optionalURL(s.Files, user.ProfilePicture),
		SocialLinks:    decodeSocialLinks(user.SocialLinks),
	}

	membership, err := membershipOf(s.DB, user.ID)
	switch {
	case err == nil:
		p.Role = &membership.Role
	case !errors.Is(err, ErrNotCommunityMember):
		return nil, err
	}
	return p, nil
}

// decodeSocialLinks never fails; malformed JSON reads as no links
func decodeSocialLinks(raw string) map[string]string {
	links := map[string]string{}
	if raw == "" {
		return links
	}
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		return map[string]string{}
	}
	return links
}

// 3 Me returns the caller's profile with the community role
func (s *UserService) Me(userID uint) (*Profile, error) {
	user, err := s.find(userID)
	if err != nil {
		return nil, err
	}
	return s.profile(user)
}

// 4 PublicProfile returns userID's profile with its privacy settings applied
func (s *UserService) PublicProfile(viewerID, userID uint) (*PublicProfile, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}
	user, err := s.find(userID)
	if err != nil {
		return nil, err
	}
	p, err := s.profile(user)
	if err != nil {
		return nil, err
	}

	setting, err := loadPrivacy(s.DB, userID)
	if err != nil {
		return nil, err
	}
	flags := PrivacyFlags{
		Phone:       setting.ShowPhone,
		Email:       setting.ShowEmail,
		DOB:         setting.ShowDOB,
		Gender:      setting.ShowGender,
		Location:    setting.ShowAddress,
		SocialLinks: setting.ShowSocialLinks,
	}
	if viewerID != userID {
		applyPrivacy(p, flags)
	}

	family, err := s.familyOfUser(user)
	if err != nil {
		return nil, err
	}
	return &PublicProfile{User: *p, Privacy: flags, Family: family}, nil
}

func applyPrivacy(p *Profile, flags PrivacyFlags) {
	if !flags.Phone {
		p.Phone = ""
	}
	if !flags.Email {
		p.Email = ""
	}
	if !flags.DOB {
		p.DOB = ""
	}
	if !flags.Gender {
		p.Gender = ""
	}
	if !flags.Location {
		p.Location = ""
	}
	if !flags.SocialLinks {
		p.SocialLinks = map[string]string{}
	}
}

// familyOfUser lists the family the user is linked to, either through
// users.family_id or through a person row carrying the user's id
func (s *UserService) familyOfUser(user *models.User) ([]FamilyEntry, error) {
	entries := []FamilyEntry{}
	familyID := user.FamilyID
	if familyID == nil {
		var person models.Person
		err := s.DB.Where("user_id = ?", user.ID).First(&person).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		familyID = &person.FamilyID
	}

	members, err := familyMembers(s.DB, *familyID)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		entries = append(entries, FamilyEntry{Name: m.Name, Relation: m.Relation})
	}
	return entries, nil
}

// 5 ChangePassword delegates to the auth service
func (s *UserService) ChangePassword(userID uint, currentPassword, newPassword, confirmPassword string) error {
	return s.Auth.ChangePassword(userID, currentPassword, newPassword, confirmPassword)
}
