package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
)

// InterfaceHelpService defines the help screen service interface
type InterfaceHelpService interface {
	ListFAQs() ([]models.FAQ, error)
	SubmitFeedback(userID uint, rating int, message string, wantReply bool) (*models.Feedback, error)
	Chat(message string) (string, error)
}

// HelpService serves FAQs, feedback and the help bot
type HelpService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHelpService creates a new help service
func NewHelpService(db *gorm.DB, cfg *config.Config) InterfaceHelpService {
	return &HelpService{
		DB:     db,
		Config: cfg,
	}
}

type chatRule struct {
	keywords []string
	reply    string
}

var chatRules = []chatRule{
	{[]string{"change phone", "update number"}, "You can update your phone number in the Edit Profile screen."},
	{[]string{"join community"}, "To join a community, go to Join Community and enter the code."},
	{[]string{"forgot password"}, "Use Forgot Password on login screen to reset."},
	{[]string{"add family", "family member"}, "Open My Family and tap Add Member. The first member you add becomes the head."},
	{[]string{"privacy", "hide"}, "Use Privacy Settings to choose which profile fields other members can see."},
}

const defaultChatReply = "I'm still learning! Please check the FAQ or reach out for support."

// 1 ListFAQs returns every FAQ entry
func (s *HelpService) ListFAQs() ([]models.FAQ, error) {
	var faqs []models.FAQ
	err := s.DB.Order("id").Find(&faqs).Error
	return faqs, err
}

// 2 SubmitFeedback stores a rating between 1 and 5
func (s *HelpService) SubmitFeedback(userID uint, rating int, message string, wantReply bool) (*models.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	feedback := &models.Feedback{
		UserID:    userID,
		Rating:    rating,
		Message:   strings.TrimSpace(message),
		WantReply: wantReply,
	}
	if err := s.DB.Create(feedback).Error; err != nil {
		return nil, err
	}
	return feedback, nil
}

// 3 Chat answers a help question with a canned reply
func (s *HelpService) Chat(message string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(message))
	if lower == "" {
		return "", fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	for _, rule := range chatRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply, nil
			}
		}
	}
	return defaultChatReply, nil
}
