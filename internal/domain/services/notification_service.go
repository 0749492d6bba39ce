package services

import (
	"sync"

	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
	Logger "github.com/RealSujal/community-app/pkg/logger"
)

// Notification types
const (
	NotificationInfo    = "info"
	NotificationRole    = "role"
	NotificationComment = "comment"
	NotificationRemoval = "removal"
)

// InterfaceNotificationService defines the notification service interface
type InterfaceNotificationService interface {
	Notify(userID uint, title, message, notificationType string)
	Wait()
	List(userID uint) ([]models.Notification, error)
	MarkSeen(userID, notificationID uint) error
	MarkAllSeen(userID uint) (int64, error)
}

// NotificationService stores user notifications. Notify never blocks the
// caller: inserts run in the background and failures are only logged.
type NotificationService struct {
	DB     *gorm.DB
	Config *config.Config
	wg     sync.WaitGroup
}

// NewNotificationService creates a new notification service
func NewNotificationService(db *gorm.DB, cfg *config.Config) InterfaceNotificationService {
	return &NotificationService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Notify queues a notification for userID
func (s *NotificationService) Notify(userID uint, title, message, notificationType string) {
	if notificationType == "" {
		notificationType = NotificationInfo
	}
	n := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    notificationType,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.DB.Create(n).Error; err != nil {
			Logger.Error("notification for user %d dropped: %v", userID, err)
		}
	}()
}

// 2 Wait blocks until every queued notification has been written
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

// 3 List returns the notifications of userID, newest first
func (s *NotificationService) List(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&notifications).Error
	return notifications, err
}

// 4 MarkSeen marks one notification owned by userID as seen
func (s *NotificationService) MarkSeen(userID, notificationID uint) error {
	result := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("seen", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// 5 MarkAllSeen marks every notification of userID as seen
func (s *NotificationService) MarkAllSeen(userID uint) (int64, error) {
	result := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND seen = ?", userID, false).
		Update("seen", true)
	return result.RowsAffected, result.Error
}
