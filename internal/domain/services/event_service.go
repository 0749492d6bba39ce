package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/domain/roles"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
	"github.com/RealSujal/community-app/internal/infrastructure/storage"
	Logger "github.com/RealSujal/community-app/pkg/logger"
)

// InterfaceEventService defines the event service interface
type InterfaceEventService interface {
	Create(userID uint, input EventInput, image *multipart.FileHeader) (*models.Event, error)
	List(userID uint) ([]EventView, error)
	Delete(userID, eventID uint) error
}

// EventInput carries the form fields of a new event
type EventInput struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	EventDate   string `form:"event_date"`
	EventTime   string `form:"event_time"`
	Location    string `form:"location"`
}

// EventView is an event with its creator
type EventView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	EventDate   string    `json:"event_date"`
	EventTime   string    `json:"event_time"`
	Location    string    `json:"location"`
	ImageURL    *string   `json:"image_url"`
	CreatedBy   uint      `json:"created_by"`
	CreatorName string    `json:"creator_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventService manages community events
type EventService struct {
	DB     *gorm.DB
	Config *config.Config
	Files  *storage.FileStore
}

// NewEventService creates a new event service
func NewEventService(db *gorm.DB, cfg *config.Config, files *storage.FileStore) InterfaceEventService {
	return &EventService{
		DB:     db,
		Config: cfg,
		Files:  files,
	}
}

// 1 Create announces an event in the caller's community. Admins and the
// head only.
func (s *EventService) Create(userID uint, input EventInput, image *multipart.FileHeader) (*models.Event, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.EventDate = strings.TrimSpace(input.EventDate)
	input.EventTime = strings.TrimSpace(input.EventTime)
	if input.Name == "" || input.EventDate == "" || input.EventTime == "" {
		return nil, fmt.Errorf("%w: name, event_date and event_time are required", ErrInvalidInput)
	}
	if _, err := time.Parse("2006-01-02", input.EventDate); err != nil {
		return nil, fmt.Errorf("%w: event_date must be YYYY-MM-DD", ErrInvalidInput)
	}

	membership, err := membershipOf(s.DB, userID)
	if err != nil {
		return nil, err
	}
	if !roles.CanModerate(roleOf(membership)) {
		return nil, fmt.Errorf("%w: only admins can create events", ErrForbidden)
	}

	event := &models.Event{
		CommunityID: membership.CommunityID,
		CreatedBy:   userID,
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		EventDate:   input.EventDate,
		EventTime:   input.EventTime,
		Location:    strings.TrimSpace(input.Location),
	}
	if image != nil {
		path, err := s.Files.Save(image, "events", storage.ImageExtensions)
		if err != nil {
			if errors.Is(err, storage.ErrUnsupportedType) {
				return nil, ErrInvalidMedia
			}
			return nil, err
		}
		event.ImageURL = &path
	}

	if err := s.DB.Create(event).Error; err != nil {
		if event.ImageURL != nil {
			s.removeFile(*event.ImageURL)
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) removeFile(path string) {
	if err := s.Files.Remove(path); err != nil {
		Logger.Warning("failed to remove upload %s: %v", path, err)
	}
}

// 2 List returns the events of the caller's community by date and time
func (s *EventService) List(userID uint) ([]EventView, error) {
	membership, err := membershipOf(s.DB, userID)
	if err != nil {
		return nil, err
	}

	var events []models.Event
	err = s.DB.Preload("Creator").Where("community_id = ?", membership.CommunityID).
		Order("event_date ASC").Order("event_time ASC").Order("id ASC").Find(&events).Error
	if err != nil {
		return nil, err
	}

	views := make([]EventView, 0, len(events))
	for _, e := range events {
		view := EventView{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			EventDate:   e.EventDate,
			EventTime:   e.EventTime,
			Location:    e.Location,
			CreatedBy:   e.CreatedBy,
			CreatedAt:   e.CreatedAt,
		}
		if e.ImageURL != nil {
			view.ImageURL = optionalURL(s.Files, *e.ImageURL)
		}
		if e.Creator != nil {
			view.CreatorName = e.Creator.Name
		}
		views = append(views, view)
	}
	return views, nil
}

// 3 Delete removes an event. The creator, admins and the head may delete it.
func (s *EventService) Delete(userID, eventID uint) error {
	membership, err := membershipOf(s.DB, userID)
	if err != nil {
		return err
	}

	var event models.Event
	err = s.DB.Where("id = ? AND community_id = ?", eventID, membership.CommunityID).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}
	if !roles.CanDeleteContent(userID, event.CreatedBy, roleOf(membership)) {
		return fmt.Errorf("%w: no permission to delete this event", ErrForbidden)
	}

	if err := s.DB.Delete(&event).Error; err != nil {
		return err
	}
	if event.ImageURL != nil {
		s.removeFile(*event.ImageURL)
	}
	return nil
}
