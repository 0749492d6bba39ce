package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/RealSujal/community-app/internal/domain/models"
	"github.com/RealSujal/community-app/internal/domain/roles"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
	"github.com/RealSujal/community-app/internal/infrastructure/storage"
	Logger "github.com/RealSujal/community-app/pkg/logger"
	"github.com/RealSujal/community-app/pkg/utils"
)

const inviteCodeLength = 6

// InterfaceCommunityService defines the community service interface
type InterfaceCommunityService interface {
	Create(userID uint, name, location, description string) (*models.Community, error)
	Join(userID uint, inviteCode string) (*models.Community, error)
	Membership(userID uint) (*models.CommunityUser, error)
	Members(userID uint, filter MemberFilter) ([]MemberView, error)
	Member(userID, targetID uint) (*MemberView, error)
	Leave(userID uint) error
	TransferHead(userID, newHeadID uint) error
	RemoveMember(actorID, targetID uint) error
	Promote(actorID, targetID uint) error
	Demote(actorID, targetID uint) error
	MyCommunity(userID uint) (*CommunityView, error)
	Dashboard(userID uint) (*DashboardStats, error)
}

// MemberFilter narrows the member list. Empty fields match everything.
type MemberFilter struct {
	Location string
	Name     string
	Role     string
}

// MemberView is one row of the member directory
type MemberView struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Location       string  `json:"location"`
	ProfilePicture *string `json:"profile_picture"`
	Role           string  `json:"role"`
}

// CommunityView is the caller's community with the caller's role
type CommunityView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location"`
	InviteCode  string `json:"invite_code"`
	Role        string `json:"role"`
}

// DashboardStats counts activity of one community
type DashboardStats struct {
	Members  int64 `json:"members"`
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
	Likes    int64 `json:"likes"`
}

// CommunityService manages communities and the role of each member
type CommunityService struct {
	DB           *gorm.DB
	Config       *config.Config
	Notification InterfaceNotificationService
	Files        *storage.FileStore
}

// NewCommunityService creates a new community service
func NewCommunityService(db *gorm.DB, cfg *config.Config, notification InterfaceNotificationService, files *storage.FileStore) InterfaceCommunityService {
	return &CommunityService{
		DB:           db,
		Config:       cfg,
		Notification: notification,
		Files:        files,
	}
}

// membershipOf returns the membership row of userID or ErrNotCommunityMember
func membershipOf(db *gorm.DB, userID uint) (*models.CommunityUser, error) {
	var membership models.CommunityUser
	if err := db.Where("user_id = ?", userID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotCommunityMember
		}
		return nil, err
	}
	return &membership, nil
}

func roleOf(m *models.CommunityUser) roles.Role {
	r, _ := roles.Parse(m.Role)
	return r
}

// 1 Create makes a community with userID as its head
func (s *CommunityService) Create(userID uint, name, location, description string) (*models.Community, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: community name is required", ErrInvalidInput)
	}
	if _, err := membershipOf(s.DB, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, ErrNotCommunityMember) {
		return nil, err
	}

	code, err := s.uniqueInviteCode()
	if err != nil {
		return nil, err
	}

	community := &models.Community{
		Name:        name,
		Location:    strings.TrimSpace(location),
		Description: strings.TrimSpace(description),
		InviteCode:  code,
		CreatedBy:   userID,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			return fmt.Errorf("create community: %w", err)
		}
		head := &models.CommunityUser{UserID: userID, CommunityID: community.ID, Role: string(roles.Head)}
		if err := tx.Create(head).Error; err != nil {
			return fmt.Errorf("assign head: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	Logger.Info("community %d created by user %d", community.ID, userID)
	return community, nil
}

func (s *CommunityService) uniqueInviteCode() (string, error) {
	for i := 0; i < 5; i++ {
		code := utils.GenerateInviteCode(inviteCodeLength)
		var count int64
		if err := s.DB.Model(&models.Community{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique invite code")
}

// 2 Join adds userID as a member of the community owning inviteCode
func (s *CommunityService) Join(userID uint, inviteCode string) (*models.Community, error) {
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	if inviteCode == "" {
		return nil, fmt.Errorf("%w: invite code is required", ErrInvalidInput)
	}

	var community models.Community
	if err := s.DB.Where("invite_code = ?", inviteCode).First(&community).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, err
	}

	if _, err := membershipOf(s.DB, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, ErrNotCommunityMember) {
		return nil, err
	}

	member := &models.CommunityUser{UserID: userID, CommunityID: community.ID, Role: string(roles.Member)}
	if err := s.DB.Create(member).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

// 3 Membership returns the membership row of userID
func (s *CommunityService) Membership(userID uint) (*models.CommunityUser, error) {
	return membershipOf(s.DB, userID)
}

// 4 Members lists the caller's community ordered head, admin, member, then name
func (s *CommunityService) Members(userID uint, filter MemberFilter) ([]MemberView, error) {
	membership, err := membershipOf(s.DB, userID)
	if err != nil {
		return nil, err
	}

	query := s.DB.Preload("User").Joins("JOIN users ON users.id = community_users.user_id").
		Where("community_users.community_id = ?", membership.CommunityID)
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		query = query.Where("users.location = ?", loc)
	}
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("users.name LIKE ?", "%"+name+"%")
	}
	if role := strings.TrimSpace(filter.Role); role != "" {
		query = query.Where("community_users.role = ?", strings.ToLower(role))
	}

	var rows []models.CommunityUser
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]MemberView, 0, len(rows))
	for i := range rows {
		if rows[i].User == nil {
			continue
		}
		members = append(members, s.memberView(rows[i].User, rows[i].Role))
	}
	sortMembers(members)
	return members, nil
}

func sortMembers(members []MemberView) {
	sort.SliceStable(members, func(i, j int) bool {
		ri, _ := roles.Parse(members[i].Role)
		rj, _ := roles.Parse(members[j].Role)
		if ri.Rank() != rj.Rank() {
			return ri.Rank() > rj.Rank()
		}
		return members[i].Name < members[j].Name
	})
}

func (s *CommunityService) memberView(u *models.User, role string) MemberView {
	return MemberView{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Location:       u.Location,
		ProfilePicture: optionalURL(s.Files, u.ProfilePicture),
		Role:           role,
	}
}

// optionalURL expands a stored upload path, nil when nothing is stored
func optionalURL(files *storage.FileStore, relPath string) *string {
	if relPath == "" || files == nil {
		return nil
	}
	url := files.URL(relPath)
	return &url
}

// 5 Member returns targetID when it shares the caller's community
func (s *CommunityService) Member(userID, targetID uint) (*MemberView, error) {
	membership, err := membershipOf(s.DB, userID)
	if err != nil {
		return nil, err
	}
	var row models.CommunityUser
	err = s.DB.Preload("User").
		Where("user_id = ? AND community_id = ?", targetID, membership.CommunityID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && row.User == nil) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	view := s.memberView(row.User, row.Role)
	return &view, nil
}

// 6 Leave removes userID from its community. The head must transfer first.
func (s *CommunityService) Leave(userID uint) error {
	membership, err := membershipOf(s.DB, userID)
	if err != nil {
		return err
	}
	if roleOf(membership) == roles.Head {
		return ErrHeadMustTransfer
	}
	return s.DB.Delete(membership).Error
}

// 7 TransferHead hands headship to newHeadID. The old head becomes an admin.
func (s *CommunityService) TransferHead(userID, newHeadID uint) error {
	membership, err := membershipOf(s.DB, userID)
	if err != nil {
		return err
	}
	if !roles.CanTransferHead(roleOf(membership)) {
		return fmt.Errorf("%w: only head can transfer role", ErrForbidden)
	}
	if newHeadID == 0 || newHeadID == userID {
		return fmt.Errorf("%w: choose another member as the new head", ErrInvalidInput)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.CommunityUser{}).
			Where("user_id = ? AND community_id = ?", newHeadID, membership.CommunityID).
			Update("role", string(roles.Head))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return tx.Model(&models.CommunityUser{}).
			Where("user_id = ? AND community_id = ?", userID, membership.CommunityID).
			Update("role", string(roles.Admin)).Error
	})
	if err != nil {
		return err
	}

	s.Notification.Notify(newHeadID, "You are now the Community head!",
		"Congratulations! You've been promoted to Head of the Community.", NotificationRole)
	return nil
}

// target loads the membership of targetID inside the actor's community and
// checks that the actor may change it
func (s *CommunityService) target(actorID, targetID uint, verb string) (*models.CommunityUser, *models.CommunityUser, error) {
	if actorID == targetID {
		return nil, nil, fmt.Errorf("%w: you cannot %s yourself", ErrInvalidInput, verb)
	}
	actor, err := membershipOf(s.DB, actorID)
	if err != nil {
		if errors.Is(err, ErrNotCommunityMember) {
			return nil, nil, ErrForbidden
		}
		return nil, nil, err
	}
	if !roles.CanModerate(roleOf(actor)) {
		return nil, nil, ErrForbidden
	}

	var target models.CommunityUser
	err = s.DB.Where("user_id = ? AND community_id = ?", targetID, actor.CommunityID).First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if !roles.CanChangeRoleOf(roleOf(actor), roleOf(&target)) {
		return nil, nil, fmt.Errorf("%w: the head cannot be changed", ErrForbidden)
	}
	return actor, &target, nil
}

// 8 RemoveMember deletes targetID from the actor's community
func (s *CommunityService) RemoveMember(actorID, targetID uint) error {
	actor, target, err := s.target(actorID, targetID, "remove")
	if err != nil {
		return err
	}
	if err := s.DB.Delete(target).Error; err != nil {
		return err
	}
	s.Notification.Notify(targetID, "Removed from community",
		fmt.Sprintf("You have been removed from the community by %s.", actor.Role), NotificationRemoval)
	return nil
}

// 9 Promote makes targetID an admin
func (s *CommunityService) Promote(actorID, targetID uint) error {
	return s.setRole(actorID, targetID, roles.Admin, "promote", "Promoted to Admin",
		"You have been promoted to Admin by a community %s.")
}

// 10 Demote makes targetID a plain member
func (s *CommunityService) Demote(actorID, targetID uint) error {
	return s.setRole(actorID, targetID, roles.Member, "demote", "Demoted to Member",
		"You have been demoted to Member by a community %s.")
}

func (s *CommunityService) setRole(actorID, targetID uint, role roles.Role, verb, title, format string) error {
	actor, target, err := s.target(actorID, targetID, verb)
	if err != nil {
		return err
	}
	if err := s.DB.Model(target).Update("role", string(role)).Error; err != nil {
		return err
	}
	s.Notification.Notify(targetID, title, fmt.Sprintf(format, actor.Role), NotificationRole)
	return nil
}

// 11 MyCommunity returns the caller's community and role
func (s *CommunityService) MyCommunity(userID uint) (*CommunityView, error) {
	var membership models.CommunityUser
	err := s.DB.Preload("Community").Where("user_id = ?", userID).First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && membership.Community == nil) {
		return nil, ErrNotCommunityMember
	}
	if err != nil {
		return nil, err
	}
	c := membership.Community
	return &CommunityView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Location:    c.Location,
		InviteCode:  c.InviteCode,
		Role:        membership.Role,
	}, nil
}

// 12 Dashboard counts members, posts, comments and likes of the caller's community
func (s *CommunityService) Dashboard(userID uint) (*DashboardStats, error) {
	membership, err := membershipOf(s.DB, userID)
	if err != nil {
		return nil, err
	}
	id := membership.CommunityID
	stats := &DashboardStats{}

	if err := s.DB.Model(&models.CommunityUser{}).Where("community_id = ?", id).Count(&stats.Members).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Post{}).Where("community_id = ?", id).Count(&stats.Posts).Error; err != nil {
		return nil, err
	}
	postIDs := func() *gorm.DB {
		return s.DB.Model(&models.Post{}).Select("id").Where("community_id = ?", id)
	}
	if err := s.DB.Model(&models.Comment{}).Where("post_id IN (?)", postIDs()).Count(&stats.Comments).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Like{}).Where("post_id IN (?)", postIDs()).Count(&stats.Likes).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
