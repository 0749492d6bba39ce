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

// InterfacePostService defines the post service interface
type InterfacePostService interface {
	Create(userID uint, content string, media *multipart.FileHeader) (*models.Post, error)
	CommunityPosts(userID uint) ([]PostSummary, error)
	Feed(userID uint) ([]FeedPost, error)
	UserPosts(viewerID, authorID uint) ([]PostSummary, error)
	AddComment(userID, postID uint, comment string) (*models.Comment, error)
	Comments(userID, postID uint) ([]CommentView, error)
	ToggleLike(userID, postID uint) (bool, error)
	DeletePost(userID, postID uint) error
	DeleteComment(userID, commentID uint) error
}

// PostSummary is a compact post listing entry
type PostSummary struct {
	ID        uint      `json:"id"`
	Content   *string   `json:"content"`
	MediaURL  *string   `json:"media_url"`
	MediaType *string   `json:"media_type"`
	CreatedAt time.Time `json:"created_at"`
	Author    string    `json:"author"`
}

// FeedPost is a post with its author and engagement counters
type FeedPost struct {
	PostID         uint      `json:"post_id"`
	Content        *string   `json:"content"`
	MediaURL       *string   `json:"media_url"`
	MediaType      *string   `json:"media_type"`
	CreatedAt      time.Time `json:"created_at"`
	UserID         uint      `json:"user_id"`
	UserName       string    `json:"user_name"`
	UserEmail      string    `json:"user_email"`
	ProfilePicture *string   `json:"profile_picture"`
	LikeCount      int64     `json:"like_count"`
	CommentCount   int64     `json:"comment_count"`
	IsLiked        bool      `json:"is_liked"`
}

// CommentView is a comment with its author
type CommentView struct {
	CommentID uint      `json:"comment_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
}

// PostService manages posts, comments and likes. Everything is scoped to
// the caller's community.
type PostService struct {
	DB           *gorm.DB
	Config       *config.Config
	Notification InterfaceNotificationService
	Files        *storage.FileStore
}

// NewPostService creates a new post service
func NewPostService(db *gorm.DB, cfg *config.Config, notification InterfaceNotificationService, files *storage.FileStore) InterfacePostService {
	return &PostService{
		DB:           db,
		Config:       cfg,
		Notification: notification,
		Files:        files,
	}
}

// 1 Create publishes a post with text, media or both
func (s *PostService) Create(userID uint, content string, media *multipart.FileHeader) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" && media == nil {
		return nil, fmt.Errorf("%w: content or media is required", ErrInvalidInput)
	}

	membership, err := membershipOf(s.DB, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{CommunityID: membership.CommunityID, UserID: userID}
	if content != "" {
		post.Content = &content
	}
	if media != nil {
		var mediaType models.MediaType
		switch {
		case storage.IsImage(media.Filename):
			mediaType = models.MediaTypeImage
		case storage.IsVideo(media.Filename):
			mediaType = models.MediaTypeVideo
		default:
			return nil, ErrInvalidMedia
		}
		path, err := s.Files.Save(media, "posts", storage.ImageExtensions, storage.VideoExtensions)
		if err != nil {
			if errors.Is(err, storage.ErrUnsupportedType) {
				return nil, ErrInvalidMedia
			}
			return nil, err
		}
		post.MediaURL = &path
		post.MediaType = &mediaType
	}

	if err := s.DB.Create(post).Error; err != nil {
		if post.MediaURL != nil {
			s.removeFile(*post.MediaURL)
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) removeFile(path string) {
	if err := s.Files.Remove(path); err != nil {
		Logger.Warning("failed to remove upload %s: %v", path, err)
	}
}

func (s *PostService) mediaURL(p *string) *string {
	if p == nil {
		return nil
	}
	return optionalURL(s.Files, *p)
}

func mediaTypeString(t *models.MediaType) *string {
	if t == nil {
		return nil
	}
	v := string(*t)
	return &v
}

func (s *PostService) summaries(query *gorm.DB) ([]PostSummary, error) {
	var posts []models.Post
	if err := query.Preload("User").Order("created_at DESC").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	summaries := make([]PostSummary, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		summary := PostSummary{
			ID:        p.ID,
			Content:   p.Content,
			MediaURL:  s.mediaURL(p.MediaURL),
			MediaType: mediaTypeString(p.MediaType),
			CreatedAt: p.CreatedAt,
		}
		if p.User != nil {
			summary.Author = p.User.Name
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// 2 CommunityPosts lists the posts of the caller's community
func (s *PostService) CommunityPosts(userID uint) ([]PostSummary, error) {
	membership, err := membershipOf(s.DB, userID)
	if err != nil {
		return nil, err
	}
	return s.summaries(s.DB.Where("community_id = ?", membership.CommunityID))
}

// 3 UserPosts lists the posts authorID wrote in the viewer's community
func (s *PostService) UserPosts(viewerID, authorID uint) ([]PostSummary, error) {
	membership, err := membershipOf(s.DB, viewerID)
	if err != nil {
		return nil, err
	}
	return s.summaries(s.DB.Where("community_id = ? AND user_id = ?", membership.CommunityID, authorID))
}

type postCount struct {
	PostID uint
	N      int64
}

func (s *PostService) countBy(model interface{}, ids []uint) (map[uint]int64, error) {
	var rows []postCount
	err := s.DB.Model(model).Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", ids).Group("post_id").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.PostID] = r.N
	}
	return counts, nil
}

// 4 Feed lists the caller's community posts with like and comment counters
func (s *PostService) Feed(userID uint) ([]FeedPost, error) {
	membership, err := membershipOf(s.DB, userID)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	err = s.DB.Preload("User").Where("community_id = ?", membership.CommunityID).
		Order("created_at DESC").Order("id DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	feed := make([]FeedPost, 0, len(posts))
	if len(posts) == 0 {
		return feed, nil
	}

	ids := make([]uint, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	likes, err := s.countBy(&models.Like{}, ids)
	if err != nil {
		return nil, err
	}
	comments, err := s.countBy(&models.Comment{}, ids)
	if err != nil {
		return nil, err
	}
	var likedIDs []uint
	if err := s.DB.Model(&models.Like{}).Where("user_id = ? AND post_id IN ?", userID, ids).Pluck("post_id", &likedIDs).Error; err != nil {
		return nil, err
	}
	liked := make(map[uint]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}

	for i := range posts {
		p := &posts[i]
		item := FeedPost{
			PostID:       p.ID,
			Content:      p.Content,
			MediaURL:     s.mediaURL(p.MediaURL),
			MediaType:    mediaTypeString(p.MediaType),
			CreatedAt:    p.CreatedAt,
			UserID:       p.UserID,
			LikeCount:    likes[p.ID],
			CommentCount: comments[p.ID],
			IsLiked:      liked[p.ID],
		}
		if p.User != nil {
			item.UserName = p.User.Name
			item.UserEmail = p.User.Email
			item.ProfilePicture = optionalURL(s.Files, p.User.ProfilePicture)
		}
		feed = append(feed, item)
	}
	return feed, nil
}

// visiblePost loads postID if it belongs to the caller's community. Posts of
// other communities read as not found.
func (s *PostService) visiblePost(userID, postID uint) (*models.Post, *models.CommunityUser, error) {
	membership, err := membershipOf(s.DB, userID)
	if err != nil {
		return nil, nil, err
	}
	var post models.Post
	err = s.DB.Where("id = ? AND community_id = ?", postID, membership.CommunityID).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrPostNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return &post, membership, nil
}

// 5 AddComment comments on a post and notifies its author
func (s *PostService) AddComment(userID, postID uint, comment string) (*models.Comment, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, fmt.Errorf("%w: comment is required", ErrInvalidInput)
	}
	post, _, err := s.visiblePost(userID, postID)
	if err != nil {
		return nil, err
	}

	c := &models.Comment{PostID: post.ID, UserID: userID, Comment: comment}
	if err := s.DB.Create(c).Error; err != nil {
		return nil, err
	}
	if post.UserID != userID {
		s.Notification.Notify(post.UserID, "New comment on your post",
			"Someone commented on your post. Check it out!", NotificationComment)
	}
	return c, nil
}

// 6 Comments lists the comments of a post, oldest first
func (s *PostService) Comments(userID, postID uint) ([]CommentView, error) {
	if _, _, err := s.visiblePost(userID, postID); err != nil {
		return nil, err
	}
	var comments []models.Comment
	err := s.DB.Preload("User").Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		view := CommentView{CommentID: c.ID, Comment: c.Comment, CreatedAt: c.CreatedAt, UserID: c.UserID}
		if c.User != nil {
			view.UserName = c.User.Name
			view.UserEmail = c.User.Email
		}
		views = append(views, view)
	}
	return views, nil
}

// 7 ToggleLike likes the post, or removes an existing like. It reports
// whether the post is liked afterwards.
func (s *PostService) ToggleLike(userID, postID uint) (bool, error) {
	if _, _, err := s.visiblePost(userID, postID); err != nil {
		return false, err
	}

	liked := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		liked = true
		return tx.Create(&models.Like{PostID: postID, UserID: userID}).Error
	})
	return liked, err
}

// 8 DeletePost removes a post with its comments and likes. Authors delete
// their own posts; admins and the head delete any post of their community.
func (s *PostService) DeletePost(userID, postID uint) error {
	post, membership, err := s.visiblePost(userID, postID)
	if err != nil {
		return err
	}
	if !roles.CanDeleteContent(userID, post.UserID, roleOf(membership)) {
		return fmt.Errorf("%w: no permission to delete this post", ErrForbidden)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
	if err != nil {
		return err
	}
	if post.MediaURL != nil {
		s.removeFile(*post.MediaURL)
	}
	return nil
}

// 9 DeleteComment removes a comment under the same rule as DeletePost
func (s *PostService) DeleteComment(userID, commentID uint) error {
	var comment models.Comment
	if err := s.DB.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	_, membership, err := s.visiblePost(userID, comment.PostID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if !roles.CanDeleteContent(userID, comment.UserID, roleOf(membership)) {
		return fmt.Errorf("%w: no permission to delete this comment", ErrForbidden)
	}
	return s.DB.Delete(&comment).Error
}
