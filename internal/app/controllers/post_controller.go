package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/error/code"
	"github.com/RealSujal/community-app/internal/error/response"
)

// InterfacePostController defines the post controller interface
type InterfacePostController interface {
	Create()
	CommunityPosts()
	Feed()
	Comment()
	Comments()
	Like()
	DeletePost()
	DeleteComment()
	UserPosts()
}

// PostController handles posts, comments and likes
type PostController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPostController creates a new post controller
func NewPostController(ctx *gin.Context, container *container.ServiceContainer) *PostController {
	return &PostController{
		Ctx:       ctx,
		Container: container,
	}
}

// CommentRequest is the comment payload
type CommentRequest struct {
	Comment string `json:"comment" binding:"required" example:"Congratulations!"`
}

func (c *PostController) service() services.InterfacePostService {
	return c.Container.GetService("post").(services.InterfacePostService)
}

// optionalFile returns the uploaded file of field, or nil when none was sent
func optionalFile(ctx *gin.Context, field string) (*multipart.FileHeader, bool) {
	file, err := ctx.FormFile(field)
	switch {
	case err == nil:
		return file, true
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, true
	default:
		response.ParamError(ctx, "invalid "+field+" upload")
		return nil, false
	}
}

// Create publishes a post with text, media or both
// @Summary      Create post
// @Tags         Post
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        content formData string false "Text"
// @Param        media formData file false "Image or video"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /api/posts/create [post]
func (c *PostController) Create() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	media, ok := optionalFile(c.Ctx, "media")
	if !ok {
		return
	}

	post, err := c.service().Create(userID, c.Ctx.PostForm("content"), media)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to create post")
		return
	}
	response.Created(c.Ctx, "Post created successfully", gin.H{"post_id": post.ID})
}

// CommunityPosts lists the posts of the caller's community
// @Summary      Community posts
// @Tags         Post
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  services.PostSummary
// @Router       /api/posts/community-posts [get]
func (c *PostController) CommunityPosts() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	posts, err := c.service().CommunityPosts(userID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to fetch posts")
		return
	}
	response.Success(c.Ctx, gin.H{"posts": posts})
}

// Feed lists posts with like and comment counters
// @Summary      Feed
// @Tags         Post
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  services.FeedPost
// @Router       /api/posts/feed [get]
func (c *PostController) Feed() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}

	feed, err := c.service().Feed(userID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to fetch feed")
		return
	}
	response.Success(c.Ctx, gin.H{"posts": feed})
}

// Comment adds a comment to a post
// @Summary      Comment on post
// @Tags         Post
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postId path int true "Post ID"
// @Param        request body CommentRequest true "Comment"
// @Success      201  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /api/posts/{postId}/comment [post]
func (c *PostController) Comment() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	postID, ok := uintParam(c.Ctx, "postId", "post ID")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "Comment is required")
		return
	}

	comment, err := c.service().AddComment(userID, postID, req.Comment)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to add comment")
		return
	}
	response.Created(c.Ctx, "Comment added", gin.H{"comment_id": comment.ID})
}

// Comments lists the comments of a post
// @Summary      Post comments
// @Tags         Post
// @Produce      json
// @Security     BearerAuth
// @Param        postId path int true "Post ID"
// @Success      200  {array}  services.CommentView
// @Failure      404  {object}  ErrorResponse
// @Router       /api/posts/{postId}/comments [get]
func (c *PostController) Comments() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	postID, ok := uintParam(c.Ctx, "postId", "post ID")
	if !ok {
		return
	}

	comments, err := c.service().Comments(userID, postID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to fetch comments")
		return
	}
	response.Success(c.Ctx, gin.H{"comments": comments})
}

// Like toggles the caller's like. 201 when liked, 200 when unliked.
// @Summary      Toggle like
// @Tags         Post
// @Produce      json
// @Security     BearerAuth
// @Param        postId path int true "Post ID"
// @Success      200  {object}  map[string]bool
// @Success      201  {object}  map[string]bool
// @Failure      404  {object}  ErrorResponse
// @Router       /api/posts/{postId}/like [post]
func (c *PostController) Like() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	postID, ok := uintParam(c.Ctx, "postId", "post ID")
	if !ok {
		return
	}

	liked, err := c.service().ToggleLike(userID, postID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to like post")
		return
	}
	if liked {
		response.Created(c.Ctx, "Post liked", gin.H{"liked": true})
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Post unliked", gin.H{"liked": false})
}

// DeletePost removes a post
// @Summary      Delete post
// @Tags         Post
// @Produce      json
// @Security     BearerAuth
// @Param        postId path int true "Post ID"
// @Success      200  {object}  MessageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/posts/posts/{postId} [delete]
func (c *PostController) DeletePost() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	postID, ok := uintParam(c.Ctx, "postId", "post ID")
	if !ok {
		return
	}

	if err := c.service().DeletePost(userID, postID); err != nil {
		handleServiceError(c.Ctx, err, "Failed to delete post")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Post deleted", nil)
}

// DeleteComment removes a comment
// @Summary      Delete comment
// @Tags         Post
// @Produce      json
// @Security     BearerAuth
// @Param        commentId path int true "Comment ID"
// @Success      200  {object}  MessageResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/posts/comments/{commentId} [delete]
func (c *PostController) DeleteComment() {
	userID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	commentID, ok := uintParam(c.Ctx, "commentId", "comment ID")
	if !ok {
		return
	}

	if err := c.service().DeleteComment(userID, commentID); err != nil {
		handleServiceError(c.Ctx, err, "Failed to delete comment")
		return
	}
	response.SuccessWithMessage(c.Ctx, code.StatusOK, "Comment deleted", nil)
}

// UserPosts lists the posts one member wrote in the caller's community
// @Summary      Posts of a user
// @Tags         Post
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int true "User ID"
// @Success      200  {array}  services.PostSummary
// @Router       /api/posts/posts/user/{userId} [get]
func (c *PostController) UserPosts() {
	viewerID, ok := currentUser(c.Ctx)
	if !ok {
		return
	}
	authorID, ok := uintParam(c.Ctx, "userId", "user ID")
	if !ok {
		return
	}

	posts, err := c.service().UserPosts(viewerID, authorID)
	if err != nil {
		handleServiceError(c.Ctx, err, "Failed to fetch posts")
		return
	}
	response.Success(c.Ctx, gin.H{"posts": posts})
}

// HandlePostFunc returns a gin handler for post requests
func HandlePostFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPostController(ctx, container)

		switch method {
		case "create":
			controller.Create()
		case "communityPosts":
			controller.CommunityPosts()
		case "feed":
			controller.Feed()
		case "comment":
			controller.Comment()
		case "comments":
			controller.Comments()
		case "like":
			controller.Like()
		case "deletePost":
			controller.DeletePost()
		case "deleteComment":
			controller.DeleteComment()
		case "userPosts":
			controller.UserPosts()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}
