package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RealSujal/community-app/internal/app/controllers"
	"github.com/RealSujal/community-app/internal/app/middleware"
	"github.com/RealSujal/community-app/internal/domain/services"
	"github.com/RealSujal/community-app/internal/domain/services/container"
	"github.com/RealSujal/community-app/internal/infrastructure/config"
	"github.com/RealSujal/community-app/internal/infrastructure/storage"
)

// SetupRouter builds the engine with every route of the API
func SetupRouter(serviceContainer *container.ServiceContainer) *gin.Engine {
	cfg := serviceContainer.GetService("config").(*config.Config)
	if cfg.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.MaxMultipartMemory = 32 << 20

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Community API is running")
	})
	r.Static("/"+storage.URLPrefix, cfg.UploadDir)

	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes mounts all API groups
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	jwtService := container.GetService("jwt").(services.InterfaceJWTService)
	auth := middleware.AuthenticateUser(jwtService)
	cache := middleware.NewResponseCache()

	registerAuthRoutes(r.Group("/auth"), container, auth)

	api := r.Group("/api")
	registerPublicRoutes(api, container, cache)
	registerAuthenticatedRoutes(api, container, auth, cache)
}

// registerAuthRoutes mounts registration, login and password recovery
func registerAuthRoutes(
	group *gin.RouterGroup,
	container *container.ServiceContainer,
	auth gin.HandlerFunc,
) {
	// 2 requests per second per IP, bursts of 10
	group.Use(middleware.IPRateLimiter(2, 10))

	group.POST("/send-otp", controllers.HandleAuthFunc(container, "sendOTP"))
	group.POST("/register", controllers.HandleAuthFunc(container, "register"))
	group.POST("/verify-otp-register", controllers.HandleAuthFunc(container, "register"))
	group.POST("/login", controllers.HandleAuthFunc(container, "login"))
	group.POST("/request-reset", controllers.HandleAuthFunc(container, "requestReset"))
	group.POST("/reset-password", controllers.HandleAuthFunc(container, "resetPassword"))

	group.GET("/privacy-settings", auth, controllers.HandlePrivacyFunc(container, "getSettings"))
	group.PUT("/privacy-settings", auth, controllers.HandlePrivacyFunc(container, "replaceSettings"))
}

// registerPublicRoutes mounts the read-only routes that need no token
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
	cache *middleware.ResponseCache,
) {
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "health"))

	api.GET("/families", cache.Handler(time.Minute), controllers.HandleFamilyFunc(container, "list"))
	api.GET("/family-by-person/:personId", controllers.HandleFamilyFunc(container, "byPerson"))

	api.GET("/person/:id", controllers.HandlePersonFunc(container, "get"))
	api.GET("/people", controllers.HandlePersonFunc(container, "list"))
	api.GET("/relations/:person_id", controllers.HandlePersonFunc(container, "relations"))
	api.GET("/profile/:personId/family-relations", controllers.HandlePersonFunc(container, "familyRelations"))
}

// registerAuthenticatedRoutes mounts the routes that require a token
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
	auth gin.HandlerFunc,
	cache *middleware.ResponseCache,
) {
	authed := api.Group("")
	authed.Use(auth)

	// Families and persons. Writes that change the family list purge the cache.
	authed.POST("/register-family", cache.Invalidate(), controllers.HandleFamilyFunc(container, "register"))
	authed.GET("/my-family", controllers.HandleFamilyFunc(container, "mine"))
	authed.POST("/person", controllers.HandlePersonFunc(container, "add"))
	authed.PUT("/person/:id", controllers.HandlePersonFunc(container, "update"))
	authed.DELETE("/person/:id", controllers.HandlePersonFunc(container, "delete"))
	authed.POST("/add-relation", controllers.HandlePersonFunc(container, "addRelation"))

	// Privacy, password and help
	authed.GET("/privacy", controllers.HandlePrivacyFunc(container, "getFlags"))
	authed.PUT("/privacy", controllers.HandlePrivacyFunc(container, "setFlag"))
	authed.POST("/change-password", controllers.HandleUserFunc(container, "changePassword"))
	authed.GET("/faqs", cache.Handler(10*time.Minute), controllers.HandleHelpFunc(container, "faqs"))
	authed.POST("/feedback", controllers.HandleHelpFunc(container, "feedback"))
	authed.POST("/ai-chat", controllers.HandleHelpFunc(container, "chat"))

	users := authed.Group("/users")
	{
		users.PATCH("/edit-profile", controllers.HandleUserFunc(container, "editProfile"))
		users.PATCH("/change-password", controllers.HandleUserFunc(container, "changePassword"))
		users.POST("/upload-profile-picture", controllers.HandleUserFunc(container, "uploadProfilePicture"))
		users.GET("/me", controllers.HandleUserFunc(container, "me"))
		users.GET("/user/:userId", controllers.HandleUserFunc(container, "communityMember"))
		users.PUT("/promote/:userId", controllers.HandleUserFunc(container, "promote"))
		users.PUT("/demote/:userId", controllers.HandleUserFunc(container, "demote"))
		users.GET("/:userId", controllers.HandleUserFunc(container, "publicProfile"))
	}

	communities := authed.Group("/communities")
	{
		communities.POST("/create-community", controllers.HandleCommunityFunc(container, "create"))
		communities.POST("/join-community", controllers.HandleCommunityFunc(container, "join"))
		communities.GET("/members", controllers.HandleCommunityFunc(container, "members"))
		communities.DELETE("/leave-community", controllers.HandleCommunityFunc(container, "leave"))
		communities.PUT("/transfer-head", controllers.HandleCommunityFunc(container, "transferHead"))
		communities.DELETE("/remove-member/:userId", controllers.HandleCommunityFunc(container, "removeMember"))
		communities.GET("/my-community", controllers.HandleCommunityFunc(container, "mine"))
		communities.GET("/dashboard", controllers.HandleCommunityFunc(container, "dashboard"))
	}

	posts := authed.Group("/posts")
	{
		posts.POST("/create", controllers.HandlePostFunc(container, "create"))
		posts.GET("/community-posts", controllers.HandlePostFunc(container, "communityPosts"))
		posts.GET("/feed", controllers.HandlePostFunc(container, "feed"))
		posts.POST("/:postId/comment", controllers.HandlePostFunc(container, "comment"))
		posts.GET("/:postId/comments", controllers.HandlePostFunc(container, "comments"))
		posts.POST("/:postId/like", controllers.HandlePostFunc(container, "like"))
		posts.DELETE("/posts/:postId", controllers.HandlePostFunc(container, "deletePost"))
		posts.DELETE("/comments/:commentId", controllers.HandlePostFunc(container, "deleteComment"))
		posts.GET("/posts/user/:userId", controllers.HandlePostFunc(container, "userPosts"))
	}

	events := authed.Group("/events")
	{
		events.POST("/create", controllers.HandleEventFunc(container, "create"))
		events.GET("", controllers.HandleEventFunc(container, "list"))
		events.DELETE("/:eventId", controllers.HandleEventFunc(container, "delete"))
	}

	notifications := authed.Group("/notifications")
	{
		notifications.GET("", controllers.HandleNotificationFunc(container, "list"))
		notifications.PATCH("/:id/seen", controllers.HandleNotificationFunc(container, "markSeen"))
		notifications.PATCH("/mark-all-seen", controllers.HandleNotificationFunc(container, "markAllSeen"))
	}
}
