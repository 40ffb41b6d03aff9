package main

import (
	"github.com/gin-gonic/gin"

	"github.com/thereayou/rythmrun/internal/handlers"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/middleware"
)

// Handlers набор обработчиков, собранный в NewServer
type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Friend   *handlers.FriendHandler
	Activity *handlers.ActivityHandler
	Comment  *handlers.CommentHandler
	Like     *handlers.LikeHandler
	WS       *handlers.WebSocketHandler
	Health   *handlers.HealthHandler
}

func NewRouter(h *Handlers, verifier middleware.AccessVerifier, log logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	// мобильный клиент ходит с префиксом /api
	APIEndpoints(r.Group("/"), h, verifier)
	APIEndpoints(r.Group("/api"), h, verifier)
	return r
}

func APIEndpoints(r *gin.RouterGroup, h *Handlers, verifier middleware.AccessVerifier) {
	requireAuth := middleware.AuthMiddleware(verifier)

	r.GET("/health", h.Health.Health)
	r.GET("/ws", middleware.WSAuthMiddleware(verifier), h.WS.HandleWebSocket)

	// Auth endpoints
	users := r.Group("/users")
	{
		users.POST("/register", h.Auth.Register)
		users.POST("/login", h.Auth.Login)

		authed := users.Group("", requireAuth)
		authed.POST("/logout", h.Auth.Logout)
		authed.POST("/refresh-token", h.Auth.Refresh)
		authed.PUT("/change-password", h.Auth.ChangePassword)
		authed.GET("/me", h.User.GetMe)
		authed.PUT("/profile", h.User.UpdateProfile)
		authed.GET("/search", h.User.SearchUsers)
		authed.GET("/:id", h.User.GetUser)
		authed.GET("/:id/avatar", h.User.GetAvatar)
	}

	avatar := r.Group("/avatar", requireAuth)
	{
		avatar.POST("/upload-url", h.User.AvatarUploadURL)
		avatar.POST("/confirm", h.User.ConfirmAvatar)
	}

	friends := r.Group("/friends", requireAuth)
	{
		friends.GET("", h.Friend.ListFriends)
		friends.POST("/requests", h.Friend.SendRequest)
		friends.GET("/requests/pending", h.Friend.PendingRequests)
		friends.DELETE("/requests/:id", h.Friend.CancelRequest)
		friends.POST("/requests/:id/accept", h.Friend.AcceptRequest)
		friends.POST("/requests/:id/reject", h.Friend.RejectRequest)
		friends.GET("/status/:userId", h.Friend.Status)
	}

	activities := r.Group("/activities", requireAuth)
	{
		activities.GET("", h.Activity.List)
		activities.POST("", h.Activity.Create)
		activities.GET("/:activityId", h.Activity.Get)
		activities.PATCH("/:activityId", h.Activity.Update)
		activities.DELETE("/:activityId", h.Activity.Delete)

		activities.GET("/:activityId/comments", h.Comment.List)
		activities.POST("/:activityId/comments", h.Comment.Create)
		activities.GET("/:activityId/comments/:commentId", h.Comment.Get)
		activities.PATCH("/:activityId/comments/:commentId", h.Comment.Update)
		activities.DELETE("/:activityId/comments/:commentId", h.Comment.Delete)

		activities.GET("/:activityId/likes", h.Like.Status)
		activities.POST("/:activityId/likes", h.Like.Like)
		activities.DELETE("/:activityId/likes", h.Like.Unlike)
	}
}
