package services

import (
	"context"

	"github.com/thereayou/rythmrun/internal/database"
	"github.com/thereayou/rythmrun/internal/models"
)

// Интерфейсы хранилища, которые нужны сервисам; *database.Database реализует все.

type UserStore interface {
	SaveUser(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, id uint, firstname, lastname *string) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	UserExists(ctx context.Context, id uint) (bool, error)
	UpdateLastSeen(ctx context.Context, id uint) error
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
	UpdateAvatar(ctx context.Context, id uint, key, contentType string) error
	SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error)
}

type FriendStore interface {
	FindFriendRequestBetween(ctx context.Context, a, b uint) (*models.FriendRequest, error)
	GetFriendRequest(ctx context.Context, id uint) (*models.FriendRequest, error)
	CreateFriendRequest(ctx context.Context, fr *models.FriendRequest) error
	ReplaceRejectedFriendRequest(ctx context.Context, rejectedID uint, fr *models.FriendRequest) error
	DeletePendingFriendRequest(ctx context.Context, requesterID, id uint) error
	RespondFriendRequest(ctx context.Context, targetID, id uint, status models.FriendStatus) (*models.FriendRequest, error)
	ListPendingFriendRequests(ctx context.Context, targetID uint) ([]models.FriendRequest, error)
	ListFriends(ctx context.Context, userID uint) ([]models.FriendRequest, error)
}

type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *models.Activity) error
	UpdateActivity(ctx context.Context, activity *models.Activity, replaceLocations bool) error
	GetActivity(ctx context.Context, id uint) (*models.Activity, error)
	ListActivities(ctx context.Context, f database.ActivityFilter) ([]models.Activity, int64, error)
	DeleteActivity(ctx context.Context, id uint) error
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, activityID, id uint) (*models.Comment, error)
	ListComments(ctx context.Context, activityID uint) ([]models.Comment, error)
	UpdateCommentContent(ctx context.Context, comment *models.Comment, content string) error
	DeleteComment(ctx context.Context, id uint) error
}

type LikeStore interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, activityID, userID uint) error
	CountLikes(ctx context.Context, activityID uint) (int64, error)
	HasLiked(ctx context.Context, activityID, userID uint) (bool, error)
}

var (
	_ UserStore     = (*database.Database)(nil)
	_ FriendStore   = (*database.Database)(nil)
	_ ActivityStore = (*database.Database)(nil)
	_ CommentStore  = (*database.Database)(nil)
	_ LikeStore     = (*database.Database)(nil)
)
