package services

import (
	"context"
	"errors"

	"github.com/thereayou/rythmrun/internal/database"
	"github.com/thereayou/rythmrun/internal/events"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/models"
)

type LikeStatus struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

type LikeService struct {
	likes  LikeStore
	gate   *Gate
	events events.Publisher
	log    logging.Logger
}

func NewLikeService(likes LikeStore, gate *Gate, pub events.Publisher, log logging.Logger) *LikeService {
	if pub == nil {
		pub = events.Nop()
	}
	return &LikeService{likes: likes, gate: gate, events: pub, log: log.With("service", "likes")}
}

func (s *LikeService) Status(ctx context.Context, callerID, activityID uint) (*LikeStatus, error) {
	if _, err := s.gate.Load(ctx, callerID, activityID); err != nil {
		return nil, err
	}
	return s.status(ctx, callerID, activityID)
}

func (s *LikeService) Like(ctx context.Context, callerID, activityID uint) (*LikeStatus, error) {
	activity, err := s.gate.Load(ctx, callerID, activityID)
	if err != nil {
		return nil, err
	}
	if err := s.likes.CreateLike(ctx, &models.Like{ActivityID: activityID, UserID: callerID}); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrAlreadyLiked
		}
		return nil, err
	}

	if !activity.OwnedBy(callerID) {
		e := events.New(events.ActivityLiked, activity.UserID, events.ActivityLikeData{ActivityID: activityID, UserID: callerID})
		if err := s.events.Publish(ctx, e); err != nil {
			s.log.Warn(ctx, "publish event", "type", e.Type, "error", err)
		}
	}
	return s.status(ctx, callerID, activityID)
}

func (s *LikeService) Unlike(ctx context.Context, callerID, activityID uint) (*LikeStatus, error) {
	if _, err := s.gate.Load(ctx, callerID, activityID); err != nil {
		return nil, err
	}
	if err := s.likes.DeleteLike(ctx, activityID, callerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrLikeNotFound
		}
		return nil, err
	}
	return s.status(ctx, callerID, activityID)
}

func (s *LikeService) status(ctx context.Context, callerID, activityID uint) (*LikeStatus, error) {
	liked, err := s.likes.HasLiked(ctx, activityID, callerID)
	if err != nil {
		return nil, err
	}
	n, err := s.likes.CountLikes(ctx, activityID)
	if err != nil {
		return nil, err
	}
	return &LikeStatus{Liked: liked, LikeCount: n}, nil
}
