package services

import (
	"context"
	"errors"

	"github.com/thereayou/rythmrun/internal/database"
	"github.com/thereayou/rythmrun/internal/events"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/models"
)

type CommentService struct {
	comments CommentStore
	gate     *Gate
	events   events.Publisher
	log      logging.Logger
}

func NewCommentService(comments CommentStore, gate *Gate, pub events.Publisher, log logging.Logger) *CommentService {
	if pub == nil {
		pub = events.Nop()
	}
	return &CommentService{comments: comments, gate: gate, events: pub, log: log.With("service", "comments")}
}

func (s *CommentService) List(ctx context.Context, callerID, activityID uint) ([]models.Comment, error) {
	if _, err := s.gate.Load(ctx, callerID, activityID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListComments(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, nil
}

func (s *CommentService) Get(ctx context.Context, callerID, activityID, commentID uint) (*models.Comment, error) {
	if _, err := s.gate.Load(ctx, callerID, activityID); err != nil {
		return nil, err
	}
	return s.find(ctx, activityID, commentID)
}

func (s *CommentService) Create(ctx context.Context, callerID, activityID uint, content string) (*models.Comment, error) {
	activity, err := s.gate.Load(ctx, callerID, activityID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{ActivityID: activityID, UserID: callerID, Content: content}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if !activity.OwnedBy(callerID) {
		e := events.New(events.ActivityCommented, activity.UserID, events.ActivityCommentData{
			ActivityID: activityID,
			CommentID:  comment.ID,
			AuthorID:   callerID,
			Content:    content,
		})
		if err := s.events.Publish(ctx, e); err != nil {
			s.log.Warn(ctx, "publish event", "type", e.Type, "error", err)
		}
	}
	return comment, nil
}

// Update редактировать может только автор, и только пока активность ему видна
func (s *CommentService) Update(ctx context.Context, callerID, activityID, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.authored(ctx, callerID, activityID, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.comments.UpdateCommentContent(ctx, comment, content); err != nil {
		return nil, err
	}
	return s.find(ctx, activityID, commentID)
}

func (s *CommentService) Delete(ctx context.Context, callerID, activityID, commentID uint) error {
	if _, err := s.authored(ctx, callerID, activityID, commentID); err != nil {
		return err
	}
	err := s.comments.DeleteComment(ctx, commentID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *CommentService) authored(ctx context.Context, callerID, activityID, commentID uint) (*models.Comment, error) {
	if _, err := s.gate.Load(ctx, callerID, activityID); err != nil {
		return nil, err
	}
	comment, err := s.find(ctx, activityID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != callerID {
		return nil, ErrNotFound
	}
	return comment, nil
}

func (s *CommentService) find(ctx context.Context, activityID, commentID uint) (*models.Comment, error) {
	comment, err := s.comments.GetComment(ctx, activityID, commentID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return comment, err
}
