package services

import (
	"context"
	"errors"
	"time"

	"github.com/thereayou/rythmrun/internal/database"
	"github.com/thereayou/rythmrun/internal/events"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/models"
)

// FriendStatus состояние пары с точки зрения вызывающего.
// Direction заполняется только для PENDING.
type FriendStatus struct {
	Status    models.FriendStatus    `json:"status"`
	Direction models.FriendDirection `json:"direction,omitempty"`
	Request   *models.FriendRequest  `json:"request,omitempty"`
}

type Friend struct {
	RequestID uint         `json:"requestId"`
	User      *models.User `json:"user"`
	Since     time.Time    `json:"since"`
}

type FriendService struct {
	users   UserStore
	friends FriendStore
	events  events.Publisher
	log     logging.Logger
	// allowAfterReject новая заявка заменяет REJECTED запись
	allowAfterReject bool
}

func NewFriendService(users UserStore, friends FriendStore, pub events.Publisher, log logging.Logger, allowAfterReject bool) *FriendService {
	if pub == nil {
		pub = events.Nop()
	}
	return &FriendService{
		users:            users,
		friends:          friends,
		events:           pub,
		log:              log.With("service", "friends"),
		allowAfterReject: allowAfterReject,
	}
}

func (s *FriendService) Request(ctx context.Context, requesterID, targetID uint) (*models.FriendRequest, error) {
	if requesterID == targetID {
		return nil, ErrSelfRequest
	}
	ok, err := s.users.UserExists(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTargetNotFound
	}

	fr := models.NewFriendRequest(requesterID, targetID)

	existing, err := s.friends.FindFriendRequestBetween(ctx, requesterID, targetID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		err = s.friends.CreateFriendRequest(ctx, fr)
	case err != nil:
		return nil, err
	case existing.Status == models.FriendStatusPending:
		return nil, ErrRequestPending
	case existing.Status == models.FriendStatusAccepted:
		return nil, ErrAlreadyFriends
	case !s.allowAfterReject:
		return nil, ErrRequestExists
	default:
		err = s.friends.ReplaceRejectedFriendRequest(ctx, existing.ID, fr)
	}

	if err != nil {
		// встречная заявка успела вставиться раньше
		if errors.Is(err, database.ErrDuplicate) || errors.Is(err, database.ErrNotFound) {
			return nil, ErrRequestPending
		}
		return nil, err
	}

	created, err := s.friends.GetFriendRequest(ctx, fr.ID)
	if err != nil {
		return nil, err
	}

	data := events.FriendRequestData{RequestID: created.ID, FromID: requesterID}
	if created.Requester != nil {
		data.FromName = created.Requester.Username
	}
	s.publish(ctx, events.New(events.FriendRequestReceived, targetID, data))
	return created, nil
}

// Cancel только отправитель и только пока PENDING; иначе ErrNotFound
func (s *FriendService) Cancel(ctx context.Context, requesterID, requestID uint) error {
	err := s.friends.DeletePendingFriendRequest(ctx, requesterID, requestID)
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *FriendService) Accept(ctx context.Context, targetID, requestID uint) (*models.FriendRequest, error) {
	fr, err := s.respond(ctx, targetID, requestID, models.FriendStatusAccepted)
	if err != nil {
		return nil, err
	}
	data := events.FriendRequestData{RequestID: fr.ID, FromID: targetID}
	if fr.Target != nil {
		data.FromName = fr.Target.Username
	}
	s.publish(ctx, events.New(events.FriendRequestAccepted, fr.RequesterID, data))
	return fr, nil
}

func (s *FriendService) Reject(ctx context.Context, targetID, requestID uint) (*models.FriendRequest, error) {
	return s.respond(ctx, targetID, requestID, models.FriendStatusRejected)
}

func (s *FriendService) respond(ctx context.Context, targetID, requestID uint, status models.FriendStatus) (*models.FriendRequest, error) {
	fr, err := s.friends.RespondFriendRequest(ctx, targetID, requestID, status)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return fr, err
}

func (s *FriendService) StatusBetween(ctx context.Context, userID, otherID uint) (*FriendStatus, error) {
	fr, err := s.friends.FindFriendRequestBetween(ctx, userID, otherID)
	if errors.Is(err, database.ErrNotFound) {
		return &FriendStatus{Status: models.FriendStatusNone}, nil
	}
	if err != nil {
		return nil, err
	}

	res := &FriendStatus{Status: fr.Status, Request: fr}
	if fr.Status == models.FriendStatusPending {
		if fr.RequesterID == userID {
			res.Direction = models.DirectionSent
		} else {
			res.Direction = models.DirectionReceived
		}
	}
	return res, nil
}

func (s *FriendService) ListPending(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.friends.ListPendingFriendRequests(ctx, userID)
}

func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]Friend, error) {
	rows, err := s.friends.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Friend, 0, len(rows))
	for i := range rows {
		fr := &rows[i]
		other := fr.Target
		if fr.TargetID == userID {
			other = fr.Requester
		}
		out = append(out, Friend{RequestID: fr.ID, User: other, Since: fr.UpdatedAt})
	}
	return out, nil
}

func (s *FriendService) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.Warn(ctx, "publish event", "type", e.Type, "user_id", e.UserID, "error", err)
	}
}
