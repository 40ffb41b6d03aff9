// Package events доменные события для уведомлений пользователей.
package events

import (
	"context"
	"time"
)

const (
	FriendRequestReceived = "friend.request.received"
	FriendRequestAccepted = "friend.request.accepted"
	ActivityCommented     = "activity.commented"
	ActivityLiked         = "activity.liked"
)

// Event адресовано одному получателю UserID
type Event struct {
	Type      string      `json:"type"`
	UserID    uint        `json:"userId"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

func New(kind string, recipient uint, data interface{}) Event {
	return Event{Type: kind, UserID: recipient, Data: data, Timestamp: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type FriendRequestData struct {
	RequestID uint   `json:"requestId"`
	FromID    uint   `json:"fromUserId"`
	FromName  string `json:"fromUsername,omitempty"`
}

type ActivityCommentData struct {
	ActivityID uint   `json:"activityId"`
	CommentID  uint   `json:"commentId"`
	AuthorID   uint   `json:"authorId"`
	Content    string `json:"content"`
}

type ActivityLikeData struct {
	ActivityID uint `json:"activityId"`
	UserID     uint `json:"userId"`
}
