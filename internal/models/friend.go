package models

import "time"

type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "PENDING"
	FriendStatusAccepted FriendStatus = "ACCEPTED"
	FriendStatusRejected FriendStatus = "REJECTED"
	// FriendStatusNone записи нет; в базе не хранится
	FriendStatusNone FriendStatus = "NONE"
)

type FriendDirection string

const (
	DirectionSent     FriendDirection = "SENT"
	DirectionReceived FriendDirection = "RECEIVED"
)

// FriendRequest хранится направленно (requester -> target), но пара
// (UserLowID, UserHighID) уникальна независимо от направления.
type FriendRequest struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	RequesterID uint         `gorm:"not null;index" json:"requesterId"`
	TargetID    uint         `gorm:"not null;index" json:"targetId"`
	UserLowID   uint         `gorm:"not null;uniqueIndex:idx_friend_pair" json:"-"`
	UserHighID  uint         `gorm:"not null;uniqueIndex:idx_friend_pair" json:"-"`
	Status      FriendStatus `gorm:"type:varchar(16);not null;default:'PENDING';index" json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`

	Requester *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Target    *User `gorm:"foreignKey:TargetID" json:"target,omitempty"`
}

// NewFriendRequest заполняет упорядоченную пару
func NewFriendRequest(requesterID, targetID uint) *FriendRequest {
	low, high := OrderedPair(requesterID, targetID)
	return &FriendRequest{
		RequesterID: requesterID,
		TargetID:    targetID,
		UserLowID:   low,
		UserHighID:  high,
		Status:      FriendStatusPending,
	}
}

func OrderedPair(a, b uint) (uint, uint) {
	if a < b {
		return a, b
	}
	return b, a
}

// Other возвращает вторую сторону отношения
func (f *FriendRequest) Other(userID uint) uint {
	if f.RequesterID == userID {
		return f.TargetID
	}
	return f.RequesterID
}
