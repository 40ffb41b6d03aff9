package models

import "time"

type Activity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	Type        string    `gorm:"not null;index" json:"type"`
	StartTime   time.Time `gorm:"not null;index" json:"startTime"`
	EndTime     time.Time `gorm:"not null" json:"endTime"`
	Distance    float64   `json:"distance"`
	Duration    float64   `json:"duration"`
	AvgSpeed    float64   `json:"avgSpeed"`
	MaxSpeed    float64   `json:"maxSpeed"`
	Calories    *float64  `json:"calories,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsPublic    bool      `gorm:"not null;default:false" json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Locations []Location `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"locations"`

	LikeCount    int64 `gorm:"-" json:"likeCount"`
	CommentCount int64 `gorm:"-" json:"commentCount"`
}

// OwnedBy владелец активности
func (a *Activity) OwnedBy(userID uint) bool {
	return a.UserID == userID
}

type Location struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActivityID uint      `gorm:"not null;index" json:"activityId"`
	Latitude   float64   `gorm:"not null" json:"latitude"`
	Longitude  float64   `gorm:"not null" json:"longitude"`
	Altitude   *float64  `json:"altitude,omitempty"`
	Timestamp  time.Time `gorm:"not null" json:"timestamp"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	Speed      *float64  `json:"speed,omitempty"`
}
