package models

import "time"

type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActivityID uint      `gorm:"not null;index" json:"activityId"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type Like struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActivityID uint      `gorm:"not null;uniqueIndex:idx_like_activity_user" json:"activityId"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_like_activity_user" json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}
