package models

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Firstname    *string    `gorm:"size:50" json:"firstname,omitempty"`
	Lastname     *string    `gorm:"size:50" json:"lastname,omitempty"`
	AvatarKey    string     `json:"-"`
	AvatarType   string     `json:"avatarType,omitempty"`
	LastSeenAt   *time.Time `json:"lastSeenAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// HasAvatar сообщает, подтверждена ли загрузка аватара
func (u *User) HasAvatar() bool {
	return u.AvatarKey != ""
}
