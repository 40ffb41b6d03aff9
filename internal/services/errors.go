package services

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrInvalidPassword     = errors.New("current password is incorrect")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes")

	// ErrNotFound один и тот же ответ для "нет" и "нельзя"
	ErrNotFound = errors.New("not found")

	ErrSelfRequest    = errors.New("cannot send friend request to yourself")
	ErrTargetNotFound = errors.New("user not found")
	ErrRequestPending = errors.New("friend request already pending")
	ErrAlreadyFriends = errors.New("already friends")
	ErrRequestExists  = errors.New("friend request already exists")

	ErrAlreadyLiked = errors.New("activity already liked")
	ErrLikeNotFound = errors.New("like not found")

	ErrInvalidAvatarKey = errors.New("invalid avatar key")
	ErrAvatarsDisabled  = errors.New("avatar storage is not configured")
)
