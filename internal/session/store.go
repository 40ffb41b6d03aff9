// Package session описывает хранилище refresh-сессий: одна живая запись на
// пользователя, перезапись при логине и ротации, удаление при логауте.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/thereayou/rythmrun/internal/models"
)

var (
	ErrSessionNotFound = errors.New("refresh session not found")
	ErrSessionExpired  = errors.New("refresh session expired")
	ErrSessionMismatch = errors.New("refresh token does not match session")
)

type Store interface {
	// Save заменяет любую существующую запись пользователя
	Save(ctx context.Context, userID uint, token string, expiresAt time.Time) error
	// Consume проверяет, что предъявленный токен совпадает с сохранённым и не истёк
	Consume(ctx context.Context, userID uint, token string) (*models.RefreshToken, error)
	// Rotate атомарно меняет current на next; если current уже заменён, ErrSessionMismatch
	Rotate(ctx context.Context, userID uint, current, next string, expiresAt time.Time) error
	// Revoke идемпотентен
	Revoke(ctx context.Context, userID uint) error
}
