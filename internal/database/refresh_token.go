package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/thereayou/rythmrun/internal/models"
	"github.com/thereayou/rythmrun/internal/session"
)

// RefreshSessions хранилище refresh-сессий поверх таблицы refresh_tokens
type RefreshSessions struct {
	d   *Database
	now func() time.Time
}

var _ session.Store = (*RefreshSessions)(nil)

func (d *Database) RefreshSessions() *RefreshSessions {
	return &RefreshSessions{d: d, now: time.Now}
}

func (s *RefreshSessions) Save(ctx context.Context, userID uint, token string, expiresAt time.Time) error {
	rec := models.RefreshToken{UserID: userID, Token: token, ExpiresAt: expiresAt.UTC()}
	return s.d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at", "updated_at"}),
	}).Create(&rec).Error
}

func (s *RefreshSessions) Consume(ctx context.Context, userID uint, token string) (*models.RefreshToken, error) {
	var rec models.RefreshToken
	if err := s.d.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error; err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return nil, session.ErrSessionNotFound
		}
		return nil, err
	}
	if rec.Token != token {
		return nil, session.ErrSessionMismatch
	}
	if rec.Expired(s.now()) {
		// просроченная запись больше не нужна
		if err := s.Revoke(ctx, userID); err != nil {
			return nil, fmt.Errorf("revoke expired session: %w", err)
		}
		return nil, session.ErrSessionExpired
	}
	return &rec, nil
}

// Rotate одно условное UPDATE: выигрывает только тот, кто предъявил текущий токен
func (s *RefreshSessions) Rotate(ctx context.Context, userID uint, current, next string, expiresAt time.Time) error {
	res := s.d.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("user_id = ? AND token = ? AND expires_at > ?", userID, current, s.now().UTC()).
		Updates(map[string]interface{}{"token": next, "expires_at": expiresAt.UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return session.ErrSessionMismatch
	}
	return nil
}

func (s *RefreshSessions) Revoke(ctx context.Context, userID uint) error {
	return s.d.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}
