package database

import (
	"context"

	"github.com/thereayou/rythmrun/internal/models"
)

// CreateLike повторный лайк упирается в idx_like_activity_user и возвращает ErrDuplicate
func (d *Database) CreateLike(ctx context.Context, like *models.Like) error {
	return translate(d.db.WithContext(ctx).Create(like).Error)
}

func (d *Database) DeleteLike(ctx context.Context, activityID, userID uint) error {
	res := d.db.WithContext(ctx).
		Where("activity_id = ? AND user_id = ?", activityID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) CountLikes(ctx context.Context, activityID uint) (int64, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&models.Like{}).Where("activity_id = ?", activityID).Count(&n).Error
	return n, err
}

func (d *Database) HasLiked(ctx context.Context, activityID, userID uint) (bool, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&models.Like{}).
		Where("activity_id = ? AND user_id = ?", activityID, userID).
		Count(&n).Error
	return n > 0, err
}
