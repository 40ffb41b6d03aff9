package database

import (
	"context"

	"github.com/thereayou/rythmrun/internal/models"
)

func (d *Database) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := d.db.WithContext(ctx).Create(comment).Error; err != nil {
		return translate(err)
	}
	return d.db.WithContext(ctx).Preload("User").First(comment, "id = ?", comment.ID).Error
}

// GetComment ищет комментарий только внутри своей активности
func (d *Database) GetComment(ctx context.Context, activityID, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := d.db.WithContext(ctx).Preload("User").
		Where("id = ? AND activity_id = ?", id, activityID).
		First(&comment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (d *Database) ListComments(ctx context.Context, activityID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := d.db.WithContext(ctx).Preload("User").
		Where("activity_id = ?", activityID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	return comments, err
}

func (d *Database) UpdateCommentContent(ctx context.Context, comment *models.Comment, content string) error {
	return d.db.WithContext(ctx).Model(comment).Update("content", content).Error
}

func (d *Database) DeleteComment(ctx context.Context, id uint) error {
	res := d.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
