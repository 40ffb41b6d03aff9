package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/thereayou/rythmrun/internal/models"
)

// FindFriendRequestBetween ищет запись пары в обоих направлениях
func (d *Database) FindFriendRequestBetween(ctx context.Context, a, b uint) (*models.FriendRequest, error) {
	var fr models.FriendRequest
	err := d.db.WithContext(ctx).
		Where("(requester_id = ? AND target_id = ?) OR (requester_id = ? AND target_id = ?)", a, b, b, a).
		First(&fr).Error
	if err != nil {
		return nil, translate(err)
	}
	return &fr, nil
}

func (d *Database) GetFriendRequest(ctx context.Context, id uint) (*models.FriendRequest, error) {
	var fr models.FriendRequest
	if err := d.db.WithContext(ctx).Preload("Requester").Preload("Target").First(&fr, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &fr, nil
}

// CreateFriendRequest при гонке встречных заявок второй insert упирается в idx_friend_pair
func (d *Database) CreateFriendRequest(ctx context.Context, fr *models.FriendRequest) error {
	return translate(d.db.WithContext(ctx).Create(fr).Error)
}

// ReplaceRejectedFriendRequest удаляет отклонённую запись и создаёт новую в одной транзакции
func (d *Database) ReplaceRejectedFriendRequest(ctx context.Context, rejectedID uint, fr *models.FriendRequest) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND status = ?", rejectedID, models.FriendStatusRejected).Delete(&models.FriendRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return translate(tx.Create(fr).Error)
	})
}

// DeletePendingFriendRequest отмена заявки отправителем
func (d *Database) DeletePendingFriendRequest(ctx context.Context, requesterID, id uint) error {
	res := d.db.WithContext(ctx).
		Where("id = ? AND requester_id = ? AND status = ?", id, requesterID, models.FriendStatusPending).
		Delete(&models.FriendRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RespondFriendRequest переводит PENDING заявку получателя в status
func (d *Database) RespondFriendRequest(ctx context.Context, targetID, id uint, status models.FriendStatus) (*models.FriendRequest, error) {
	res := d.db.WithContext(ctx).Model(&models.FriendRequest{}).
		Where("id = ? AND target_id = ? AND status = ?", id, targetID, models.FriendStatusPending).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return d.GetFriendRequest(ctx, id)
}

func (d *Database) ListPendingFriendRequests(ctx context.Context, targetID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := d.db.WithContext(ctx).
		Where("target_id = ? AND status = ?", targetID, models.FriendStatusPending).
		Order("created_at DESC").Order("id DESC").
		Preload("Requester").
		Find(&requests).Error
	return requests, err
}

func (d *Database) ListFriends(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	var friends []models.FriendRequest
	err := d.db.WithContext(ctx).
		Where("(requester_id = ? OR target_id = ?) AND status = ?", userID, userID, models.FriendStatusAccepted).
		Order("updated_at DESC").
		Preload("Requester").Preload("Target").
		Find(&friends).Error
	return friends, err
}
