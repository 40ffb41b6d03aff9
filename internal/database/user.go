package database

import (
	"context"
	"strings"
	"time"

	"github.com/thereayou/rythmrun/internal/models"
)

func (d *Database) SaveUser(ctx context.Context, user *models.User) error {
	return translate(d.db.WithContext(ctx).Create(user).Error)
}

// UpdateProfile пишет только имя и фамилию; nil значит не менять
func (d *Database) UpdateProfile(ctx context.Context, id uint, firstname, lastname *string) error {
	fields := map[string]interface{}{}
	if firstname != nil {
		fields["firstname"] = *firstname
	}
	if lastname != nil {
		fields["lastname"] = *lastname
	}
	if len(fields) == 0 {
		return nil
	}

	res := d.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *Database) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (d *Database) UserExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := d.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *Database) UpdateLastSeen(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_seen_at", time.Now()).Error
}

func (d *Database) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	res := d.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) UpdateAvatar(ctx context.Context, id uint, key, contentType string) error {
	res := d.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"avatar_key": key, "avatar_type": contentType})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchUsers поиск по подстроке username без учёта регистра
func (d *Database) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	err := d.db.WithContext(ctx).
		Where(`LOWER(username) LIKE ? ESCAPE '\'`, pattern).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
