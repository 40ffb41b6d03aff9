package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thereayou/rythmrun/internal/models"
)

type ActivityFilter struct {
	UserID    uint
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
	Offset    int
	Limit     int
}

// CreateActivity пишет активность и её точки одной транзакцией
func (d *Database) CreateActivity(ctx context.Context, activity *models.Activity) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locations := activity.Locations
		activity.Locations = nil
		if err := tx.Omit(clause.Associations).Create(activity).Error; err != nil {
			return err
		}
		if len(locations) > 0 {
			for i := range locations {
				locations[i].ID = 0
				locations[i].ActivityID = activity.ID
			}
			if err := tx.Create(&locations).Error; err != nil {
				return err
			}
		}
		activity.Locations = locations
		return nil
	})
}

// UpdateActivity сохраняет поля активности; при replaceLocations точки
// заменяются целиком (delete-then-insert) в той же транзакции.
func (d *Database) UpdateActivity(ctx context.Context, activity *models.Activity, replaceLocations bool) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(activity).Error; err != nil {
			return err
		}
		if !replaceLocations {
			return nil
		}
		if err := tx.Where("activity_id = ?", activity.ID).Delete(&models.Location{}).Error; err != nil {
			return err
		}
		if len(activity.Locations) == 0 {
			return nil
		}
		for i := range activity.Locations {
			activity.Locations[i].ID = 0
			activity.Locations[i].ActivityID = activity.ID
		}
		return tx.Create(&activity.Locations).Error
	})
}

func (d *Database) GetActivity(ctx context.Context, id uint) (*models.Activity, error) {
	var activity models.Activity
	err := d.db.WithContext(ctx).
		Preload("Locations", func(db *gorm.DB) *gorm.DB { return db.Order("timestamp ASC") }).
		Preload("User").
		First(&activity, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	if err := d.fillCounts(ctx, []*models.Activity{&activity}); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (d *Database) ListActivities(ctx context.Context, f ActivityFilter) ([]models.Activity, int64, error) {
	query := d.db.WithContext(ctx).Model(&models.Activity{}).Where("user_id = ?", f.UserID)
	if f.Type != "" {
		query = query.Where("type = ?", f.Type)
	}
	if f.StartDate != nil && f.EndDate != nil {
		query = query.Where("start_time >= ? AND start_time <= ?", f.StartDate.UTC(), f.EndDate.UTC())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var activities []models.Activity
	err := query.
		Order("start_time DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Preload("Locations", func(db *gorm.DB) *gorm.DB { return db.Order("timestamp ASC") }).
		Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}

	ptrs := make([]*models.Activity, len(activities))
	for i := range activities {
		ptrs[i] = &activities[i]
	}
	if err := d.fillCounts(ctx, ptrs); err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

// DeleteActivity удаляет активность вместе с точками, комментариями и лайками
func (d *Database) DeleteActivity(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", id).Delete(&models.Location{}).Error; err != nil {
			return err
		}
		if err := tx.Where("activity_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("activity_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Activity{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

type activityCount struct {
	ActivityID uint
	N          int64
}

func (d *Database) fillCounts(ctx context.Context, activities []*models.Activity) error {
	if len(activities) == 0 {
		return nil
	}
	ids := make([]uint, len(activities))
	for i, a := range activities {
		ids[i] = a.ID
	}

	var likes, comments []activityCount
	if err := d.db.WithContext(ctx).Model(&models.Like{}).
		Select("activity_id, count(*) AS n").
		Where("activity_id IN ?", ids).
		Group("activity_id").
		Scan(&likes).Error; err != nil {
		return err
	}
	if err := d.db.WithContext(ctx).Model(&models.Comment{}).
		Select("activity_id, count(*) AS n").
		Where("activity_id IN ?", ids).
		Group("activity_id").
		Scan(&comments).Error; err != nil {
		return err
	}

	likeBy := make(map[uint]int64, len(likes))
	for _, c := range likes {
		likeBy[c.ActivityID] = c.N
	}
	commentBy := make(map[uint]int64, len(comments))
	for _, c := range comments {
		commentBy[c.ActivityID] = c.N
	}
	for _, a := range activities {
		a.LikeCount = likeBy[a.ID]
		a.CommentCount = commentBy[a.ID]
	}
	return nil
}
