package services

import (
	"context"
	"errors"

	"github.com/thereayou/rythmrun/internal/database"
	"github.com/thereayou/rythmrun/internal/models"
)

// CanAccess владелец или публичная активность
func CanAccess(callerID uint, activity *models.Activity) bool {
	if activity == nil {
		return false
	}
	return activity.OwnedBy(callerID) || activity.IsPublic
}

// Gate проверяет доступ к активности при каждом вызове, без кэша
type Gate struct {
	activities ActivityStore
}

func NewGate(activities ActivityStore) *Gate {
	return &Gate{activities: activities}
}

// Load отсутствующая и чужая приватная активность неразличимы: ErrNotFound
func (g *Gate) Load(ctx context.Context, callerID, activityID uint) (*models.Activity, error) {
	activity, err := g.activities.GetActivity(ctx, activityID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanAccess(callerID, activity) {
		return nil, ErrNotFound
	}
	return activity, nil
}

// LoadOwned то же, но только для владельца
func (g *Gate) LoadOwned(ctx context.Context, callerID, activityID uint) (*models.Activity, error) {
	activity, err := g.Load(ctx, callerID, activityID)
	if err != nil {
		return nil, err
	}
	if !activity.OwnedBy(callerID) {
		return nil, ErrNotFound
	}
	return activity, nil
}
