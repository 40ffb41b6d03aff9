package services

import (
	"context"
	"errors"
	"time"

	"github.com/thereayou/rythmrun/internal/database"
	"github.com/thereayou/rythmrun/internal/logging"
	"github.com/thereayou/rythmrun/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

type ActivityInput struct {
	Type        string
	StartTime   time.Time
	EndTime     time.Time
	Distance    float64
	Duration    float64
	AvgSpeed    float64
	MaxSpeed    float64
	Calories    *float64
	Description *string
	IsPublic    bool
	Locations   []models.Location
}

// ActivityPatch nil поле не меняется; Locations != nil заменяет все точки
type ActivityPatch struct {
	Type        *string
	StartTime   *time.Time
	EndTime     *time.Time
	Distance    *float64
	Duration    *float64
	AvgSpeed    *float64
	MaxSpeed    *float64
	Calories    *float64
	Description *string
	IsPublic    *bool
	Locations   *[]models.Location
}

type ActivityQuery struct {
	Page      int
	Limit     int
	Type      string
	StartDate *time.Time
	EndDate   *time.Time
}

type Pagination struct {
	Total           int64 `json:"total"`
	TotalPages      int   `json:"totalPages"`
	CurrentPage     int   `json:"currentPage"`
	Limit           int   `json:"limit"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

type ActivityPage struct {
	Activities []models.Activity `json:"activities"`
	Pagination Pagination        `json:"pagination"`
}

type ActivityService struct {
	activities ActivityStore
	gate       *Gate
	log        logging.Logger
}

func NewActivityService(activities ActivityStore, gate *Gate, log logging.Logger) *ActivityService {
	return &ActivityService{activities: activities, gate: gate, log: log.With("service", "activities")}
}

func (s *ActivityService) Create(ctx context.Context, userID uint, in ActivityInput) (*models.Activity, error) {
	activity := &models.Activity{
		UserID:      userID,
		Type:        in.Type,
		StartTime:   in.StartTime.UTC(),
		EndTime:     in.EndTime.UTC(),
		Distance:    in.Distance,
		Duration:    in.Duration,
		AvgSpeed:    in.AvgSpeed,
		MaxSpeed:    in.MaxSpeed,
		Calories:    in.Calories,
		Description: in.Description,
		IsPublic:    in.IsPublic,
		Locations:   normalizeLocations(in.Locations),
	}
	if err := s.activities.CreateActivity(ctx, activity); err != nil {
		return nil, err
	}
	return s.activities.GetActivity(ctx, activity.ID)
}

func (s *ActivityService) Get(ctx context.Context, callerID, activityID uint) (*models.Activity, error) {
	return s.gate.Load(ctx, callerID, activityID)
}

func (s *ActivityService) List(ctx context.Context, userID uint, q ActivityQuery) (*ActivityPage, error) {
	page, limit := normalizePage(q.Page, q.Limit)

	filter := database.ActivityFilter{
		UserID: userID,
		Type:   q.Type,
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
	// диапазон дат применяется только целиком
	if q.StartDate != nil && q.EndDate != nil {
		filter.StartDate, filter.EndDate = q.StartDate, q.EndDate
	}

	items, total, err := s.activities.ListActivities(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Activity{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ActivityPage{
		Activities: items,
		Pagination: Pagination{
			Total:           total,
			TotalPages:      totalPages,
			CurrentPage:     page,
			Limit:           limit,
			HasNextPage:     page < totalPages,
			HasPreviousPage: page > 1,
		},
	}, nil
}

// Update только владелец; чужая активность выглядит как отсутствующая
func (s *ActivityService) Update(ctx context.Context, callerID, activityID uint, p ActivityPatch) (*models.Activity, error) {
	activity, err := s.gate.LoadOwned(ctx, callerID, activityID)
	if err != nil {
		return nil, err
	}
	activity.User = nil

	if p.Type != nil {
		activity.Type = *p.Type
	}
	if p.StartTime != nil {
		activity.StartTime = p.StartTime.UTC()
	}
	if p.EndTime != nil {
		activity.EndTime = p.EndTime.UTC()
	}
	if p.Distance != nil {
		activity.Distance = *p.Distance
	}
	if p.Duration != nil {
		activity.Duration = *p.Duration
	}
	if p.AvgSpeed != nil {
		activity.AvgSpeed = *p.AvgSpeed
	}
	if p.MaxSpeed != nil {
		activity.MaxSpeed = *p.MaxSpeed
	}
	if p.Calories != nil {
		activity.Calories = p.Calories
	}
	if p.Description != nil {
		activity.Description = p.Description
	}
	if p.IsPublic != nil {
		activity.IsPublic = *p.IsPublic
	}
	replace := p.Locations != nil
	if replace {
		activity.Locations = normalizeLocations(*p.Locations)
	}

	if err := s.activities.UpdateActivity(ctx, activity, replace); err != nil {
		return nil, err
	}
	return s.activities.GetActivity(ctx, activity.ID)
}

func (s *ActivityService) Delete(ctx context.Context, callerID, activityID uint) error {
	if _, err := s.gate.LoadOwned(ctx, callerID, activityID); err != nil {
		return err
	}
	if err := s.activities.DeleteActivity(ctx, activityID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Info(ctx, "activity deleted", "activity_id", activityID, "user_id", callerID)
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func normalizeLocations(in []models.Location) []models.Location {
	out := make([]models.Location, len(in))
	for i, l := range in {
		l.ID = 0
		l.Timestamp = l.Timestamp.UTC()
		out[i] = l
	}
	return out
}
