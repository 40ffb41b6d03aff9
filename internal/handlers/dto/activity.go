package dto

import (
	"errors"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/thereayou/rythmrun/internal/models"
	"github.com/thereayou/rythmrun/internal/services"
)

type LocationRequest struct {
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Altitude  *float64  `json:"altitude"`
	Timestamp time.Time `json:"timestamp"`
	Accuracy  *float64  `json:"accuracy"`
	Speed     *float64  `json:"speed"`
}

func (r LocationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Latitude, validation.NotNil, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&r.Longitude, validation.NotNil, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&r.Timestamp, validation.Required),
		validation.Field(&r.Accuracy, validation.Min(0.0)),
		validation.Field(&r.Speed, validation.Min(0.0)),
	)
}

func (r LocationRequest) Model() models.Location {
	loc := models.Location{
		Altitude:  r.Altitude,
		Timestamp: r.Timestamp,
		Accuracy:  r.Accuracy,
		Speed:     r.Speed,
	}
	if r.Latitude != nil {
		loc.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		loc.Longitude = *r.Longitude
	}
	return loc
}

type CreateActivityRequest struct {
	Type        string            `json:"type"`
	StartTime   time.Time         `json:"startTime"`
	EndTime     time.Time         `json:"endTime"`
	Distance    float64           `json:"distance"`
	Duration    float64           `json:"duration"`
	AvgSpeed    float64           `json:"avgSpeed"`
	MaxSpeed    float64           `json:"maxSpeed"`
	Calories    *float64          `json:"calories"`
	Description *string           `json:"description"`
	IsPublic    bool              `json:"isPublic"`
	Locations   []LocationRequest `json:"locations"`
}

func (r CreateActivityRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&r.StartTime, validation.Required),
		validation.Field(&r.EndTime, validation.Required, validation.By(notBefore(r.StartTime))),
		validation.Field(&r.Distance, validation.Min(0.0)),
		validation.Field(&r.Duration, validation.Min(0.0)),
		validation.Field(&r.AvgSpeed, validation.Min(0.0)),
		validation.Field(&r.MaxSpeed, validation.Min(0.0)),
		validation.Field(&r.Calories, validation.Min(0.0)),
		validation.Field(&r.Description, validation.RuneLength(0, 2000)),
		validation.Field(&r.Locations, validation.NotNil),
	)
	if err != nil {
		return err
	}
	return validateLocations(r.Locations)
}

func (r CreateActivityRequest) Input() services.ActivityInput {
	return services.ActivityInput{
		Type:        r.Type,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Distance:    r.Distance,
		Duration:    r.Duration,
		AvgSpeed:    r.AvgSpeed,
		MaxSpeed:    r.MaxSpeed,
		Calories:    r.Calories,
		Description: r.Description,
		IsPublic:    r.IsPublic,
		Locations:   locationModels(r.Locations),
	}
}

// UpdateActivityRequest отсутствующее поле не меняется; locations заменяются целиком
type UpdateActivityRequest struct {
	Type        *string            `json:"type"`
	StartTime   *time.Time         `json:"startTime"`
	EndTime     *time.Time         `json:"endTime"`
	Distance    *float64           `json:"distance"`
	Duration    *float64           `json:"duration"`
	AvgSpeed    *float64           `json:"avgSpeed"`
	MaxSpeed    *float64           `json:"maxSpeed"`
	Calories    *float64           `json:"calories"`
	Description *string            `json:"description"`
	IsPublic    *bool              `json:"isPublic"`
	Locations   *[]LocationRequest `json:"locations"`
}

func (r UpdateActivityRequest) Validate() error {
	var endRules []validation.Rule
	if r.StartTime != nil {
		endRules = append(endRules, validation.By(notBefore(*r.StartTime)))
	}
	var locations []LocationRequest
	if r.Locations != nil {
		locations = *r.Locations
	}

	err := validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.RuneLength(1, 50)),
		validation.Field(&r.EndTime, endRules...),
		validation.Field(&r.Distance, validation.Min(0.0)),
		validation.Field(&r.Duration, validation.Min(0.0)),
		validation.Field(&r.AvgSpeed, validation.Min(0.0)),
		validation.Field(&r.MaxSpeed, validation.Min(0.0)),
		validation.Field(&r.Calories, validation.Min(0.0)),
		validation.Field(&r.Description, validation.RuneLength(0, 2000)),
	)
	if err != nil {
		return err
	}
	return validateLocations(locations)
}

func (r UpdateActivityRequest) Patch() services.ActivityPatch {
	p := services.ActivityPatch{
		Type:        r.Type,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Distance:    r.Distance,
		Duration:    r.Duration,
		AvgSpeed:    r.AvgSpeed,
		MaxSpeed:    r.MaxSpeed,
		Calories:    r.Calories,
		Description: r.Description,
		IsPublic:    r.IsPublic,
	}
	if r.Locations != nil {
		locs := locationModels(*r.Locations)
		p.Locations = &locs
	}
	return p
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ActivityListQuery даты принимаются в RFC3339 или как YYYY-MM-DD
type ActivityListQuery struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Type      string `form:"type"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

func (q ActivityListQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Page, validation.Min(0)),
		validation.Field(&q.Limit, validation.Min(0)),
		validation.Field(&q.Type, validation.RuneLength(0, 50)),
		validation.Field(&q.StartDate, validation.By(isDate)),
		validation.Field(&q.EndDate, validation.By(isDate)),
	)
}

func (q ActivityListQuery) Query() services.ActivityQuery {
	return services.ActivityQuery{
		Page:      q.Page,
		Limit:     q.Limit,
		Type:      q.Type,
		StartDate: parseDate(q.StartDate),
		EndDate:   parseDate(q.EndDate),
	}
}

func parseDate(s string) *time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func isDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" || parseDate(s) != nil {
		return nil
	}
	return errors.New("must be a date (YYYY-MM-DD or RFC3339)")
}

func locationModels(in []LocationRequest) []models.Location {
	out := make([]models.Location, len(in))
	for i, l := range in {
		out[i] = l.Model()
	}
	return out
}

func validateLocations(locations []LocationRequest) error {
	errs := validation.Errors{}
	for i, l := range locations {
		if err := l.Validate(); err != nil {
			errs[locationKey(i)] = err
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func locationKey(i int) string {
	return "locations[" + strconv.Itoa(i) + "]"
}

func notBefore(start time.Time) validation.RuleFunc {
	return func(value interface{}) error {
		var end time.Time
		switch v := value.(type) {
		case time.Time:
			end = v
		case *time.Time:
			if v == nil {
				return nil
			}
			end = *v
		}
		if !end.IsZero() && !start.IsZero() && end.Before(start) {
			return errors.New("must not be before startTime")
		}
		return nil
	}
}
