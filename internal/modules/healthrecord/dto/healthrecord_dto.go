package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

// RecordRequest creates a record. Date defaults to today in UTC.
type RecordRequest struct {
	User        *uuid.UUID      `json:"user"`
	Date        *commonDto.Date `json:"date"`
	WaterIntake *float64        `json:"water_intake" binding:"omitempty,gte=0"`
	Steps       *int            `json:"steps" binding:"omitempty,gte=0"`
	HeartRate   *int            `json:"heart_rate" binding:"omitempty,gte=0,lte=300"`
	Height      *float64        `json:"height" binding:"omitempty,gte=0,lte=3"`
	Weight      *float64        `json:"weight" binding:"omitempty,gte=0,lte=700"`
	SleepTime   *float64        `json:"sleep_time" binding:"omitempty,gte=0,lte=24"`
}

type UpdateRecordRequest struct {
	Date        *commonDto.Date `json:"date"`
	WaterIntake *float64        `json:"water_intake" binding:"omitempty,gte=0"`
	Steps       *int            `json:"steps" binding:"omitempty,gte=0"`
	HeartRate   *int            `json:"heart_rate" binding:"omitempty,gte=0,lte=300"`
	Height      *float64        `json:"height" binding:"omitempty,gte=0,lte=3"`
	Weight      *float64        `json:"weight" binding:"omitempty,gte=0,lte=700"`
	SleepTime   *float64        `json:"sleep_time" binding:"omitempty,gte=0,lte=24"`
}

type RecordQuery struct {
	commonDto.PageQuery
	From *commonDto.Date `form:"from"`
	To   *commonDto.Date `form:"to"`
}

// StatsQuery selects the window of /stats/. User is honoured for admins.
type StatsQuery struct {
	From *commonDto.Date `form:"from"`
	To   *commonDto.Date `form:"to"`
	User string          `form:"user" binding:"omitempty,uuid"`
}

// UserID returns the requested user, or nil when none was given.
func (q StatsQuery) UserID() *uuid.UUID {
	id, err := uuid.Parse(q.User)
	if err != nil {
		return nil
	}
	return &id
}

type HealthRecordResponse struct {
	ID          uuid.UUID      `json:"id"`
	User        uuid.UUID      `json:"user"`
	Date        commonDto.Date `json:"date"`
	WaterIntake *float64       `json:"water_intake"`
	Steps       *int           `json:"steps"`
	HeartRate   *int           `json:"heart_rate"`
	Height      *float64       `json:"height"`
	Weight      *float64       `json:"weight"`
	SleepTime   *float64       `json:"sleep_time"`
	BMI         *float64       `json:"bmi"`
	Active      bool           `json:"active"`
	CreatedDate time.Time      `json:"created_date"`
	UpdatedDate time.Time      `json:"updated_date"`
}

func ToHealthRecordResponse(r entity.HealthRecord) HealthRecordResponse {
	return HealthRecordResponse{
		ID:          r.ID,
		User:        r.UserID,
		Date:        commonDto.NewDate(r.Date),
		WaterIntake: r.WaterIntake,
		Steps:       r.Steps,
		HeartRate:   r.HeartRate,
		Height:      r.Height,
		Weight:      r.Weight,
		SleepTime:   r.SleepTime,
		BMI:         r.BMI(),
		Active:      r.Active,
		CreatedDate: r.CreatedAt,
		UpdatedDate: r.UpdatedAt,
	}
}

type StatsResponse struct {
	User               uuid.UUID       `json:"user"`
	From               *commonDto.Date `json:"from"`
	To                 *commonDto.Date `json:"to"`
	Count              int64           `json:"count"`
	AverageWeight      *float64        `json:"average_weight"`
	AverageSteps       *float64        `json:"average_steps"`
	AverageHeartRate   *float64        `json:"average_heart_rate"`
	AverageSleepTime   *float64        `json:"average_sleep_time"`
	AverageWaterIntake *float64        `json:"average_water_intake"`
	LatestBMI          *float64        `json:"latest_bmi"`
}
