package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// HealthRecord holds one day of measurements. BMI is derived, never stored.
type HealthRecord struct {
	Base
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_health_records_user_date,priority:1" json:"user_id"`
	User        User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:idx_health_records_user_date,priority:2" json:"date"`
	WaterIntake *float64  `json:"water_intake"`
	Steps       *int      `json:"steps"`
	HeartRate   *int      `json:"heart_rate"`
	Height      *float64  `json:"height"`
	Weight      *float64  `json:"weight"`
	SleepTime   *float64  `json:"sleep_time"`
}

// BMI is weight / height², rounded to two decimals. Nil when a measurement is missing.
func (r *HealthRecord) BMI() *float64 {
	return ComputeBMI(r.Height, r.Weight)
}

func ComputeBMI(height, weight *float64) *float64 {
	if height == nil || weight == nil || *height <= 0 || *weight <= 0 {
		return nil
	}
	bmi := math.Round(*weight/(*height**height)*100) / 100
	return &bmi
}

type HealthDiary struct {
	Base
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_health_diaries_user_date,priority:1" json:"user_id"`
	User    User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:idx_health_diaries_user_date,priority:2" json:"date"`
	Content string    `gorm:"type:text;not null" json:"content"`
	Feeling *string   `gorm:"size:255" json:"feeling"`
}
