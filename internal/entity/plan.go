package entity

import (
	"time"

	"github.com/google/uuid"
)

type WorkoutPlan struct {
	Base
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User       `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Date        time.Time  `gorm:"type:date;not null" json:"date"`
	Activities  []Activity `gorm:"many2many:workout_plan_activities;" json:"activities"`
	Description string     `gorm:"type:text" json:"description"`
	Sets        *int       `json:"sets"`
	Reps        *int       `json:"reps"`
}

type MealPlan struct {
	Base
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User           User      `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Date           time.Time `gorm:"type:date;not null" json:"date"`
	Description    string    `gorm:"type:text" json:"description"`
	CaloriesIntake *float64  `json:"calories_intake"`
}
