package entity

import (
	"time"

	"github.com/google/uuid"
)

type GoalType string

const (
	GoalWeightLoss GoalType = "weight_loss"
	GoalWeightGain GoalType = "weight_gain"
	GoalMaintain   GoalType = "maintain"
	GoalMuscleGain GoalType = "muscle_gain"
	GoalOther      GoalType = "other"
)

func (g GoalType) Valid() bool {
	switch g {
	case GoalWeightLoss, GoalWeightGain, GoalMaintain, GoalMuscleGain, GoalOther:
		return true
	}
	return false
}

type UserGoal struct {
	Base
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User         User       `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	GoalType     GoalType   `gorm:"size:100;not null" json:"goal_type"`
	TargetWeight *float64   `json:"target_weight"`
	TargetDate   *time.Time `gorm:"type:date" json:"target_date"`
	Description  string     `gorm:"type:text" json:"description"`
}
