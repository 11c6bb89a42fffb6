package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type CreateGoalRequest struct {
	User         *uuid.UUID      `json:"user"`
	GoalType     entity.GoalType `json:"goal_type" binding:"required,goal_type"`
	TargetWeight *float64        `json:"target_weight" binding:"omitempty,gt=0,lte=700"`
	TargetDate   *commonDto.Date `json:"target_date"`
	Description  string          `json:"description"`
}

type UpdateGoalRequest struct {
	GoalType     *entity.GoalType `json:"goal_type" binding:"omitempty,goal_type"`
	TargetWeight *float64         `json:"target_weight" binding:"omitempty,gt=0,lte=700"`
	TargetDate   *commonDto.Date  `json:"target_date"`
	Description  *string          `json:"description"`
}

type GoalQuery struct {
	commonDto.PageQuery
	GoalType entity.GoalType `form:"goal_type" binding:"omitempty,goal_type"`
}

type GoalResponse struct {
	ID           uuid.UUID       `json:"id"`
	User         uuid.UUID       `json:"user"`
	GoalType     entity.GoalType `json:"goal_type"`
	TargetWeight *float64        `json:"target_weight"`
	TargetDate   *commonDto.Date `json:"target_date"`
	Description  string          `json:"description"`
	Active       bool            `json:"active"`
	CreatedDate  time.Time       `json:"created_date"`
	UpdatedDate  time.Time       `json:"updated_date"`
}

func ToGoalResponse(g entity.UserGoal) GoalResponse {
	return GoalResponse{
		ID:           g.ID,
		User:         g.UserID,
		GoalType:     g.GoalType,
		TargetWeight: g.TargetWeight,
		TargetDate:   commonDto.DatePtr(g.TargetDate),
		Description:  g.Description,
		Active:       g.Active,
		CreatedDate:  g.CreatedAt,
		UpdatedDate:  g.UpdatedAt,
	}
}
