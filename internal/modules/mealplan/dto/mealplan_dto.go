package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type CreateMealPlanRequest struct {
	User           *uuid.UUID      `json:"user"`
	Name           string          `json:"name" binding:"required,max=255"`
	Date           *commonDto.Date `json:"date" binding:"required"`
	Description    string          `json:"description"`
	CaloriesIntake *float64        `json:"calories_intake" binding:"omitempty,gte=0"`
}

type UpdateMealPlanRequest struct {
	Name           *string         `json:"name" binding:"omitempty,min=1,max=255"`
	Date           *commonDto.Date `json:"date"`
	Description    *string         `json:"description"`
	CaloriesIntake *float64        `json:"calories_intake" binding:"omitempty,gte=0"`
}

type MealPlanQuery struct {
	commonDto.PageQuery
	Date *commonDto.Date `form:"date"`
}

type MealPlanResponse struct {
	ID             uuid.UUID      `json:"id"`
	User           uuid.UUID      `json:"user"`
	Name           string         `json:"name"`
	Date           commonDto.Date `json:"date"`
	Description    string         `json:"description"`
	CaloriesIntake *float64       `json:"calories_intake"`
	Active         bool           `json:"active"`
	CreatedDate    time.Time      `json:"created_date"`
	UpdatedDate    time.Time      `json:"updated_date"`
}

func ToMealPlanResponse(p entity.MealPlan) MealPlanResponse {
	return MealPlanResponse{
		ID:             p.ID,
		User:           p.UserID,
		Name:           p.Name,
		Date:           commonDto.NewDate(p.Date),
		Description:    p.Description,
		CaloriesIntake: p.CaloriesIntake,
		Active:         p.Active,
		CreatedDate:    p.CreatedAt,
		UpdatedDate:    p.UpdatedAt,
	}
}
