package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
)

type CreateActivityRequest struct {
	Name           string   `json:"name" binding:"required,max=255"`
	Description    string   `json:"description"`
	CaloriesBurned *float64 `json:"calories_burned" binding:"omitempty,gte=0"`
}

type UpdateActivityRequest struct {
	Name           *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Description    *string  `json:"description"`
	CaloriesBurned *float64 `json:"calories_burned" binding:"omitempty,gte=0"`
}

type SearchQuery struct {
	Q string `form:"q" binding:"required,max=100"`
}

type ActivityResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CaloriesBurned *float64  `json:"calories_burned"`
	Image          *string   `json:"image"`
	CreatedDate    time.Time `json:"created_date"`
	UpdatedDate    time.Time `json:"updated_date"`
}

func ToActivityResponse(a entity.Activity) ActivityResponse {
	return ActivityResponse{
		ID:             a.ID,
		Name:           a.Name,
		Description:    a.Description,
		CaloriesBurned: a.CaloriesBurned,
		Image:          a.ImageURL,
		CreatedDate:    a.CreatedAt,
		UpdatedDate:    a.UpdatedAt,
	}
}
