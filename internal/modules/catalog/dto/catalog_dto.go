package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
)

type EntryRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
}

type UpdateEntryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

type TagResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func ToTagResponse(t entity.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, CreatedDate: t.CreatedAt, UpdatedDate: t.UpdatedAt}
}

type SpecializationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func ToSpecializationResponse(s entity.ExpertSpecialization) SpecializationResponse {
	return SpecializationResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedDate: s.CreatedAt,
		UpdatedDate: s.UpdatedAt,
	}
}
