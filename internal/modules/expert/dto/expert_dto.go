package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
	catalogDto "anoa.com/healthmanage/internal/modules/catalog/dto"
	userDto "anoa.com/healthmanage/internal/modules/user/dto"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type CreateExpertProfileRequest struct {
	User              *uuid.UUID  `json:"user"`
	SpecializationIDs []uuid.UUID `json:"specialization_ids"`
	Bio               string      `json:"bio" binding:"max=5000"`
	ExperienceYears   *int        `json:"experience_years" binding:"omitempty,gte=0,lte=80"`
	ConsultationFee   *float64    `json:"consultation_fee" binding:"omitempty,gte=0"`
}

type UpdateExpertProfileRequest struct {
	SpecializationIDs *[]uuid.UUID `json:"specialization_ids"`
	Bio               *string      `json:"bio" binding:"omitempty,max=5000"`
	ExperienceYears   *int         `json:"experience_years" binding:"omitempty,gte=0,lte=80"`
	ConsultationFee   *float64     `json:"consultation_fee" binding:"omitempty,gte=0"`
}

type ExpertQuery struct {
	commonDto.PageQuery
	Specialization string `form:"specialization" binding:"omitempty,uuid"`
}

type ExpertProfileResponse struct {
	ID              uuid.UUID                           `json:"id"`
	User            userDto.UserResponse                `json:"user"`
	Specializations []catalogDto.SpecializationResponse `json:"specializations"`
	Bio             string                              `json:"bio"`
	ExperienceYears *int                                `json:"experience_years"`
	ConsultationFee *float64                            `json:"consultation_fee"`
	Active          bool                                `json:"active"`
	CreatedDate     time.Time                           `json:"created_date"`
	UpdatedDate     time.Time                           `json:"updated_date"`
}

func ToExpertProfileResponse(p entity.ExpertProfile) ExpertProfileResponse {
	specs := make([]catalogDto.SpecializationResponse, 0, len(p.Specializations))
	for _, s := range p.Specializations {
		specs = append(specs, catalogDto.ToSpecializationResponse(s))
	}
	return ExpertProfileResponse{
		ID:              p.ID,
		User:            userDto.ToUserResponse(p.User),
		Specializations: specs,
		Bio:             p.Bio,
		ExperienceYears: p.ExperienceYears,
		ConsultationFee: p.ConsultationFee,
		Active:          p.Active,
		CreatedDate:     p.CreatedAt,
		UpdatedDate:     p.UpdatedAt,
	}
}
