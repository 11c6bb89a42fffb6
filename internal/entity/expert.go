package entity

import "github.com/google/uuid"

type ExpertProfile struct {
	Base
	UserID          uuid.UUID              `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User            User                   `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Specializations []ExpertSpecialization `gorm:"many2many:expert_profile_specializations;" json:"specializations"`
	Bio             string                 `gorm:"type:text" json:"bio"`
	ExperienceYears *int                   `json:"experience_years"`
	ConsultationFee *float64               `json:"consultation_fee"`
}
