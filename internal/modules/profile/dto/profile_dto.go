package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
	userDto "anoa.com/healthmanage/internal/modules/user/dto"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

// RegisterProfileRequest creates the account and the profile together.
// The role comes from the endpoint, not the payload.
type RegisterProfileRequest struct {
	Username        string          `json:"username" binding:"required,max=150"`
	Email           string          `json:"email" binding:"required,email,max=255"`
	Password        string          `json:"password" binding:"required,min=8,max=128"`
	ConfirmPassword string          `json:"confirm_password" binding:"omitempty,eqfield=Password"`
	FirstName       string          `json:"first_name" binding:"max=150"`
	LastName        string          `json:"last_name" binding:"max=150"`
	Birthday        *commonDto.Date `json:"birthday"`
}

func (r RegisterProfileRequest) Account() userDto.RegisterRequest {
	return userDto.RegisterRequest{
		Username:        r.Username,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Birthday:        r.Birthday,
	}
}

type UpdateProfileRequest struct {
	Username  *string         `json:"username" binding:"omitempty,min=1,max=150"`
	Email     *string         `json:"email" binding:"omitempty,email,max=255"`
	FirstName *string         `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string         `json:"last_name" binding:"omitempty,max=150"`
	Birthday  *commonDto.Date `json:"birthday"`
}

type ProfileResponse struct {
	ID          uuid.UUID            `json:"id"`
	User        userDto.UserResponse `json:"user"`
	Active      bool                 `json:"active"`
	CreatedDate time.Time            `json:"created_date"`
	UpdatedDate time.Time            `json:"updated_date"`
}

func ToProfileResponse(p *entity.RoleProfile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		User:        userDto.ToUserResponse(p.User),
		Active:      p.Active,
		CreatedDate: p.CreatedAt,
		UpdatedDate: p.UpdatedAt,
	}
}
