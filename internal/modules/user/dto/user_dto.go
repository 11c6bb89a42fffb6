package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type RegisterRequest struct {
	Username        string          `json:"username" binding:"required,max=150"`
	Email           string          `json:"email" binding:"required,email,max=255"`
	Password        string          `json:"password" binding:"required,min=8,max=128"`
	ConfirmPassword string          `json:"confirm_password" binding:"omitempty,eqfield=Password"`
	FirstName       string          `json:"first_name" binding:"max=150"`
	LastName        string          `json:"last_name" binding:"max=150"`
	Birthday        *commonDto.Date `json:"birthday"`
	Role            *entity.Role    `json:"role" binding:"omitempty,role"`
}

// UpdateUserRequest is a partial update. Role and Active are admin-only.
type UpdateUserRequest struct {
	Username  *string         `json:"username" binding:"omitempty,min=1,max=150"`
	Email     *string         `json:"email" binding:"omitempty,email,max=255"`
	FirstName *string         `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string         `json:"last_name" binding:"omitempty,max=150"`
	Birthday  *commonDto.Date `json:"birthday"`
	Role      *entity.Role    `json:"role" binding:"omitempty,role"`
	Active    *bool           `json:"active"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// LoginInput accepts either the username or the email in Login.
type LoginInput struct {
	Login    string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	ExpiresIn   int64         `json:"expires_in"`
	User        *UserResponse `json:"user"`
}

type UserResponse struct {
	ID          uuid.UUID       `json:"id"`
	Username    string          `json:"username"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Birthday    *commonDto.Date `json:"birthday"`
	AvatarURL   *string         `json:"avatar"`
	Role        entity.Role     `json:"role"`
	Active      bool            `json:"active"`
	CreatedDate time.Time       `json:"created_date"`
	UpdatedDate time.Time       `json:"updated_date"`
}

func ToUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Birthday:    commonDto.DatePtr(u.Birthday),
		AvatarURL:   u.AvatarURL,
		Role:        u.Role,
		Active:      u.Active,
		CreatedDate: u.CreatedAt,
		UpdatedDate: u.UpdatedAt,
	}
}
