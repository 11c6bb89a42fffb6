package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

// CreateConnectionRequest asks Expert to connect. User is honoured for admins.
type CreateConnectionRequest struct {
	User   *uuid.UUID `json:"user"`
	Expert uuid.UUID  `json:"expert" binding:"required"`
}

type UpdateConnectionRequest struct {
	Status entity.ConnectionStatus `json:"status" binding:"required,connection_status"`
}

type ConnectionQuery struct {
	commonDto.PageQuery
	Status entity.ConnectionStatus `form:"status" binding:"omitempty,connection_status"`
}

type ConnectionResponse struct {
	ID          uuid.UUID               `json:"id"`
	User        uuid.UUID               `json:"user"`
	Expert      uuid.UUID               `json:"expert"`
	Status      entity.ConnectionStatus `json:"status"`
	Active      bool                    `json:"active"`
	CreatedDate time.Time               `json:"created_date"`
	UpdatedDate time.Time               `json:"updated_date"`
}

func ToConnectionResponse(c entity.UserConnection) ConnectionResponse {
	return ConnectionResponse{
		ID:          c.ID,
		User:        c.UserID,
		Expert:      c.ExpertID,
		Status:      c.Status,
		Active:      c.Active,
		CreatedDate: c.CreatedAt,
		UpdatedDate: c.UpdatedAt,
	}
}
