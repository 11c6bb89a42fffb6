package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type CreateDiaryRequest struct {
	Date    *commonDto.Date `json:"date"`
	Content string          `json:"content" binding:"required"`
	Feeling *string         `json:"feeling" binding:"omitempty,max=255"`
}

type UpdateDiaryRequest struct {
	Date    *commonDto.Date `json:"date"`
	Content *string         `json:"content" binding:"omitempty,min=1"`
	Feeling *string         `json:"feeling" binding:"omitempty,max=255"`
}

type DiaryQuery struct {
	commonDto.PageQuery
	From *commonDto.Date `form:"from"`
	To   *commonDto.Date `form:"to"`
}

type DiaryResponse struct {
	ID          uuid.UUID      `json:"id"`
	User        uuid.UUID      `json:"user"`
	Date        commonDto.Date `json:"date"`
	Content     string         `json:"content"`
	Feeling     *string        `json:"feeling"`
	Active      bool           `json:"active"`
	CreatedDate time.Time      `json:"created_date"`
	UpdatedDate time.Time      `json:"updated_date"`
}

func ToDiaryResponse(d entity.HealthDiary) DiaryResponse {
	return DiaryResponse{
		ID:          d.ID,
		User:        d.UserID,
		Date:        commonDto.NewDate(d.Date),
		Content:     d.Content,
		Feeling:     d.Feeling,
		Active:      d.Active,
		CreatedDate: d.CreatedAt,
		UpdatedDate: d.UpdatedAt,
	}
}
