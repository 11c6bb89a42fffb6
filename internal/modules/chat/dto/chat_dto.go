package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

type SendMessageRequest struct {
	Receiver uuid.UUID `json:"receiver" binding:"required"`
	Message  string    `json:"message" binding:"required,max=5000"`
}

// UpdateMessageRequest edits a message. Only the sender may change Message
// and only the receiver may change IsRead.
type UpdateMessageRequest struct {
	Message *string `json:"message" binding:"omitempty,min=1,max=5000"`
	IsRead  *bool   `json:"is_read"`
}

// ChatQuery narrows a listing to the conversation with one user.
type ChatQuery struct {
	commonDto.PageQuery
	With string `form:"with" binding:"omitempty,uuid"`
}

func (q ChatQuery) WithID() *uuid.UUID {
	id, err := uuid.Parse(q.With)
	if err != nil {
		return nil
	}
	return &id
}

type ChatMessageResponse struct {
	ID          uuid.UUID `json:"id"`
	Sender      uuid.UUID `json:"sender"`
	Receiver    uuid.UUID `json:"receiver"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	IsRead      bool      `json:"is_read"`
	Active      bool      `json:"active"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func ToChatMessageResponse(m entity.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:          m.ID,
		Sender:      m.SenderID,
		Receiver:    m.ReceiverID,
		Message:     m.Message,
		Timestamp:   m.Timestamp,
		IsRead:      m.IsRead,
		Active:      m.Active,
		CreatedDate: m.CreatedAt,
		UpdatedDate: m.UpdatedAt,
	}
}
