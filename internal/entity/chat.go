package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is a directed message. At most one message per
// (sender, receiver, timestamp) can exist.
type ChatMessage struct {
	Base
	SenderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_messages_pair_ts,priority:1" json:"sender_id"`
	Sender     User      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_chat_messages_pair_ts,priority:2" json:"receiver_id"`
	Receiver   User      `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"receiver"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Timestamp  time.Time `gorm:"not null;uniqueIndex:idx_chat_messages_pair_ts,priority:3" json:"timestamp"`
	IsRead     bool      `gorm:"not null" json:"is_read"`
}
