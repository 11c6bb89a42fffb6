package repository

import (
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
)

type ChatMessageRepository = repository.Repository[entity.ChatMessage]

func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return repository.NewStore[entity.ChatMessage](db)
}
