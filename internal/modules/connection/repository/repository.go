package repository

import (
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
)

type ConnectionRepository = repository.Repository[entity.UserConnection]

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return repository.NewStore[entity.UserConnection](db)
}
