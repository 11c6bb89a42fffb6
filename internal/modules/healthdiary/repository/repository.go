package repository

import (
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
)

type HealthDiaryRepository = repository.Repository[entity.HealthDiary]

func NewHealthDiaryRepository(db *gorm.DB) HealthDiaryRepository {
	return repository.NewStore[entity.HealthDiary](db)
}
