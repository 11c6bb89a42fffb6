package repository

import (
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
)

type GoalRepository = repository.Repository[entity.UserGoal]

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return repository.NewStore[entity.UserGoal](db)
}
