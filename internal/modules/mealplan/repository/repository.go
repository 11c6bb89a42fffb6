package repository

import (
	"gorm.io/gorm"

	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/internal/repository"
)

type MealPlanRepository = repository.Repository[entity.MealPlan]

func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return repository.NewStore[entity.MealPlan](db)
}
