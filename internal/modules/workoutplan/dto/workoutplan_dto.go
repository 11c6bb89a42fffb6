package dto

import (
	"time"

	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/entity"
	commonDto "anoa.com/healthmanage/pkg/dto"
)

// CreateWorkoutPlanRequest is shared by POST / and POST /create-plan/.
// User is honoured for admins on the plain create only.
type CreateWorkoutPlanRequest struct {
	User        *uuid.UUID      `json:"user"`
	Name        string          `json:"name" binding:"required,max=255"`
	Date        *commonDto.Date `json:"date" binding:"required"`
	ActivityIDs []uuid.UUID     `json:"activity_ids"`
	Description string          `json:"description"`
	Sets        *int            `json:"sets" binding:"omitempty,gte=0"`
	Reps        *int            `json:"reps" binding:"omitempty,gte=0"`
}

type UpdateWorkoutPlanRequest struct {
	Name        *string         `json:"name" binding:"omitempty,min=1,max=255"`
	Date        *commonDto.Date `json:"date"`
	ActivityIDs *[]uuid.UUID    `json:"activity_ids"`
	Description *string         `json:"description"`
	Sets        *int            `json:"sets" binding:"omitempty,gte=0"`
	Reps        *int            `json:"reps" binding:"omitempty,gte=0"`
}

// PlanQuery filters plan listings by day.
type PlanQuery struct {
	commonDto.PageQuery
	Date *commonDto.Date `form:"date"`
}

type ActivitySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type WorkoutPlanResponse struct {
	ID          uuid.UUID         `json:"id"`
	User        uuid.UUID         `json:"user"`
	Name        string            `json:"name"`
	Date        commonDto.Date    `json:"date"`
	Activities  []ActivitySummary `json:"activities"`
	Description string            `json:"description"`
	Sets        *int              `json:"sets"`
	Reps        *int              `json:"reps"`
	Active      bool              `json:"active"`
	CreatedDate time.Time         `json:"created_date"`
	UpdatedDate time.Time         `json:"updated_date"`
}

func ToWorkoutPlanResponse(p entity.WorkoutPlan) WorkoutPlanResponse {
	activities := make([]ActivitySummary, 0, len(p.Activities))
	for _, a := range p.Activities {
		activities = append(activities, ActivitySummary{ID: a.ID, Name: a.Name})
	}
	return WorkoutPlanResponse{
		ID:          p.ID,
		User:        p.UserID,
		Name:        p.Name,
		Date:        commonDto.NewDate(p.Date),
		Activities:  activities,
		Description: p.Description,
		Sets:        p.Sets,
		Reps:        p.Reps,
		Active:      p.Active,
		CreatedDate: p.CreatedAt,
		UpdatedDate: p.UpdatedAt,
	}
}
