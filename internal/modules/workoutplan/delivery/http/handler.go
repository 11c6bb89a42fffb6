package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"anoa.com/healthmanage/internal/modules/workoutplan/dto"
	workout "anoa.com/healthmanage/internal/modules/workoutplan/service"
	commonDto "anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/response"
)

type WorkoutPlanHandler struct {
	service workout.WorkoutPlanService
}

func NewWorkoutPlanHandler(service workout.WorkoutPlanService) *WorkoutPlanHandler {
	return &WorkoutPlanHandler{service: service}
}

func (h *WorkoutPlanHandler) Create(c *gin.Context) {
	var req dto.CreateWorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	plan, err := h.service.Create(c.Request.Context(), response.OptionalActor(c), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkoutPlanResponse(*plan))
}

func (h *WorkoutPlanHandler) CreatePlan(c *gin.Context) {
	var req dto.CreateWorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	plan, err := h.service.CreatePlan(c.Request.Context(), response.OptionalActor(c), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkoutPlanResponse(*plan))
}

func (h *WorkoutPlanHandler) List(c *gin.Context) {
	var query dto.PlanQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), response.OptionalActor(c), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.Paginated(c, commonDto.Map(page, dto.ToWorkoutPlanResponse))
}

func (h *WorkoutPlanHandler) Get(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	plan, err := h.service.Get(c.Request.Context(), response.OptionalActor(c), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkoutPlanResponse(*plan))
}

func (h *WorkoutPlanHandler) Update(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateWorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	plan, err := h.service.Update(c.Request.Context(), response.OptionalActor(c), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkoutPlanResponse(*plan))
}

func (h *WorkoutPlanHandler) Delete(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), response.OptionalActor(c), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
