package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"anoa.com/healthmanage/internal/modules/expert/dto"
	expert "anoa.com/healthmanage/internal/modules/expert/service"
	commonDto "anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/response"
)

type ExpertProfileHandler struct {
	service expert.ExpertProfileService
}

func NewExpertProfileHandler(service expert.ExpertProfileService) *ExpertProfileHandler {
	return &ExpertProfileHandler{service: service}
}

func (h *ExpertProfileHandler) Create(c *gin.Context) {
	var req dto.CreateExpertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), response.OptionalActor(c), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpertProfileResponse(*p))
}

func (h *ExpertProfileHandler) List(c *gin.Context) {
	var query dto.ExpertQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), response.OptionalActor(c), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.Paginated(c, commonDto.Map(page, dto.ToExpertProfileResponse))
}

func (h *ExpertProfileHandler) Get(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	p, err := h.service.Get(c.Request.Context(), response.OptionalActor(c), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpertProfileResponse(*p))
}

func (h *ExpertProfileHandler) Update(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateExpertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), response.OptionalActor(c), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpertProfileResponse(*p))
}

func (h *ExpertProfileHandler) Delete(c *gin.Context) {
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
