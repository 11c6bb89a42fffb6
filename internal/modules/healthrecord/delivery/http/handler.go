package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"anoa.com/healthmanage/internal/modules/healthrecord/dto"
	record "anoa.com/healthmanage/internal/modules/healthrecord/service"
	"anoa.com/healthmanage/pkg/apperror"
	commonDto "anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/response"
)

type HealthRecordHandler struct {
	service record.HealthRecordService
}

func NewHealthRecordHandler(service record.HealthRecordService) *HealthRecordHandler {
	return &HealthRecordHandler{service: service}
}

func (h *HealthRecordHandler) Create(c *gin.Context) {
	var req dto.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), response.OptionalActor(c), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToHealthRecordResponse(*r))
}

func (h *HealthRecordHandler) AddRecord(c *gin.Context) {
	var req dto.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	r, err := h.service.AddRecord(c.Request.Context(), response.OptionalActor(c), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToHealthRecordResponse(*r))
}

func (h *HealthRecordHandler) ViewRecord(c *gin.Context) {
	r, err := h.service.ViewRecord(c.Request.Context(), response.OptionalActor(c))
	if errors.Is(err, apperror.ErrNotFound) {
		c.JSON(http.StatusNotFound, commonDto.MessageResponse{Message: "No health record found."})
		return
	}
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToHealthRecordResponse(*r))
}

func (h *HealthRecordHandler) Stats(c *gin.Context) {
	var query dto.StatsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), response.OptionalActor(c), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *HealthRecordHandler) List(c *gin.Context) {
	var query dto.RecordQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), response.OptionalActor(c), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.Paginated(c, commonDto.Map(page, dto.ToHealthRecordResponse))
}

func (h *HealthRecordHandler) Get(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	r, err := h.service.Get(c.Request.Context(), response.OptionalActor(c), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToHealthRecordResponse(*r))
}

func (h *HealthRecordHandler) Update(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	r, err := h.service.Update(c.Request.Context(), response.OptionalActor(c), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToHealthRecordResponse(*r))
}

func (h *HealthRecordHandler) Delete(c *gin.Context) {
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
