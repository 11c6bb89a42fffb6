package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"anoa.com/healthmanage/internal/modules/activity/dto"
	activity "anoa.com/healthmanage/internal/modules/activity/service"
	commonDto "anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/response"
)

type ActivityHandler struct {
	service activity.ActivityService
}

func NewActivityHandler(service activity.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) Create(c *gin.Context) {
	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	a, err := h.service.Create(c.Request.Context(), response.OptionalActor(c), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToActivityResponse(*a))
}

func (h *ActivityHandler) List(c *gin.Context) {
	var query commonDto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), response.OptionalActor(c), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.Paginated(c, commonDto.Map(page, dto.ToActivityResponse))
}

func (h *ActivityHandler) Search(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	items, err := h.service.Search(c.Request.Context(), response.OptionalActor(c), query.Q)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	results := make([]dto.ActivityResponse, 0, len(items))
	for _, a := range items {
		results = append(results, dto.ToActivityResponse(a))
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *ActivityHandler) Get(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	a, err := h.service.Get(c.Request.Context(), response.OptionalActor(c), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponse(*a))
}

func (h *ActivityHandler) Update(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	a, err := h.service.Update(c.Request.Context(), response.OptionalActor(c), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponse(*a))
}

func (h *ActivityHandler) UploadImage(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	file, err := response.FormFile(c, "image")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	a, err := h.service.UploadImage(c.Request.Context(), response.OptionalActor(c), id, file.UploadFile)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityResponse(*a))
}

func (h *ActivityHandler) Delete(c *gin.Context) {
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
