package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"anoa.com/healthmanage/internal/modules/catalog/dto"
	catalog "anoa.com/healthmanage/internal/modules/catalog/service"
	commonDto "anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/response"
)

// CatalogHandler serves /tag/ and /specialization/.
type CatalogHandler[T, R any] struct {
	service catalog.CatalogService[T]
	render  func(T) R
}

func NewCatalogHandler[T, R any](service catalog.CatalogService[T], render func(T) R) *CatalogHandler[T, R] {
	return &CatalogHandler[T, R]{service: service, render: render}
}

func (h *CatalogHandler[T, R]) Create(c *gin.Context) {
	var req dto.EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	entry, err := h.service.Create(c.Request.Context(), response.OptionalActor(c), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.render(*entry))
}

func (h *CatalogHandler[T, R]) List(c *gin.Context) {
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
	response.Paginated(c, commonDto.Map(page, h.render))
}

func (h *CatalogHandler[T, R]) Get(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	entry, err := h.service.Get(c.Request.Context(), response.OptionalActor(c), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(*entry))
}

func (h *CatalogHandler[T, R]) Update(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	entry, err := h.service.Update(c.Request.Context(), response.OptionalActor(c), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(*entry))
}

func (h *CatalogHandler[T, R]) Delete(c *gin.Context) {
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
