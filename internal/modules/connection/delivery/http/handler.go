package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"anoa.com/healthmanage/internal/modules/connection/dto"
	connection "anoa.com/healthmanage/internal/modules/connection/service"
	commonDto "anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/response"
)

type ConnectionHandler struct {
	service connection.ConnectionService
}

func NewConnectionHandler(service connection.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{service: service}
}

func (h *ConnectionHandler) Create(c *gin.Context) {
	var req dto.CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	conn, err := h.service.Create(c.Request.Context(), response.OptionalActor(c), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToConnectionResponse(*conn))
}

func (h *ConnectionHandler) List(c *gin.Context) {
	var query dto.ConnectionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), response.OptionalActor(c), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.Paginated(c, commonDto.Map(page, dto.ToConnectionResponse))
}

func (h *ConnectionHandler) Get(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	conn, err := h.service.Get(c.Request.Context(), response.OptionalActor(c), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToConnectionResponse(*conn))
}

func (h *ConnectionHandler) Update(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	conn, err := h.service.Update(c.Request.Context(), response.OptionalActor(c), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToConnectionResponse(*conn))
}

func (h *ConnectionHandler) Delete(c *gin.Context) {
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
