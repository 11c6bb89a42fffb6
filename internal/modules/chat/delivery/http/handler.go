package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"anoa.com/healthmanage/internal/modules/chat/dto"
	chat "anoa.com/healthmanage/internal/modules/chat/service"
	commonDto "anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/response"
)

type ChatHandler struct {
	service chat.ChatService
}

func NewChatHandler(service chat.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// SendMessage serves both POST / and POST /send-message/.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	m, err := h.service.SendMessage(c.Request.Context(), response.OptionalActor(c), req)
	if errors.Is(err, chat.ErrReceiverNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"receiver": "receiver does not exist or is inactive"})
		return
	}
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToChatMessageResponse(*m))
}

func (h *ChatHandler) List(c *gin.Context) {
	var query dto.ChatQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), response.OptionalActor(c), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	response.Paginated(c, commonDto.Map(page, dto.ToChatMessageResponse))
}

func (h *ChatHandler) Get(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	m, err := h.service.Get(c.Request.Context(), response.OptionalActor(c), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChatMessageResponse(*m))
}

func (h *ChatHandler) Update(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	m, err := h.service.Update(c.Request.Context(), response.OptionalActor(c), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChatMessageResponse(*m))
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	m, err := h.service.MarkRead(c.Request.Context(), response.OptionalActor(c), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChatMessageResponse(*m))
}

func (h *ChatHandler) Delete(c *gin.Context) {
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
