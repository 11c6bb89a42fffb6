package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"anoa.com/healthmanage/internal/modules/profile/dto"
	"anoa.com/healthmanage/internal/modules/profile/repository"
	profile "anoa.com/healthmanage/internal/modules/profile/service"
	commonDto "anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/response"
)

// ProfileHandler serves /exerciser/ and /coach/.
type ProfileHandler[T any, PT repository.Profile[T]] struct {
	service profile.ProfileService[T]
}

func NewProfileHandler[T any, PT repository.Profile[T]](service profile.ProfileService[T]) *ProfileHandler[T, PT] {
	return &ProfileHandler[T, PT]{service: service}
}

func toResponse[T any, PT repository.Profile[T]](p T) dto.ProfileResponse {
	return dto.ToProfileResponse(PT(&p).Profile())
}

func (h *ProfileHandler[T, PT]) Register(c *gin.Context) {
	var req dto.RegisterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.service.Register(c.Request.Context(), response.OptionalActor(c), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse[T, PT](*p))
}

func (h *ProfileHandler[T, PT]) List(c *gin.Context) {
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
	response.Paginated(c, commonDto.Map(page, toResponse[T, PT]))
}

func (h *ProfileHandler[T, PT]) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, toResponse[T, PT](*p))
}

func (h *ProfileHandler[T, PT]) Update(c *gin.Context) {
	id, err := response.ParseID(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), response.OptionalActor(c), id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse[T, PT](*p))
}

func (h *ProfileHandler[T, PT]) Delete(c *gin.Context) {
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
