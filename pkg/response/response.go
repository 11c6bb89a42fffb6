package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/pkg/apperror"
	"anoa.com/healthmanage/pkg/dto"
	"anoa.com/healthmanage/pkg/validator"
)

const (
	actorKey  = "actor"
	loggerKey = "logger"
)

// SetActor stores the authenticated actor on the request context.
func SetActor(c *gin.Context, actor *authz.Actor) {
	c.Set(actorKey, actor)
}

// OptionalActor returns the actor when the request is authenticated, nil otherwise.
func OptionalActor(c *gin.Context) *authz.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*authz.Actor)
	return actor
}

// GetActor retrieves the authenticated actor from the context
func GetActor(c *gin.Context) (*authz.Actor, error) {
	actor := OptionalActor(c)
	if actor == nil {
		return nil, apperror.ErrUnauthorized
	}
	return actor, nil
}

func SetLogger(c *gin.Context, log *zap.Logger) {
	c.Set(loggerKey, log)
}

func Logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(*zap.Logger); ok {
			return log
		}
	}
	return zap.L()
}

// ParseID reads a uuid path parameter. Malformed ids are reported as not found.
func ParseID(c *gin.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s %q: %w", param, c.Param(param), apperror.ErrNotFound)
	}
	return id, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		Logger(c).Error("internal error", zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(code, gin.H{"error": apperror.ErrInternal.Error()})
		return
	}

	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		c.JSON(code, verr.Fields)
		return
	}

	if code == http.StatusUnauthorized {
		c.JSON(code, gin.H{"error": apperror.ErrUnauthorized.Error()})
		return
	}
	if code == http.StatusForbidden {
		c.JSON(code, gin.H{"error": apperror.ErrForbidden.Error()})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// BindError reports a binding or validation failure as a 400 field map.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, validator.FieldErrors(err))
}

// Paginated writes the list envelope with absolute next/previous links.
func Paginated[T any](c *gin.Context, page *dto.PageResult[T]) {
	c.JSON(http.StatusOK, dto.PageResponse[T]{
		Count:    page.Total,
		Next:     pageLink(c, page.Page+1, page.HasNext()),
		Previous: pageLink(c, page.Page-1, page.HasPrevious()),
		Results:  page.Items,
	})
}

func pageLink(c *gin.Context, page int, ok bool) *string {
	if !ok {
		return nil
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}

	q := c.Request.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: q.Encode()}
	link := u.String()
	return &link
}
