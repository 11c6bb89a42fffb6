package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"anoa.com/healthmanage/internal/authz"
	"anoa.com/healthmanage/internal/entity"
	"anoa.com/healthmanage/pkg/apperror"
	"anoa.com/healthmanage/pkg/response"
)

// UserLoader returns an active user by id.
type UserLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type AuthMiddleware struct {
	users  UserLoader
	secret string
}

func NewAuthMiddleware(users UserLoader, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		users:  users,
		secret: secret,
	}
}

// RequireAuth rejects requests without a valid bearer token of an active user.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := m.authenticate(c)
		if err == nil && actor == nil {
			err = apperror.ErrUnauthorized
		}
		if err != nil {
			response.ResponseError(c, err)
			c.Abort()
			return
		}
		response.SetActor(c, actor)
		c.Next()
	}
}

// OptionalAuth resolves the actor when a token is present. A malformed or
// expired token is still rejected.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := m.authenticate(c)
		if err != nil {
			response.ResponseError(c, err)
			c.Abort()
			return
		}
		if actor != nil {
			response.SetActor(c, actor)
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := response.GetActor(c)
		if err != nil {
			response.ResponseError(c, err)
			c.Abort()
			return
		}
		if !actor.IsAdmin() {
			response.ResponseError(c, apperror.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// authenticate returns nil, nil when the request carries no token.
func (m *AuthMiddleware) authenticate(c *gin.Context) (*authz.Actor, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, apperror.ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(parts[1], &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	// Inactive or removed accounts lose access immediately.
	user, err := m.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}
	return &authz.Actor{ID: user.ID, Role: user.Role}, nil
}
