package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/healthmanage/internal/entity"
)

type signup struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     entity.Role `json:"role" binding:"role"`
	Goal     string      `json:"goal_type" binding:"omitempty,goal_type"`
}

func newValidate(t *testing.T) *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, Configure(v))
	return v
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	v := newValidate(t)

	err := v.Struct(signup{Email: "nope", Password: "short", Role: entity.Role(5), Goal: "bulk"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, "enter a valid email address", fields["email"])
	assert.Equal(t, "ensure this field has at least 8 characters", fields["password"])
	assert.Equal(t, "not a valid role", fields["role"])
	assert.Equal(t, "not a valid goal type", fields["goal_type"])
}

func TestValidPayloadPasses(t *testing.T) {
	v := newValidate(t)
	assert.NoError(t, v.Struct(signup{Email: "a@b.co", Password: "longenough", Role: entity.RoleExpert, Goal: "maintain"}))
}
