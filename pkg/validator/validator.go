package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"anoa.com/healthmanage/internal/entity"
)

// Register installs json field names and the custom rules on gin's validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return Configure(v)
}

func Configure(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	if err := v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		r, ok := fl.Field().Interface().(entity.Role)
		return ok && r.Valid()
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("goal_type", func(fl validator.FieldLevel) bool {
		return entity.GoalType(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("connection_status", func(fl validator.FieldLevel) bool {
		return entity.ConnectionStatus(fl.Field().String()).Valid()
	})
}

// FieldErrors converts a binding error into a field -> message map.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = getFieldErrorMessage(fe)
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string]string{typeErr.Field: fmt.Sprintf("must be a %s", typeErr.Type)}
	}
	return map[string]string{"non_field_errors": err.Error()}
}

// FormatValidationError joins the field messages into a single line.
func FormatValidationError(err error) string {
	fields := FieldErrors(err)
	messages := make([]string, 0, len(fields))
	for field, msg := range fields {
		messages = append(messages, field+": "+msg)
	}
	return strings.Join(messages, "; ")
}

func getFieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("ensure this value is greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "role":
		return "not a valid role"
	case "goal_type":
		return "not a valid goal type"
	case "connection_status":
		return "not a valid connection status"
	case "uuid":
		return "must be a valid id"
	default:
		return "invalid value"
	}
}
