package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aliskhannn/lingua-tracker/internal/domain/entities"
)

// InputValidator checks command inputs and reports failures as
// entities.ErrValidation.
type InputValidator struct {
	v *validator.Validate
}

// NewInputValidator creates a validator with the domain enum rules registered.
func NewInputValidator() *InputValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("activity", func(fl validator.FieldLevel) bool {
		return entities.ActivityType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		return entities.Difficulty(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("level", func(fl validator.FieldLevel) bool {
		return entities.Level(fl.Field().String()).Valid()
	})

	return &InputValidator{v: v}
}

// Validate returns nil or an error wrapping entities.ErrValidation that
// names every offending field.
func (iv *InputValidator) Validate(input any) error {
	err := iv.v.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", entities.ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}

	return fmt.Errorf("%w: %s", entities.ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "len":
		return fmt.Sprintf("%s must be %s characters", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "activity", "difficulty", "level":
		return fmt.Sprintf("%s %q is not a valid %s", field, fe.Value(), fe.Tag())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
