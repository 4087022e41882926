package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/batch-intake-api/internal/models"
	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
)

// MinPhoneDigits is the least number of digits a contact number must carry.
const MinPhoneDigits = 10

// NewValidator returns a validator that reports JSON field names and knows the
// intake-specific "phone" and "qualification" rules.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("qualification", func(fl validator.FieldLevel) bool {
		return models.Qualification(fl.Field().String()).Valid()
	})
	return v
}

// ValidPhone accepts digits with optional spaces, dashes, parentheses and a
// leading plus, as long as at least MinPhoneDigits digits are present.
func ValidPhone(raw string) bool {
	raw = strings.TrimSpace(raw)
	digits := 0
	for i, r := range raw {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')':
		case r == '+' && i == 0:
		default:
			return false
		}
	}
	return digits >= MinPhoneDigits
}

// validationError turns validator output into a VALIDATION_ERROR carrying one
// message per offending field.
func validationError(err error, message string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	out := appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, message), fields)
	out.Err = err
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "phone":
		return fmt.Sprintf("must contain at least %d digits", MinPhoneDigits)
	case "qualification":
		return "must be one of the listed qualifications"
	default:
		return "is invalid"
	}
}
