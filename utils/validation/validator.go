package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DueDateLayout is the only date format accepted from users.
const DueDateLayout = "2006-01-02"

// ErrInvalidDueDate is returned when a due date is not in DueDateLayout.
var ErrInvalidDueDate = errors.New("Invalid date format. Please use YYYY-MM-DD")

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("duedate", func(fl validator.FieldLevel) bool {
		_, err := ParseDueDate(fl.Field().String())
		return err == nil
	})
	return &Validator{
		validate: v,
	}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationErrors converts validation errors to a user-friendly format
func FormatValidationErrors(err error) map[string]string {
	errs := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			field := strings.ToLower(e.Field())
			switch e.Tag() {
			case "required":
				errs[field] = fmt.Sprintf("%s is required", e.Field())
			case "min":
				errs[field] = fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
			case "duedate":
				errs[field] = ErrInvalidDueDate.Error()
			case "oneof":
				errs[field] = fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
			default:
				errs[field] = fmt.Sprintf("%s is invalid", e.Field())
			}
		}
	}

	return errs
}

// ParseDueDate reads a YYYY-MM-DD date as midnight local time.
func ParseDueDate(value string) (time.Time, error) {
	due, err := time.ParseInLocation(DueDateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDueDate
	}
	return due, nil
}

// ParseOptionalDueDate is ParseDueDate for optional input: an empty value gives nil.
func ParseOptionalDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	due, err := ParseDueDate(value)
	if err != nil {
		return nil, err
	}
	return &due, nil
}
