package app

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/contentcal/pkg/timeutil"
)

// NewValidator returns a validator with the calendar rules registered and
// field names reported by their JSON tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("timeslot", validateTimeSlot)
	return v
}

func validateTimeSlot(fl validator.FieldLevel) bool {
	return timeutil.ValidSlot(fl.Field().String())
}

// toValidationError converts the first validator failure into a
// *ValidationError; other errors pass through.
func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	field := fe.Field()
	if field == "" {
		field = strings.ToLower(fe.StructField())
	}
	reason := fe.Tag()
	switch fe.Tag() {
	case "required":
		reason = "required"
	case "min":
		reason = "at least " + fe.Param() + " value(s) required"
	case "timeslot":
		reason = "must be HH:MM"
	case "gte":
		reason = "must be >= " + fe.Param()
	}
	return &ValidationError{Field: field, Reason: reason}
}
