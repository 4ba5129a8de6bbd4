package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is shared by all form handlers.
var Validator = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals

// FieldError is a single failed validation.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Message renders the error for display next to a form.
func (e FieldError) Message() string {
	switch e.Tag {
	case "required":
		return e.Field + " is required"
	case "email":
		return e.Field + " must be a valid email address"
	case "url":
		return e.Field + " must be a valid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", e.Field, e.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field, e.Param)
	case "eqfield":
		return fmt.Sprintf("%s must match %s", e.Field, e.Param)
	case "hexcolor":
		return e.Field + " must be a hex color like #FFD700"
	default:
		return "Field '" + e.Field + "' failed validation tag '" + e.Tag + "'"
	}
}

// Validate checks v and returns the failed fields, nil when v is valid.
func Validate(v any) []FieldError {
	err := Validator.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Field: "form", Tag: err.Error()}}
	}

	out := make([]FieldError, len(validationErrors))
	for i, ve := range validationErrors {
		out[i] = FieldError{Field: ve.Field(), Tag: ve.Tag(), Param: ve.Param()}
	}

	return out
}

// Messages turns field errors into display strings.
func Messages(errs []FieldError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message()
	}

	return out
}

// ParseID reads a positive numeric route parameter.
func ParseID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}
