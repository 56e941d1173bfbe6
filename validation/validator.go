package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/kbukum/asyncseq/errors"
)

// Validator collects parameter errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific parameter.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an INVALID_ARGUMENT AppError if there are validation
// errors, nil otherwise. The message names the first offending parameter;
// every problem is listed under the "fields" detail.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	first := v.errors[0]
	appErr := errors.InvalidArgument(first.Field, first.Message)
	if len(v.errors) > 1 {
		messages := make([]string, len(v.errors))
		for i, e := range v.errors {
			messages[i] = fmt.Sprintf("'%s' %s", e.Field, e.Message)
		}
		appErr.Message = strings.Join(messages, "; ")
	}
	appErr.WithDetail("fields", v.errors)

	return appErr
}

// Err is Validate returned as a plain error, so a clean Validator yields a
// nil interface rather than a typed nil.
func (v *Validator) Err() error {
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// NonNegative checks that value is zero or greater.
func (v *Validator) NonNegative(field string, value int) *Validator {
	if value < 0 {
		v.AddError(field, "must be non-negative")
	}
	return v
}

// Positive checks that value is at least one.
func (v *Validator) Positive(field string, value int) *Validator {
	if value < 1 {
		v.AddError(field, "must be positive")
	}
	return v
}

// NotNil checks that value is neither a nil interface nor a typed nil.
func (v *Validator) NotNil(field string, value any) *Validator {
	if isNil(value) {
		v.AddError(field, "must not be nil")
	}
	return v
}

// NotEmpty checks that a variadic argument list has at least one element.
func (v *Validator) NotEmpty(field string, length int) *Validator {
	if length == 0 {
		v.AddError(field, "must be non-empty")
	}
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
