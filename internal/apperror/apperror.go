// Package apperror maps validator failures on the entry form to readable
// per-field messages.
package apperror

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Tiliavir/caretaker-log/internal/model"
)

var (
	errRequired     = errors.New("is required")
	errInvalidDate  = errors.New("must be a local date and time such as 2024-03-05T08:30")
	errTitleTooLong = errors.New("must be at most 200 characters long")
)

var customErrors = map[string]error{
	"EntryForm.Title.required": errRequired,
	"EntryForm.Title.max":      errTitleTooLong,
	"EntryForm.Date.required":  errRequired,
	"EntryForm.Date.localtime": errInvalidDate,
}

// FieldError is one rejected form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every rejected field of a form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "invalid entry: " + strings.Join(parts, "; ")
}

// LocalTime returns the "localtime" validation: the field must parse with
// model.ParseLocal in loc.
func LocalTime(loc *time.Location) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := model.ParseLocal(fl.Field().String(), loc)
		return err == nil
	}
}

// NewValidator returns a validator with the custom tags used by model types.
// Dates are checked in loc; nil means time.Local.
func NewValidator(loc *time.Location) *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("localtime", LocalTime(loc))
	return v
}

// FromValidator converts validator errors into a *ValidationError. Other
// errors are returned unchanged and nil stays nil.
func FromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, e := range verrs {
		key := e.StructNamespace() + "." + e.Tag()
		msg := fmt.Sprintf("is invalid (%s)", e.Tag())
		if v, ok := customErrors[key]; ok {
			msg = v.Error()
		}
		out.Fields = append(out.Fields, FieldError{Field: strings.ToLower(e.Field()), Message: msg})
	}
	return out
}
