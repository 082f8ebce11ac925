package editstate

import (
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ValidationError reports one field that cannot be written to a model
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var guidPattern = regexp.MustCompile(`^[0-9A-Fa-f]{32}$`)

// validator collects every field failure so the user sees them all at once
type validator struct {
	errs []error
}

func (v *validator) fail(field, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) nonNegative(field string, value int32) {
	if value < 0 {
		v.fail(field, "must not be negative, got %d", value)
	}
}

func (v *validator) inRange(field string, value, min, max int32) {
	if value < min || value > max {
		v.fail(field, "must be between %d and %d, got %d", min, max, value)
	}
}

func (v *validator) items(field string, items []ItemInput) {
	for i, item := range items {
		if err := validateSerial(item.Serial); err != nil {
			v.fail(fmt.Sprintf("%s[%d].serial", field, i), "%v", err)
		}
	}
}

func (v *validator) err() error {
	return errors.Join(v.errs...)
}

func validateSerial(serial string) error {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return errors.New("serial is empty")
	}
	if _, err := base64.StdEncoding.DecodeString(serial); err != nil {
		return fmt.Errorf("serial is not valid base64: %w", err)
	}
	return nil
}

// FieldErrors flattens an error returned by MapSave or MapProfile
func FieldErrors(err error) []*ValidationError {
	var out []*ValidationError
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if ve, ok := e.(*ValidationError); ok {
			out = append(out, ve)
			return
		}
		if joined, ok := e.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		walk(errors.Unwrap(e))
	}
	walk(err)
	return out
}
