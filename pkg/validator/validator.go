package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EchoValidator adapts go-playground/validator to echo's Validator
// interface so request structs can declare their constraints as tags.
type EchoValidator struct {
	v *validator.Validate
}

// New creates the validator and registers the custom tags used by the
// request structs.
func New() (*EchoValidator, error) {
	v := validator.New()

	// numstr accepts a blank string or a parseable non-negative number;
	// the catalog does the authoritative parse afterwards.
	if err := v.RegisterValidation("numstr", validateNumstr); err != nil {
		return nil, fmt.Errorf("register numstr validator: %w", err)
	}

	return &EchoValidator{v: v}, nil
}

// Validate validates the given struct
func (ev *EchoValidator) Validate(s interface{}) error {
	return ev.v.Struct(s)
}

// Message renders a short human-readable reason for a failed field.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "numstr":
		return "must be a non-negative number"
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return "is invalid"
	}
}

func validateNumstr(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return true
	}
	n, err := strconv.ParseFloat(raw, 64)
	return err == nil && n >= 0
}
