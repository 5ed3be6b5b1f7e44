package submission

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phoneRegex = regexp.MustCompile(`^\d{9}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phone9", phone9); err != nil {
		panic(fmt.Sprintf("registering phone9 validation: %v", err))
	}
	return v
}

func phone9(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// ValidPhone reports whether s is exactly nine digits.
func ValidPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// ValidationError describes the constraint a payload violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const (
	msgMissingFields = "Missing required fields: selectedDate and phoneNumber are required"
	msgBadPhone      = "Invalid phone number format. Expected 9 digits."
)

// Validate checks required fields first, then the phone format.
func Validate(p Payload) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating payload: %w", err)
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return &ValidationError{Field: fe.Field(), Message: msgMissingFields}
		}
	}
	return &ValidationError{Field: verrs[0].Field(), Message: msgBadPhone}
}
