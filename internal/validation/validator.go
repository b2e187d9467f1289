// Package validation checks request shapes before they reach the services.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"recshelf/internal/models"

	"github.com/go-playground/validator/v10"
)

// emailPattern must match the whole input, not a substring of it.
var emailPattern = regexp.MustCompile(`^(?:\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,7}\b)$`)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get returns the shared validator with the custom tags registered.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})

		// Registration only fails on an empty tag or nil func.
		_ = v.RegisterValidation("email_strict", func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugPattern.MatchString(fl.Field().String())
		})

		validate = v
	})
	return validate
}

// Struct validates s and converts the first failure into a ValidationError.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return models.NewValidationError(err.Error())
	}
	return models.NewValidationError(message(fieldErrs[0]))
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
	case "email_strict":
		return "Not valid email"
	case "slug":
		return field + " must contain only lowercase letters, digits and single hyphens"
	default:
		return field + " is invalid"
	}
}

// IsEmail applies the email pattern with full-string semantics.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateUsername checks the 5-255 character bound.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < 5 {
		return models.NewValidationError("username must be at least 5 characters")
	}
	if n > 255 {
		return models.NewValidationError("username must not exceed 255 characters")
	}
	return nil
}

// ValidateEmail checks length and format.
func ValidateEmail(email string) error {
	n := utf8.RuneCountInString(email)
	if n < 5 || n > 255 {
		return models.NewValidationError("email must be between 5 and 255 characters")
	}
	if !IsEmail(email) {
		return models.NewValidationError("Not valid email")
	}
	return nil
}
