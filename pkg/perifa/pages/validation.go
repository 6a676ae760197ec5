package pages

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ErrInvalidEmail is returned for an e-mail address without a local part,
// a domain and a dot in the domain.
var ErrInvalidEmail = errors.New("invalid email")

// ValidationError lists required fields left empty, by form field id in form
// order.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// Registration is a volunteer registration. The form tag holds the id of the
// field each value is read from.
type Registration struct {
	Name         string `form:"inome" validate:"required"`
	Surname      string `form:"isobrenome" validate:"required"`
	BirthDate    string `form:"inascim" validate:"required"`
	CPF          string `form:"icpf" validate:"required"`
	Email        string `form:"iemail" validate:"required,simple_email"`
	Phone        string `form:"itel" validate:"required"`
	Area         string `form:"iarea" validate:"required"`
	Availability string `form:"itemp" validate:"required"`
}

// RequiredFields returns the ids of the registration form's required fields
// in form order.
func RequiredFields() []string {
	t := reflect.TypeOf(Registration{})
	ids := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		ids = append(ids, t.Field(i).Tag.Get("form"))
	}
	return ids
}

// NewRegistration builds a registration from field values keyed by id.
// Values are trimmed.
func NewRegistration(value func(id string) string) Registration {
	var r Registration
	v := reflect.ValueOf(&r).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		v.Field(i).SetString(strings.TrimSpace(value(t.Field(i).Tag.Get("form"))))
	}
	return r
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			return f.Tag.Get("form")
		})

		_ = v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks r. Empty required fields are reported first as a
// *ValidationError; a malformed e-mail address is reported as
// ErrInvalidEmail.
func Validate(r Registration) error {
	err := validatorInstance().Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating registration: %w", err)
	}

	var missing []string
	badEmail := false
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			missing = append(missing, fe.Field())
		case "simple_email":
			badEmail = true
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if badEmail {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, r.Email)
	}
	return nil
}
