package services

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/taskgraph-api/internal/errors"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return !isBlank(fl.Field().String())
	})
	return v
}

// IsValidUsername reports whether s is a non-empty run of letters, digits
// and underscores.
func IsValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// validationCodes maps "Field.tag" of a failed rule to the error code
// reported to clients.
type validationCodes map[string]string

// check validates input and converts the first failing rule into a
// validation error.
func check(input interface{}, codes validationCodes) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	if code, ok := codes[fe.Field()+"."+fe.Tag()]; ok {
		return apierrors.New(apierrors.ErrValidation, code)
	}
	return apierrors.New(apierrors.ErrValidation, "invalid-"+fe.Tag())
}
