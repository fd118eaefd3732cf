package cli

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jacksmith/profiles/internal/model"
)

var validate = newValidator()

// newValidator reports fields by their YAML names, the names users see in
// flags and in the editor.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// choices describes the closed sets behind oneof checks.
var choices = map[string]struct {
	noun     string
	expected string
}{
	"gender":  {"gender", model.GenderChoices()},
	"hobbies": {"hobby", model.HobbyChoices()},
}

// ValidateProfile checks a normalized editable profile: name and email must
// not be blank, gender and hobbies must come from their closed sets.
// It returns nil or a non-empty ValidationErrors in field order.
func ValidateProfile(e model.EditableProfile) error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fieldError(fe))
	}
	return errs
}

// fieldError converts a validator failure into a ValidationError.
// Slice elements ("hobbies[1]") are reported under the slice name.
func fieldError(fe validator.FieldError) *ValidationError {
	field, _, _ := strings.Cut(fe.Field(), "[")

	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Message: "must not be blank"}
	case "oneof":
		c, ok := choices[field]
		if !ok {
			return &ValidationError{Field: field, Message: fmt.Sprintf("must be one of %s", fe.Param())}
		}
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("unknown %s %q (expected %s)", c.noun, fmt.Sprint(fe.Value()), c.expected),
		}
	}
	return &ValidationError{Field: field, Message: fmt.Sprintf("failed %s check", fe.Tag())}
}
