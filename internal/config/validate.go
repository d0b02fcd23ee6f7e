package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validate checks File and Input tags. Field names in errors follow the
// YAML keys.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(yamlName)

	_ = validate.RegisterValidation("identifier", validateIdentifier)
	_ = validate.RegisterValidation("finite", validateFinite)
}

func yamlName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// validateIdentifier accepts names usable as expression variables.
func validateIdentifier(fl validator.FieldLevel) bool {
	return identifier.MatchString(fl.Field().String())
}

// validateFinite rejects NaN and ±Inf.
func validateFinite(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validationError converts the result of validate.Struct. prefix is
// prepended to the field path of structs nested in File.
func validationError(err error, prefix string) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	first := errs[0]
	for _, fe := range errs[1:] {
		if fieldPath(fe, prefix) < fieldPath(first, prefix) {
			first = fe
		}
	}
	return NewValidationError(fieldPath(first, prefix), message(first))
}

// fieldPath turns "File.inputs[a-b]" into "inputs.a-b" and, under the
// prefix "inputs.a", "Input.value" into "inputs.a".
func fieldPath(fe validator.FieldError, prefix string) string {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}
	path = strings.NewReplacer("[", ".", "]", "").Replace(path)
	if prefix != "" {
		path = prefix + "." + path
	}
	return strings.TrimSuffix(path, ".value")
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("unknown backward schedule %q, want one of: %s", fe.Value(), fe.Param())
	case "identifier":
		return "name must be an identifier"
	case "finite":
		return "value must be finite"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
