package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	catalogerrors "github.com/abgdnv/productcatalog/internal/catalog/errors"
	"github.com/abgdnv/productcatalog/internal/catalog/store"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report JSON field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// decimals are checked as float64 so numeric tags like gte apply
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return store.IsValidCategory(fl.Field().String())
	})
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
	}
}

// validateInput runs struct validation and converts the first failure into a *ValidationError.
// Missing required fields are reported before any value constraint.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	first := fieldErrors[0]
	for _, fe := range fieldErrors {
		if fe.Tag() == "required" {
			first = fe
			break
		}
	}
	return toValidationError(first)
}

func toValidationError(fe validator.FieldError) *catalogerrors.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return catalogerrors.NewValidationError(field, "Missing required field: %s", field)
	case "notblank":
		return catalogerrors.NewValidationError(field, "%s cannot be empty", capitalize(field))
	case "gte":
		return catalogerrors.NewValidationError(field, "%s cannot be negative", capitalize(field))
	case "category":
		return catalogerrors.NewValidationError(field, "Invalid category. Choose from: %s", strings.Join(store.Categories(), ", "))
	default:
		return catalogerrors.NewValidationError(field, "Invalid value for field: %s", field)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
