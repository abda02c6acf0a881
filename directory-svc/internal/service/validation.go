package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"business-directory/directory-svc/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateBusiness(business *domain.Business) error {
	if err := validateStruct(business); err != nil {
		return err
	}
	if business.Coordinates != nil {
		business.Coordinates.Normalize()
		if err := business.Coordinates.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateReview(review *domain.Review) error {
	return validateStruct(review)
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fmt.Errorf("validate: %w", err)
	}
	return &domain.ValidationError{Message: describe(fieldErrors[0])}
}

func describe(fe validator.FieldError) string {
	switch {
	case fe.Field() == "rating":
		return "rating must be between 1 and 5"
	case fe.Tag() == "required":
		return fe.Field() + " is required"
	case fe.Tag() == "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}
