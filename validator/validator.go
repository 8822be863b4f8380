package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	Validator *validator.Validate
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Message)
	}

	return strings.Join(msgs, "; ")
}

// Fields lists the offending field names in order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, err := range v {
		fields = append(fields, err.Field)
	}

	return fields
}

// New returns a validator that reports fields by their JSON names, so messages
// match the request payload keys.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const maxSplits = 2
		name := strings.SplitN(fld.Tag.Get("json"), ",", maxSplits)[0]

		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{Validator: v}
}

func (v *Validator) Validate(i any) error {
	if err := v.Validator.Struct(i); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.formatValidationErrors(validationErrs)
		}

		return err
	}

	return nil
}

// Var validates a single value against tag and reports it under field.
func (v *Validator) Var(field string, value any, tag string) error {
	if err := v.Validator.Var(value, tag); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return err
		}

		formatted := make(ValidationErrors, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			formatted = append(formatted, v.newValidationError(field, fieldErr))
		}

		return formatted
	}

	return nil
}

func (v *Validator) formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	validationErrs := make(ValidationErrors, 0, len(errs))

	for _, err := range errs {
		field := err.Field()
		if field == "" {
			field = err.StructField()
		}

		validationErrs = append(validationErrs, v.newValidationError(field, err))
	}

	return validationErrs
}

func (v *Validator) newValidationError(field string, err validator.FieldError) ValidationError {
	return ValidationError{
		Field:   field,
		Tag:     err.Tag(),
		Value:   fmt.Sprintf("%v", err.Value()),
		Message: v.generateErrorMessage(field, err),
	}
}

func (v *Validator) generateErrorMessage(field string, err validator.FieldError) string {
	msg := v.getSimpleErrorMessage(field, err.Tag())
	if msg != "" {
		return msg
	}

	if isCollection(err.Kind()) {
		return v.getCollectionErrorMessage(field, err)
	}

	return v.getParameterizedErrorMessage(field, err)
}

func (v *Validator) getSimpleErrorMessage(field, tag string) string {
	if tag == "required" {
		return field + " is required"
	}

	return ""
}

func (v *Validator) getCollectionErrorMessage(field string, err validator.FieldError) string {
	param := err.Param()

	switch err.Tag() {
	case "len":
		return fmt.Sprintf("%s must contain exactly %s item(s)", field, param)
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", field, param)
	case "max":
		return fmt.Sprintf("%s must contain at most %s item(s)", field, param)
	default:
		return fmt.Sprintf("%s failed validation on '%s'", field, err.Tag())
	}
}

func (v *Validator) getParameterizedErrorMessage(field string, err validator.FieldError) string {
	param := err.Param()
	tag := err.Tag()

	switch tag {
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed validation on '%s'", field, err.Tag())
	}
}

func isCollection(kind reflect.Kind) bool {
	return kind == reflect.Slice || kind == reflect.Array || kind == reflect.Map
}

func (v *Validator) RegisterCustomValidation(tag string, fn validator.Func) error {
	return v.Validator.RegisterValidation(tag, fn)
}
