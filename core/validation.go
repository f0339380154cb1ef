package core

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	goerrors "github.com/goliatone/go-errors"
)

// MSISDNPattern matches Orange Cameroon subscriber numbers, with or without
// the 237 country prefix.
var MSISDNPattern = regexp.MustCompile(`^(237)?6(9\d{7}|5[5-9]\d{6})$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the msisdn rule registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("msisdn", func(fl validator.FieldLevel) bool {
			return MSISDNPattern.MatchString(fl.Field().String())
		})
		validate = v
	})
	return validate
}

func ValidMSISDN(value string) bool {
	return MSISDNPattern.MatchString(value)
}

// ValidateStruct runs the struct rules and returns a *ValidationError with one
// entry per failing field, in declaration order.
func ValidateStruct(message string, value any) error {
	err := Validator().Struct(value)
	if err == nil {
		return nil
	}
	var failures validator.ValidationErrors
	if !errors.As(err, &failures) {
		return NewValidationError(message, goerrors.FieldError{Field: "input", Message: err.Error()})
	}
	fields := make([]goerrors.FieldError, 0, len(failures))
	seen := map[string]struct{}{}
	for _, failure := range failures {
		name := failure.Field()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		fields = append(fields, goerrors.FieldError{
			Field:   name,
			Message: ruleMessage(failure),
		})
	}
	return NewValidationError(message, fields...)
}

func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "mapstructure"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

func ruleMessage(failure validator.FieldError) string {
	switch failure.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "min":
		return "must be at least " + failure.Param()
	case "numeric":
		return "must be numeric"
	case "msisdn":
		return "must be a valid mobile number"
	case "oneof":
		return "must be one of " + failure.Param()
	default:
		return "failed " + failure.Tag() + " rule"
	}
}
