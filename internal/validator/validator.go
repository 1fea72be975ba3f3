// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine and
// reports field names by their JSON or form tag.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("month", validateMonth)
	}
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateMonth(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01", fl.Field().String())
	return err == nil
}

// FieldErrors translates a binding error into one message per offending
// field. ok is false when err is not a field-level failure.
func FieldErrors(err error) (fields map[string]string, ok bool) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = message(fe)
		}
		return fields, true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return map[string]string{typeErr.Field: "must be a " + typeErr.Type.String()}, true
	}
	return nil, false
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "transaction_type":
		return "must be income or expense"
	case "iso_date":
		return "must be a date in YYYY-MM-DD format"
	case "month":
		return "must be a month in YYYY-MM format"
	}
	return "is invalid"
}
