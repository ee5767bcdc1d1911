package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate performs tag-based validation on a struct.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// FormatValidationError formats validation errors into a single readable
// string naming the offending fields.
func FormatValidationError(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range errs {
			messages = append(messages, e.Field()+" failed "+e.Tag()+" validation")
		}
		return strings.Join(messages, ", ")
	}
	return err.Error()
}
