// Package validate wraps go-playground/validator with the custom tags the
// storefront DTOs use.
package validate

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// noAllRepeatingChars rejects values like "aaaaaaa" that pass min-length
	// checks but carry no information.
	err := validate.RegisterValidation(
		"noAllRepeatingChars",
		func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if len(value) < 2 {
				return true
			}

			first := rune(value[0])
			for _, r := range value {
				if r != first {
					return true
				}
			}

			return false
		},
	)
	if err != nil {
		log.Fatalf("failed to register custom validation: %v", err)
	}
}

// StructFields validates the struct's `validate` tags and returns a
// field-to-message map suitable for a 422 response body, or nil.
func StructFields(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"payload": err.Error()}
	}

	fieldErrs := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fieldErrs[strings.ToLower(fieldErr.Field())] = fmt.Sprintf(
			"failed '%s' validation",
			fieldErr.Tag(),
		)
	}

	return fieldErrs
}
