package apperror

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns validator output into a VALIDATION_ERROR with a
// readable message, before any request leaves the client.
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		e := errs[0]

		fieldName := formatFieldName(fieldNameOf(e))

		switch e.Tag() {
		case "required":
			return Validation(fieldName+" is required", http.StatusBadRequest)
		case "oneof":
			return Validation(fieldName+" must be one of: "+e.Param(), http.StatusBadRequest)
		default:
			return Validation(fieldName+" is invalid", http.StatusBadRequest)
		}
	}

	return New(
		CodeValidation,
		"Invalid input",
		http.StatusBadRequest,
	)
}

func fieldNameOf(e validator.FieldError) string {
	// Namespace is Struct.Field; keep the leaf only
	name := e.Field()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// NewValidator builds a validator that reports json tag names, so messages
// match the wire field names the backend uses.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
