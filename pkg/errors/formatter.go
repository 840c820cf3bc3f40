package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func msgForTag(tag string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "oneof":
		return "Select a valid choice"
	case "min":
		return "Value is too short or too small"
	case "max":
		return "Value is too long or too large"
	case "len":
		return "Value must be exact length"
	case "numeric":
		return "Value must be numeric"
	case "datetime":
		return "Invalid date format"
	default:
		return "Invalid value"
	}
}

// fieldName resolves the name a client used for a struct field: the form
// tag first, then the json tag, then the Go name.
func fieldName(structType reflect.Type, goName string) string {
	if structType == nil {
		return goName
	}

	field, found := structType.FieldByName(goName)
	if !found {
		return goName
	}

	for _, tagKey := range []string{"form", "json"} {
		tag := field.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		if name := strings.Split(tag, ",")[0]; name != "" {
			return name
		}
	}

	return goName
}

func FormatValidationErrors(err error, model interface{}) []ValidationErrorResponse {
	var errorsList []ValidationErrorResponse

	if err == nil {
		return errorsList
	}

	var jsonErr *json.UnmarshalTypeError
	if errors.As(err, &jsonErr) {
		return []ValidationErrorResponse{
			{
				Field:   jsonErr.Field,
				Message: fmt.Sprintf("Invalid type for field %s. Expected %s, got %s", jsonErr.Field, jsonErr.Type, jsonErr.Value),
			},
		}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errorsList
	}

	var structType reflect.Type
	if model != nil {
		structType = reflect.TypeOf(model)
		if structType.Kind() == reflect.Ptr {
			structType = structType.Elem()
		}
	}

	errorsList = make([]ValidationErrorResponse, len(validationErrors))

	for i, fieldError := range validationErrors {
		message := msgForTag(fieldError.Tag())

		if fieldError.Param() != "" {
			switch fieldError.Tag() {
			case "min":
				message = fmt.Sprintf("Must be at least %s characters", fieldError.Param())
			case "max":
				message = fmt.Sprintf("Ensure this value has at most %s characters", fieldError.Param())
			case "len":
				message = fmt.Sprintf("Must be exactly %s characters", fieldError.Param())
			case "oneof":
				message = fmt.Sprintf("Select a valid choice. Allowed: %s", strings.ReplaceAll(fieldError.Param(), " ", ", "))
			}
		}

		errorsList[i] = ValidationErrorResponse{
			Field:   fieldName(structType, fieldError.Field()),
			Message: message,
		}
	}

	return errorsList
}
