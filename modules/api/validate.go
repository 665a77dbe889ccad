package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// FieldError describes one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError is the structured result of a failed body validation.
// Code distinguishes the empty partial-update case from ordinary
// validation failures.
type ValidationError struct {
	Code   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Fields[0].Message)
}

const (
	codeValidation  = "validation_error"
	codeEmptyUpdate = "empty_update"
	codeInvalidID   = "invalid_id"
)

// ValidateBody checks a raw JSON body against a shape and returns the
// decoded object on success. It runs before any persistence call; a
// failure short-circuits the handler.
func ValidateBody(shape *Shape, body []byte) (map[string]any, *ValidationError) {
	var decoded map[string]any
	if len(body) == 0 {
		decoded = map[string]any{}
	} else if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &ValidationError{
			Code: codeValidation,
			Fields: []FieldError{
				{Field: "body", Rule: "json", Message: "Request body must be a JSON object"},
			},
		}
	}

	var fieldErrors []FieldError
	present := 0

	for _, field := range shape.Fields {
		if field.ReadOnly {
			continue
		}
		value, ok := decoded[field.Name]
		if !ok || value == nil {
			if field.Required {
				fieldErrors = append(fieldErrors, FieldError{
					Field:   field.Name,
					Rule:    "required",
					Message: fmt.Sprintf("%s is required", field.Name),
				})
			}
			continue
		}
		present++

		if ferr := checkField(&field, value); ferr != nil {
			fieldErrors = append(fieldErrors, *ferr)
		}
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Code: codeValidation, Fields: fieldErrors}
	}

	if present < shape.MinFields {
		return nil, &ValidationError{
			Code: codeEmptyUpdate,
			Fields: []FieldError{
				{Field: "body", Rule: "minFields", Message: "Update must include at least one field"},
			},
		}
	}

	return decoded, nil
}

func checkField(field *Field, value any) *FieldError {
	switch field.Type {
	case FieldString, FieldDateTime:
		str, ok := value.(string)
		if !ok {
			return typeError(field, "a string")
		}
		if len(str) < field.MinLength {
			return &FieldError{
				Field:   field.Name,
				Rule:    "minLength",
				Message: fmt.Sprintf("%s must not be empty", field.Name),
			}
		}
		if field.MaxLength > 0 && len(str) > field.MaxLength {
			return &FieldError{
				Field:   field.Name,
				Rule:    "maxLength",
				Message: fmt.Sprintf("%s must be at most %d characters", field.Name, field.MaxLength),
			}
		}
		if field.Type == FieldDateTime {
			if _, err := time.Parse(time.RFC3339, str); err != nil {
				return typeError(field, "an RFC 3339 timestamp")
			}
		}
	case FieldBoolean:
		if _, ok := value.(bool); !ok {
			return typeError(field, "a boolean")
		}
	case FieldInteger:
		num, ok := value.(float64)
		if !ok || num != float64(int64(num)) {
			return typeError(field, "an integer")
		}
	}
	return nil
}

func typeError(field *Field, want string) *FieldError {
	return &FieldError{
		Field:   field.Name,
		Rule:    "type",
		Message: fmt.Sprintf("%s must be %s", field.Name, want),
	}
}
