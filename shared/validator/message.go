package validator

import (
	"errors"
	"strings"

	"taskorganizer/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be at most {param} characters",
		"min":      "{field} must be at least {param} character(s)",
	}
)

func message(valErr val.FieldError) string {
	errStr := messages[valErr.Tag()]
	if errStr == "" {
		return valErr.Error()
	}

	errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
	errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

	return errStr
}

// details turns validator errors into per-field messages, keeping the first one as the summary.
func details(err error) (string, []failure.FieldError) {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error(), nil
	}

	fields := make([]failure.FieldError, 0, len(valErrors))
	for _, valErr := range valErrors {
		fields = append(fields, failure.FieldError{
			Field:   valErr.Field(),
			Message: message(valErr),
		})
	}

	if len(fields) == 0 {
		return valErrors.Error(), nil
	}

	return fields[0].Message, fields
}
