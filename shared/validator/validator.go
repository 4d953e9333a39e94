package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"taskorganizer/shared/failure"
	"taskorganizer/shared/optional"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// presence is implemented by optional.Value; only supplied values are validated.
type presence interface {
	Ptr() any
}

func optionalValue(field reflect.Value) any {
	if opt, ok := field.Interface().(presence); ok {
		return opt.Ptr()
	}

	return nil
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}

	if name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	RegisterOptional(optional.Value[string]{}, optional.Value[bool]{}, optional.Value[int64]{})
}

// RegisterOptional teaches the validator to look through optional wrapper types.
// Each concrete instantiation must be registered once, e.g. optional.Value[string]{}.
func RegisterOptional(types ...any) {
	validate.RegisterCustomTypeFunc(optionalValue, types...)
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. A body that cannot be decoded or that violates
// the validation rules yields a 422 failure.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if errors.Is(err, io.EOF) {
		return failure.Validation("request body is required", failure.FieldError{Field: "body", Message: "request body is required"}) //nolint:wrapcheck
	}

	if err != nil {
		return failure.ValidationFromError(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg, fields := details(err)

		return failure.Validation(msg, fields...) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg, fields := details(err)

		return failure.Validation(msg, fields...) //nolint:wrapcheck
	}

	return nil
}
