package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"taskorganizer/shared/failure"
	"taskorganizer/shared/optional"
	"taskorganizer/shared/validator"
)

// Test structs for validation
type ValidTestStruct struct {
	Name     string `validate:"required,min=1,max=10" json:"name"`
	Age      int    `validate:"gte=0,lte=120" json:"age"`
	Category string `validate:"oneof=user admin guest" json:"category"`
}

type OptionalTestStruct struct {
	Name optional.Value[string] `validate:"omitempty,min=1,max=10" json:"name"`
	Done optional.Value[bool]   `json:"done"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *ValidTestStruct
		expectError bool
	}{
		{
			name:        "valid struct",
			data:        &ValidTestStruct{Name: "John", Age: 25, Category: "user"},
			expectError: false,
		},
		{
			name:        "missing required field",
			data:        &ValidTestStruct{Age: 25, Category: "user"},
			expectError: true,
		},
		{
			name:        "name too long",
			data:        &ValidTestStruct{Name: "Johnathan Doe", Age: 25, Category: "user"},
			expectError: true,
		},
		{
			name:        "age out of range",
			data:        &ValidTestStruct{Name: "John", Age: 150, Category: "user"},
			expectError: true,
		},
		{
			name:        "invalid category",
			data:        &ValidTestStruct{Name: "John", Age: 25, Category: "invalid"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}

			if err != nil && failure.GetCode(err) != http.StatusUnprocessableEntity {
				t.Errorf("expected status 422, got %d", failure.GetCode(err))
			}
		})
	}
}

func TestValidateStruct_OptionalFields(t *testing.T) {
	tests := []struct {
		name        string
		data        *OptionalTestStruct
		expectError bool
	}{
		{
			name:        "omitted fields are not validated",
			data:        &OptionalTestStruct{},
			expectError: false,
		},
		{
			name:        "explicit null is not validated",
			data:        &OptionalTestStruct{Name: optional.Null[string]()},
			expectError: false,
		},
		{
			name:        "supplied valid value",
			data:        &OptionalTestStruct{Name: optional.Of("John"), Done: optional.Of(true)},
			expectError: false,
		},
		{
			name:        "supplied empty value",
			data:        &OptionalTestStruct{Name: optional.Of("")},
			expectError: true,
		},
		{
			name:        "supplied value too long",
			data:        &OptionalTestStruct{Name: optional.Of("Johnathan Doe")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "test",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid number in range",
			field:       25,
			tag:         "gte=0,lte=100",
			expectError: false,
		},
		{
			name:        "number out of range",
			field:       150,
			tag:         "gte=0,lte=100",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"John","age":25,"category":"user"}`,
			expectError: false,
		},
		{
			name:        "invalid JSON",
			jsonBody:    `{"name":"","age":25,"category":"user"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"John","age":}`,
			expectError: true,
		},
		{
			name:        "wrong type",
			jsonBody:    `{"name":123}`,
			expectError: true,
		},
		{
			name:        "empty body",
			jsonBody:    ``,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data ValidTestStruct
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}

			if err != nil && failure.GetCode(err) != http.StatusUnprocessableEntity {
				t.Errorf("expected status 422, got %d", failure.GetCode(err))
			}
		})
	}
}

// Field names in messages come from json tags
func TestValidationMessages(t *testing.T) {
	err := validator.ValidateStruct(&ValidTestStruct{Age: 1, Category: "user"})
	if err == nil {
		t.Fatal("expected validation error for missing name")
	}

	if err.Error() != "name is required" {
		t.Errorf("expected 'name is required', got: %s", err.Error())
	}

	fail, ok := failure.As(err)
	if !ok {
		t.Fatal("expected a failure")
	}

	if len(fail.Details) != 1 || fail.Details[0].Field != "name" {
		t.Errorf("unexpected details: %+v", fail.Details)
	}
}
