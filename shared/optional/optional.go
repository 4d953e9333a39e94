// Package optional models JSON fields that may be absent, explicitly null, or set.
package optional

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var null = []byte("null")

// Value holds a T together with whether the field appeared in the payload at all.
type Value[T any] struct {
	value   T
	present bool
	null    bool
}

// Of returns a present, non-null Value.
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, present: true}
}

// Null returns a Value that was present but explicitly null.
func Null[T any]() Value[T] {
	return Value[T]{present: true, null: true}
}

// Present reports whether the field appeared in the payload, null or not.
func (v Value[T]) Present() bool {
	return v.present
}

// IsNull reports whether the field appeared as an explicit null.
func (v Value[T]) IsNull() bool {
	return v.null
}

// Get returns the value and true when it was supplied with a non-null value.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.present && !v.null
}

// Ptr returns a *T pointing to the value when supplied and a nil *T otherwise.
// The validator uses it to apply field rules only to supplied values.
func (v Value[T]) Ptr() any {
	if !v.present || v.null {
		return (*T)(nil)
	}

	val := v.value

	return &val
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.present = true

	if bytes.Equal(bytes.TrimSpace(data), null) {
		v.null = true

		var zero T
		v.value = zero

		return nil
	}

	v.null = false
	if err := json.Unmarshal(data, &v.value); err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}

	return nil
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.present || v.null {
		return null, nil
	}

	return json.Marshal(v.value)
}
