package models

import "encoding/json"

// Field is a patch value that remembers whether the key was present in the
// request body. Set=false means the key was absent; Set=true with Valid=false
// means an explicit null.
type Field[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Value returns a present, non-null field.
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Valid: true, Value: v}
}

// Null returns a present field holding an explicit null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		var zero T
		f.Valid = false
		f.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Valid = true
	return nil
}

// Apply writes the field into a nullable destination when the key was present.
func (f Field[T]) Apply(dst **T) {
	if !f.Set {
		return
	}
	if !f.Valid {
		*dst = nil
		return
	}
	v := f.Value
	*dst = &v
}

// ApplyValue is Apply for destinations whose null is the zero value (slices).
func (f Field[T]) ApplyValue(dst *T) {
	if !f.Set {
		return
	}
	if !f.Valid {
		var zero T
		*dst = zero
		return
	}
	*dst = f.Value
}

// Ptr returns a pointer to the value, or nil when absent or null.
func (f Field[T]) Ptr() *T {
	if !f.Set || !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}
