package models

import "encoding/json"

// Optional distinguishes an absent JSON field from one that is present,
// and a present value from an explicit null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON only runs for keys present in the document, which is what
// marks the field as set.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Present reports whether the field carries a usable value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}
