package entity

import "encoding/json"

// OptString is a string field that distinguishes "absent" from "empty".
// The server contract treats a missing field and an explicit empty string
// differently, so a plain string (or *string) is not enough.
// With the omitzero tag an unset value is dropped on encode.
type OptString struct {
	Value string
	Set   bool
}

// StringOf wraps a present value.
func StringOf(v string) OptString {
	return OptString{Value: v, Set: true}
}

// Or returns the value, or fallback when the field is absent.
func (o OptString) Or(fallback string) string {
	if !o.Set {
		return fallback
	}
	return o.Value
}

func (o OptString) IsZero() bool {
	return !o.Set
}

func (o OptString) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *OptString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = OptString{}
		return nil
	}

	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*o = OptString{Value: v, Set: true}
	return nil
}

// OptInt64 is an int64 field that distinguishes "absent" from zero.
// Used for optional identifiers such as list_thumbnail_id.
type OptInt64 struct {
	Value int64
	Set   bool
}

func Int64Of(v int64) OptInt64 {
	return OptInt64{Value: v, Set: true}
}

func (o OptInt64) IsZero() bool {
	return !o.Set
}

func (o OptInt64) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *OptInt64) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = OptInt64{}
		return nil
	}

	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*o = OptInt64{Value: v, Set: true}
	return nil
}
