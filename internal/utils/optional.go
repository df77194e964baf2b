package utils

import (
	"bytes"
	"encoding/json"
)

// OptionalString distinguishes an absent JSON field from an explicit null or
// a wrongly-typed value. Decoding never fails; validation happens in the
// service layer so each field can report its own error code.
type OptionalString struct {
	Set       bool
	Null      bool
	Malformed bool
	Value     string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		o.Malformed = true
	}
	return nil
}

// OptionalNumber is the numeric counterpart of OptionalString.
type OptionalNumber struct {
	Set       bool
	Null      bool
	Malformed bool
	Value     float64
}

func (o *OptionalNumber) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		o.Malformed = true
	}
	return nil
}
