package sse

import (
	"encoding/json"
	"errors"
)

// ErrNotJSON is returned by Payload.Decode when the payload is a raw string.
var ErrNotJSON = errors.New("payload is not JSON")

// Payload is the decoded data of an event: either a JSON value or, when the
// data was not valid JSON, the raw string.
type Payload struct {
	raw    string
	value  any
	isJSON bool
}

// ParsePayload parses data as JSON. When parsing fails the raw string is kept
// verbatim; it never returns an error.
func ParsePayload(data string) Payload {
	var v any
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return Payload{raw: data}
	}
	return Payload{raw: data, value: v, isJSON: true}
}

// RawPayload builds a non-JSON payload.
func RawPayload(s string) Payload {
	return Payload{raw: s}
}

// IsJSON reports whether the data parsed as JSON.
func (p Payload) IsJSON() bool {
	return p.isJSON
}

// Value returns the decoded JSON value for JSON payloads and the raw string
// otherwise.
func (p Payload) Value() any {
	if p.isJSON {
		return p.value
	}
	return p.raw
}

// Raw returns the data exactly as received.
func (p Payload) Raw() string {
	return p.raw
}

// String returns the string field named key of a JSON object payload.
func (p Payload) String(key string) (string, bool) {
	obj, ok := p.value.(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := obj[key].(string)
	return s, ok
}

// Decode unmarshals a JSON payload into v.
func (p Payload) Decode(v any) error {
	if !p.isJSON {
		return ErrNotJSON
	}
	return json.Unmarshal([]byte(p.raw), v)
}

// MarshalJSON encodes JSON payloads as-is and raw payloads as a JSON string.
func (p Payload) MarshalJSON() ([]byte, error) {
	if p.isJSON {
		return []byte(p.raw), nil
	}
	return json.Marshal(p.raw)
}
