package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ConfigField describes one configuration key of an adapter or a plugin.
type ConfigField struct {
	Label       string `json:"label"`
	Key         string `json:"key"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder"`
	Description string `json:"description"`
	Default     any    `json:"default"`
}

// Parse converts a command line value to the JSON type the field expects.
// Fields without a known type take the string as is.
func (f ConfigField) Parse(raw string) (any, error) {
	switch strings.ToLower(f.Type) {
	case "boolean", "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: expected true or false, got %q", f.Key, raw)
		}
		return b, nil
	case "number", "int", "integer", "float":
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: expected a number, got %q", f.Key, raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}

// Scheme is an ordered list of fields. The server sends an empty object
// instead of a list when a plugin ships no scheme, which decodes as empty.
type Scheme []ConfigField

func (s *Scheme) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		*s = nil
		return nil
	}
	var fields []ConfigField
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return err
	}
	*s = fields
	return nil
}

// Field looks up a field by key.
func (s Scheme) Field(key string) (ConfigField, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return ConfigField{}, false
}

// Values parses key=value assignments against the scheme. Unknown keys are
// rejected when the scheme is not empty.
func (s Scheme) Values(assignments map[string]string) (map[string]any, error) {
	out := make(map[string]any, len(assignments))
	for key, raw := range assignments {
		field, ok := s.Field(key)
		if !ok {
			if len(s) > 0 {
				return nil, fmt.Errorf("unknown config key %q", key)
			}
			field = ConfigField{Key: key}
		}
		v, err := field.Parse(raw)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

// Complete fills unset keys from field defaults and reports required keys
// that are still missing.
func (s Scheme) Complete(values map[string]any) error {
	var missing []string
	for _, f := range s {
		if _, ok := values[f.Key]; ok {
			continue
		}
		if f.Default != nil {
			values[f.Key] = f.Default
			continue
		}
		if f.Required {
			missing = append(missing, f.Key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}
