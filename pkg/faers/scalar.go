package faers

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Scalar is a JSON scalar kept as its textual form. openFDA serves almost
// every value as a string, but numbers and booleans are accepted too, so
// that `"45"` and `45` produce the same Scalar.
type Scalar struct {
	// Value is the text of the scalar. Numbers keep their JSON spelling.
	Value string
	// Valid is false for absent and null values.
	Valid bool
}

// S creates a valid Scalar.
func S(s string) Scalar {
	return Scalar{Value: s, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = Scalar{}
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = S(str)
	case '{', '[':
		return fmt.Errorf("expected scalar, got %s", kind(data[0]))
	default:
		// numbers and booleans
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*s = S(n.String())
			return nil
		}
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("cannot decode scalar %q: %w", data, err)
		}
		*s = S(fmt.Sprint(b))
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Scalars are always written
// as strings, or null when not valid.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

func kind(b byte) string {
	if b == '{' {
		return "object"
	}
	return "array"
}
