package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/faersetl/faersetl/pkg/faers"
)

var errPatientShape = errors.New("patient is neither an object nor a JSON string")

// ParsePatient decodes the patient sub-document of a report. The
// sub-document is either a JSON object, or a JSON string that contains
// the serialized object (the form it takes after a round trip through
// the raw stage). The string is parsed as data exactly once, it is never
// evaluated. An absent or null patient gives an empty RawPatient.
func ParsePatient(raw json.RawMessage) (*faers.RawPatient, error) {
	data := bytes.TrimSpace(raw)
	if isNull(data) {
		return &faers.RawPatient{}, nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("cannot unquote patient: %w", err)
		}
		data = bytes.TrimSpace([]byte(s))
		if isNull(data) {
			return &faers.RawPatient{}, nil
		}
	}

	if data[0] != '{' {
		return nil, errPatientShape
	}

	var res faers.RawPatient
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("cannot decode patient: %w", err)
	}
	return &res, nil
}

func isNull(data []byte) bool {
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}
