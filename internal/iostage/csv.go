package iostage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/faersetl/faersetl/pkg/faers"
)

// rawHeader lists columns of the raw stage. The patient sub-document
// is kept as JSON text in the last column.
var rawHeader = []string{
	"safetyreportid",
	"safetyreportversion",
	"occurcountry",
	"receiptdate",
	"serious",
	"seriousnessother",
	"seriousnessdeath",
	"patient",
}

// WriteRaw writes raw reports as CSV with a header row.
func WriteRaw(w io.Writer, raws []faers.RawReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rawHeader); err != nil {
		return err
	}
	for i := range raws {
		rec, err := rawRecord(&raws[i])
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if err = cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func rawRecord(r *faers.RawReport) ([]string, error) {
	patient, err := compactPatient(r.Patient)
	if err != nil {
		return nil, err
	}
	return []string{
		r.SafetyReportID.Value,
		r.SafetyReportVersion.Value,
		r.OccurCountry.Value,
		r.ReceiptDate.Value,
		r.Serious.Value,
		r.SeriousnessOther.Value,
		r.SeriousnessDeath.Value,
		patient,
	}, nil
}

// compactPatient returns the patient sub-document as compact JSON text.
// A sub-document that arrives as a JSON string is unquoted first, so the
// cell always holds the object itself. Unquoted text that is not JSON is
// kept as is and rejected during normalization.
func compactPatient(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	var quoted bool
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("patient: %w", err)
		}
		raw = bytes.TrimSpace([]byte(s))
		quoted = true
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		if quoted {
			return string(raw), nil
		}
		return "", fmt.Errorf("patient: %w", err)
	}
	return buf.String(), nil
}

// ReadRaw reads reports written by WriteRaw. Empty cells become absent
// values. The patient text is handed over as a JSON string that encodes
// the sub-document, it is parsed only during normalization.
func ReadRaw(r io.Reader) ([]faers.RawReport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(rawHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("raw stage is empty")
	}
	if err != nil {
		return nil, err
	}
	if !slices.Equal(header, rawHeader) {
		return nil, fmt.Errorf("unexpected raw header %v", header)
	}

	var res []faers.RawReport
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		raw := faers.RawReport{
			SafetyReportID:      cell(rec[0]),
			SafetyReportVersion: cell(rec[1]),
			OccurCountry:        cell(rec[2]),
			ReceiptDate:         cell(rec[3]),
			Serious:             cell(rec[4]),
			SeriousnessOther:    cell(rec[5]),
			SeriousnessDeath:    cell(rec[6]),
		}
		if rec[7] != "" {
			if raw.Patient, err = json.Marshal(rec[7]); err != nil {
				return nil, err
			}
		}
		res = append(res, raw)
	}
	return res, nil
}

func cell(s string) faers.Scalar {
	if s == "" {
		return faers.Scalar{}
	}
	return faers.S(s)
}

// WriteTable writes rows of a derived table as CSV with a header row.
func WriteTable(w io.Writer, t faers.Table, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// TableReader reads records of a staged derived table one by one.
// Records are not required to have the right number of fields, that is
// checked by the consumer.
type TableReader struct {
	cr *csv.Reader
}

// NewTableReader checks the header row of a staged table.
func NewTableReader(r io.Reader, t faers.Table) (*TableReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("table %s: no header", t.ID)
	}
	if err != nil {
		return nil, err
	}
	if !slices.Equal(header, t.Header()) {
		return nil, fmt.Errorf("table %s: unexpected header %v", t.ID, header)
	}
	return &TableReader{cr: cr}, nil
}

// Read returns the next record and its line number. It returns io.EOF
// after the last record. A *csv.ParseError affects only one record,
// reading can continue after it.
func (tr *TableReader) Read() ([]string, int, error) {
	rec, err := tr.cr.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, pe.StartLine, err
		}
		return nil, 0, err
	}
	line, _ := tr.cr.FieldPos(0)
	return rec, line, nil
}

// ReadTable reads all records of a staged table.
func ReadTable(r io.Reader, t faers.Table) ([][]string, error) {
	tr, err := NewTableReader(r, t)
	if err != nil {
		return nil, err
	}
	var res [][]string
	for {
		rec, _, err := tr.Read()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
}
