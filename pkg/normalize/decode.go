package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/faersetl/faersetl/pkg/faers"
	"github.com/gnames/gnlib"
)

// Decoder translates a raw scalar into the value stored in a derived
// table.
type Decoder func(faers.Scalar) (string, error)

// total adapts a decoder that cannot fail.
func total(fn func(faers.Scalar) string) Decoder {
	return func(s faers.Scalar) (string, error) {
		return fn(s), nil
	}
}

var (
	seriousCodes = map[string]string{
		"1": "The adverse event resulted in a life threatening condition",
		"2": "The adverse event did not result in any serious condition",
	}

	yesNoCodes = map[string]string{
		"1": "YES",
		"2": "NO",
	}

	sexCodes = map[string]string{
		"1": "Male",
		"2": "Female",
	}

	outcomeCodes = map[string]string{
		"1": "Recovered",
		"2": "Recovering",
		"3": "Not Recovered",
		"4": "Recovered with consequent health issues",
		"5": "Fatal",
		"6": faers.Unknown,
	}
)

// SuspectDrug is the characterization code of drugs the reporter
// considered to be the cause of the event. Characterizations are compared
// after Code, so the float rendering "1.0" is a suspect drug as well.
const SuspectDrug = "1"

// Code returns the canonical form of a categorical code. Codes rendered
// as floats ("1.0") are reduced to integers ("1"). Floats outside of the
// int64 range are returned as text. Absent values give an empty string.
func Code(s faers.Scalar) string {
	if !s.Valid {
		return ""
	}
	res := strings.TrimSpace(s.Value)
	if i, err := strconv.ParseInt(res, 10, 64); err == nil {
		return strconv.FormatInt(i, 10)
	}
	if f, err := strconv.ParseFloat(res, 64); err == nil &&
		f == math.Trunc(f) && math.Abs(f) < maxInt &&
		!strings.ContainsAny(res, "eE") {
		return strconv.FormatInt(int64(f), 10)
	}
	return res
}

// maxInt is 2^63, the smallest float that does not fit into int64.
const maxInt = 1 << 63

func lookup(codes map[string]string, s faers.Scalar, dflt string) string {
	if res, ok := codes[Code(s)]; ok {
		return res
	}
	return dflt
}

// DecodeSerious translates the `serious` code into an event outcome.
func DecodeSerious(s faers.Scalar) string {
	return lookup(seriousCodes, s, faers.NotMentioned)
}

// DecodeYesNo translates seriousness flags (1 - YES, 2 - NO).
func DecodeYesNo(s faers.Scalar) string {
	return lookup(yesNoCodes, s, faers.NotMentioned)
}

// DecodeSex translates `patientsex` (1 - Male, 2 - Female).
func DecodeSex(s faers.Scalar) string {
	return lookup(sexCodes, s, faers.NotMentioned)
}

// DecodeOutcome translates `reactionoutcome`. Missing, zero and unmapped
// codes are UNKNOWN.
func DecodeOutcome(s faers.Scalar) string {
	return lookup(outcomeCodes, s, faers.Unknown)
}

// DecodeText trims a free-text value and replaces invalid UTF-8
// sequences. Absent and blank values are NOT MENTIONED.
func DecodeText(s faers.Scalar) string {
	res := strings.TrimSpace(gnlib.FixUtf8(s.Value))
	if !s.Valid || res == "" {
		return faers.NotMentioned
	}
	return res
}

// DecodeProductType removes list decoration from a product type and
// falls back to NOT MENTIONED.
func DecodeProductType(s faers.Scalar) string {
	if !s.Valid {
		return faers.NotMentioned
	}
	return DecodeText(faers.S(StripListDecoration(s.Value)))
}

// DecodeWeight rounds weight to an integer, halves to even. Absent
// values and weights that round to zero are NOT MENTIONED.
func DecodeWeight(s faers.Scalar) (string, error) {
	val := strings.TrimSpace(s.Value)
	if !s.Valid || val == "" {
		return faers.NotMentioned, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("weight %q is not a number", val)
	}
	r := math.RoundToEven(f)
	if math.Abs(r) >= maxInt {
		return "", fmt.Errorf("weight %q is out of range", val)
	}
	w := int64(r)
	if w == 0 {
		return faers.NotMentioned, nil
	}
	return strconv.FormatInt(w, 10), nil
}

// StripListDecoration reduces a textual rendering of a list, like
// "['HUMAN OTC DRUG']", to its bare elements joined by ", ".
// Values without brackets are only trimmed.
func StripListDecoration(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return s
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	res := make([]string, 0, len(parts))
	for _, v := range parts {
		v = strings.Trim(strings.TrimSpace(v), `'"`)
		if v != "" {
			res = append(res, v)
		}
	}
	return strings.Join(res, ", ")
}

// parseID converts a report id or version into an integer. Absent
// values become 0, the same key a genuine zero id gets.
func parseID(s faers.Scalar) (int64, error) {
	if !s.Valid || strings.TrimSpace(s.Value) == "" {
		return 0, nil
	}
	code := Code(s)
	res, err := strconv.ParseInt(code, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s.Value)
	}
	return res, nil
}
