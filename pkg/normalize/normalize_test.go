package normalize_test

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/faersetl/faersetl/pkg/errcode"
	"github.com/faersetl/faersetl/pkg/faers"
	"github.com/faersetl/faersetl/pkg/normalize"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aspirinReport = `{
  "safetyreportid": "123",
  "safetyreportversion": "1",
  "occurcountry": "US",
  "receiptdate": "20210304",
  "serious": "1",
  "seriousnessother": "1",
  "patient": {
    "patientonsetage": "45",
    "patientweight": "70.6",
    "patientsex": "1",
    "reaction": [
      {"reactionmeddrapt": "Nausea", "reactionoutcome": "1"}
    ],
    "drug": [
      {
        "drugcharacterization": "1",
        "medicinalproduct": "Aspirin",
        "drugindication": "Pain",
        "activesubstance": {"activesubstancename": "Acetylsalicylic acid"},
        "openfda": {"product_type": "['Human']"}
      },
      {
        "drugcharacterization": "2",
        "medicinalproduct": "Ibuprofen",
        "drugindication": "Fever"
      }
    ]
  }
}`

func rawReport(t *testing.T, s string) faers.RawReport {
	var res faers.RawReport
	err := json.Unmarshal([]byte(s), &res)
	require.NoError(t, err)
	return res
}

func TestNormalizeAspirin(t *testing.T) {
	assert := assert.New(t)
	n := normalize.New()
	b, err := n.Normalize([]faers.RawReport{rawReport(t, aspirinReport)})
	require.NoError(t, err)

	require.Len(t, b.Reports, 1)
	assert.Equal(faers.Report{
		SafetyReportVersion: 1,
		SafetyReportID:      123,
		ReportCountry:       "US",
		ReportDate:          time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC),
		EventOutcome:        "The adverse event resulted in a life threatening condition",
		SeriousnessOther:    "YES",
		SeriousnessDeath:    faers.NotMentioned,
	}, b.Reports[0])

	assert.Equal([]faers.Patient{{
		PatientID: 123, VersionID: 1, Age: "45", Weight: "71", Sex: "Male",
	}}, b.Patients)

	assert.Equal([]faers.Symptom{{
		SymptomID: 123, Name: "Nausea", Outcome: "Recovered",
	}}, b.Symptoms)

	assert.Equal([]faers.Drug{{
		DrugID:         123,
		Type:           "Human",
		TradeName:      "Aspirin",
		ActualPurpose:  "Pain",
		ActiveChemical: "Acetylsalicylic acid",
	}}, b.Drugs)
}

func TestNormalizeStringPatient(t *testing.T) {
	raw := rawReport(t, aspirinReport)
	patient, err := json.Marshal(string(raw.Patient))
	require.NoError(t, err)
	strRaw := raw
	strRaw.Patient = patient

	n := normalize.New()
	b1, err := n.Normalize([]faers.RawReport{raw})
	require.NoError(t, err)
	b2, err := n.Normalize([]faers.RawReport{strRaw})
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestNormalizeEmpty(t *testing.T) {
	n := normalize.New()
	b, err := n.Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, b.Reports)
	assert.Empty(t, b.Patients)
	assert.Empty(t, b.Symptoms)
	assert.Empty(t, b.Drugs)
}

func TestNormalizeMissing(t *testing.T) {
	assert := assert.New(t)
	n := normalize.New()
	raw := rawReport(t, `{
    "safetyreportid": "7", "receiptdate": "20200101",
    "patient": {"reaction": [{}], "drug": [{"drugcharacterization": 1}]}
  }`)
	b, err := n.Normalize([]faers.RawReport{raw})
	require.NoError(t, err)

	nm := faers.NotMentioned
	assert.Equal(faers.Report{
		SafetyReportID: 7,
		ReportDate:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		ReportCountry:  nm, EventOutcome: nm,
		SeriousnessOther: nm, SeriousnessDeath: nm,
	}, b.Reports[0])
	assert.Equal(faers.Patient{PatientID: 7, Age: nm, Weight: nm, Sex: nm},
		b.Patients[0])
	assert.Equal(faers.Symptom{SymptomID: 7, Name: nm, Outcome: faers.Unknown},
		b.Symptoms[0])
	assert.Equal(faers.Drug{DrugID: 7, Type: nm, TradeName: nm,
		ActualPurpose: nm, ActiveChemical: nm}, b.Drugs[0])
}

func TestNormalizeNoPatient(t *testing.T) {
	n := normalize.New()
	raw := rawReport(t, `{"safetyreportid": "8", "receiptdate": "20200101"}`)
	b, err := n.Normalize([]faers.RawReport{raw})
	require.NoError(t, err)
	assert.Len(t, b.Reports, 1)
	assert.Len(t, b.Patients, 1)
	assert.Empty(t, b.Symptoms)
	assert.Empty(t, b.Drugs)
}

func TestNormalizeMalformed(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		field string
	}{
		{
			"bad id",
			`{"safetyreportid": "abc", "receiptdate": "20200101"}`,
			"safetyreportid",
		},
		{
			"bad version",
			`{"safetyreportid": "1", "safetyreportversion": "v2",
        "receiptdate": "20200101"}`,
			"safetyreportversion",
		},
		{
			"no date",
			`{"safetyreportid": "1"}`,
			"receiptdate",
		},
		{
			"bad date",
			`{"safetyreportid": "1", "receiptdate": "2020-01-01"}`,
			"receiptdate",
		},
		{
			"patient is a list",
			`{"safetyreportid": "1", "receiptdate": "20200101", "patient": []}`,
			"patient",
		},
		{
			"patient string is not JSON",
			`{"safetyreportid": "1", "receiptdate": "20200101",
        "patient": "{'patientsex': '1'}"}`,
			"patient",
		},
		{
			"reaction is not a list",
			`{"safetyreportid": "1", "receiptdate": "20200101",
        "patient": {"reaction": {"reactionoutcome": "1"}}}`,
			"patient",
		},
		{
			"bad weight",
			`{"safetyreportid": "1", "receiptdate": "20200101",
        "patient": {"patientweight": "heavy"}}`,
			"patient.patientweight",
		},
		{
			"id beyond int64",
			`{"safetyreportid": "99999999999999999999", "receiptdate": "20200101"}`,
			"safetyreportid",
		},
		{
			"weight out of range",
			`{"safetyreportid": "1", "receiptdate": "20200101",
        "patient": {"patientweight": "1e300"}}`,
			"patient.patientweight",
		},
	}

	n := normalize.New()
	for _, v := range tests {
		good := rawReport(t, aspirinReport)
		raws := []faers.RawReport{good, rawReport(t, v.input)}
		b, err := n.Normalize(raws)
		require.Error(t, err, v.msg)
		assert.Nil(t, b, v.msg)

		var ge *gn.Error
		require.True(t, errors.As(err, &ge), v.msg)
		assert.Equal(t, errcode.NormalizeMalformedRecordError, ge.Code, v.msg)

		var mre *normalize.MalformedRecordError
		require.True(t, errors.As(ge.Err, &mre), v.msg)
		assert.Equal(t, v.field, mre.Field, v.msg)
	}
}

func TestNormalizeProperties(t *testing.T) {
	assert := assert.New(t)
	var raws []faers.RawReport
	for i := range 20 {
		raw := rawReport(t, aspirinReport)
		raw.SafetyReportID = faers.S(strconv.Itoa(1000 + i))
		raws = append(raws, raw)
	}

	n := normalize.New()
	b, err := n.Normalize(raws)
	require.NoError(t, err)

	assert.Len(b.Reports, len(raws))
	assert.Len(b.Patients, len(raws))
	for i := range raws {
		assert.Equal(b.Reports[i].SafetyReportID, b.Patients[i].PatientID)
		assert.Equal(int64(1000+i), b.Reports[i].SafetyReportID)
	}
	for _, v := range b.Symptoms {
		assert.NotEmpty(v.Outcome)
	}
	for _, v := range b.Drugs {
		assert.NotEqual("", v.Type)
	}
	// only suspect drugs survive
	assert.Len(b.Drugs, len(raws))

	b2, err := n.Normalize(raws)
	require.NoError(t, err)
	assert.Equal(b, b2)
}

func TestNormalizeCounts(t *testing.T) {
	tests := []struct {
		msg      string
		input    string
		symptoms int
		drugs    int
	}{
		{
			"three reactions",
			`{"safetyreportid": "1", "receiptdate": "20200101",
        "patient": {"reaction": [
          {"reactionmeddrapt": "Nausea", "reactionoutcome": "1"},
          {"reactionmeddrapt": "Rash", "reactionoutcome": "7"},
          {"reactionmeddrapt": "Fever"}
        ]}}`,
			3, 0,
		},
		{
			"empty reaction list",
			`{"safetyreportid": "2", "receiptdate": "20200101",
        "patient": {"reaction": []}}`,
			0, 0,
		},
		{
			"no suspect drugs",
			`{"safetyreportid": "3", "receiptdate": "20200101",
        "patient": {"drug": [
          {"drugcharacterization": "2", "medicinalproduct": "A"},
          {"drugcharacterization": "3", "medicinalproduct": "B"}
        ]}}`,
			0, 0,
		},
		{
			"mixed drugs",
			`{"safetyreportid": "4", "receiptdate": "20200101",
        "patient": {"drug": [
          {"drugcharacterization": "1", "medicinalproduct": "A"},
          {"drugcharacterization": "2", "medicinalproduct": "B"},
          {"drugcharacterization": "1", "medicinalproduct": "C"},
          {"drugcharacterization": "3", "medicinalproduct": "D"},
          {"drugcharacterization": "1", "medicinalproduct": "E"},
          {"drugcharacterization": "1.0", "medicinalproduct": "F"}
        ]}}`,
			0, 4,
		},
	}

	var raws []faers.RawReport
	for _, v := range tests {
		raws = append(raws, rawReport(t, v.input))
	}
	n := normalize.New()
	b, err := n.Normalize(raws)
	require.NoError(t, err)
	assert.Len(t, b.Reports, len(tests))
	assert.Len(t, b.Patients, len(tests))

	symptoms := make(map[int64]int)
	for _, v := range b.Symptoms {
		symptoms[v.SymptomID]++
	}
	drugs := make(map[int64][]string)
	for _, v := range b.Drugs {
		drugs[v.DrugID] = append(drugs[v.DrugID], v.TradeName)
	}

	for i, v := range tests {
		id := int64(i + 1)
		assert.Equal(t, v.symptoms, symptoms[id], v.msg)
		assert.Len(t, drugs[id], v.drugs, v.msg)
	}
	assert.Equal(t, []string{"A", "C", "E", "F"}, drugs[4])

	var outcomes []string
	for _, v := range b.Symptoms {
		outcomes = append(outcomes, v.Outcome)
	}
	assert.Equal(t, []string{"Recovered", faers.Unknown, faers.Unknown}, outcomes)
}

func TestMappings(t *testing.T) {
	for _, tbl := range faers.Tables() {
		ms := normalize.Mappings(tbl.ID)
		require.NotEmpty(t, ms, string(tbl.ID))
		header := tbl.Header()
		for _, m := range ms {
			assert.Contains(t, header, m.Target, string(tbl.ID))
		}
	}
	assert.Nil(t, normalize.Mappings(faers.TableID("nope")))
}
