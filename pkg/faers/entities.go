package faers

import (
	"strconv"
	"time"
)

const (
	// NotMentioned replaces absent or unmapped values in derived tables.
	NotMentioned = "NOT MENTIONED"

	// Unknown replaces absent or unmapped symptom outcomes.
	Unknown = "UNKNOWN"

	// DateLayout is the layout of dates in staged tables and warehouse.
	DateLayout = "2006-01-02"

	// SourceDateLayout is the layout of dates served by openFDA (YYYYMMDD).
	SourceDateLayout = "20060102"
)

// Report is a row of the reports table.
type Report struct {
	SafetyReportVersion int64
	SafetyReportID      int64
	ReportCountry       string
	ReportDate          time.Time
	EventOutcome        string
	SeriousnessOther    string
	SeriousnessDeath    string
}

// Values returns the fields of the row in the order of ReportsTable columns.
func (r Report) Values() []string {
	return []string{
		itoa(r.SafetyReportVersion),
		itoa(r.SafetyReportID),
		r.ReportCountry,
		r.ReportDate.Format(DateLayout),
		r.EventOutcome,
		r.SeriousnessOther,
		r.SeriousnessDeath,
	}
}

// Patient is a row of the patients table. There is exactly one patient
// per report, and PatientID equals the report's SafetyReportID.
type Patient struct {
	PatientID int64
	VersionID int64
	// Age is the onset age as reported, or NotMentioned.
	Age string
	// Weight is the weight in kg rounded to an integer, or NotMentioned.
	Weight string
	Sex    string
}

// Values returns the fields of the row in the order of PatientsTable columns.
func (p Patient) Values() []string {
	return []string{
		itoa(p.PatientID),
		itoa(p.VersionID),
		p.Age,
		p.Weight,
		p.Sex,
	}
}

// Symptom is a row of the symptoms table, one per reaction of a report.
// SymptomID is the report's SafetyReportID and is not unique.
type Symptom struct {
	SymptomID int64
	Name      string
	Outcome   string
}

// Values returns the fields of the row in the order of SymptomsTable columns.
func (s Symptom) Values() []string {
	return []string{itoa(s.SymptomID), s.Name, s.Outcome}
}

// Drug is a row of the drugs table, one per drug the reporter suspected
// to cause the event. DrugID is the report's SafetyReportID and is not
// unique.
type Drug struct {
	DrugID         int64
	Type           string
	TradeName      string
	ActualPurpose  string
	ActiveChemical string
}

// Values returns the fields of the row in the order of DrugsTable columns.
func (d Drug) Values() []string {
	return []string{
		itoa(d.DrugID),
		d.Type,
		d.TradeName,
		d.ActualPurpose,
		d.ActiveChemical,
	}
}

// Batch is the output of one normalization run.
type Batch struct {
	Reports  []Report
	Patients []Patient
	Symptoms []Symptom
	Drugs    []Drug
}

// Rows returns the rows of the given table as string records.
func (b *Batch) Rows(id TableID) [][]string {
	switch id {
	case ReportsID:
		return values(b.Reports)
	case PatientsID:
		return values(b.Patients)
	case SymptomsID:
		return values(b.Symptoms)
	case DrugsID:
		return values(b.Drugs)
	}
	return nil
}

func values[T interface{ Values() []string }](rows []T) [][]string {
	res := make([][]string, len(rows))
	for i := range rows {
		res[i] = rows[i].Values()
	}
	return res
}

func itoa(i int64) string {
	return strconv.FormatInt(i, 10)
}
