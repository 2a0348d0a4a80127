// Package normalize reshapes raw openFDA adverse event reports into the
// reports, patients, symptoms and drugs tables. Normalization is pure:
// it does no I/O and the same input always gives the same output, in
// the same order.
package normalize

import (
	"fmt"
	"time"

	"github.com/faersetl/faersetl/pkg/etl"
	"github.com/faersetl/faersetl/pkg/faers"
)

type normalizer struct{}

// New creates a Normalizer.
func New() etl.Normalizer {
	return normalizer{}
}

// Normalize converts raws into a Batch. Rows of every table keep the
// order of raws, and symptoms and drugs keep the order of their
// source lists. The first malformed report aborts the whole batch.
func (n normalizer) Normalize(raws []faers.RawReport) (*faers.Batch, error) {
	res := &faers.Batch{
		Reports:  make([]faers.Report, 0, len(raws)),
		Patients: make([]faers.Patient, 0, len(raws)),
		Symptoms: make([]faers.Symptom, 0, len(raws)),
		Drugs:    make([]faers.Drug, 0, len(raws)),
	}

	for i := range raws {
		raw := &raws[i]
		if err := n.add(res, raw); err != nil {
			return nil, MalformedError(raw.SafetyReportID.Value, err)
		}
	}
	return res, nil
}

func (n normalizer) add(b *faers.Batch, raw *faers.RawReport) error {
	id, err := parseID(raw.SafetyReportID)
	if err != nil {
		return &fieldError{field: "safetyreportid", err: err}
	}
	version, err := parseID(raw.SafetyReportVersion)
	if err != nil {
		return &fieldError{field: "safetyreportversion", err: err}
	}

	report, err := n.report(raw, id, version)
	if err != nil {
		return err
	}

	rawPatient, err := ParsePatient(raw.Patient)
	if err != nil {
		return &fieldError{field: "patient", err: err}
	}

	patient := faers.Patient{PatientID: id, VersionID: version}
	if err = apply(patientFields, rawPatient, &patient); err != nil {
		return err
	}

	symptoms := make([]faers.Symptom, 0, len(rawPatient.Reactions))
	for i := range rawPatient.Reactions {
		s := faers.Symptom{SymptomID: id}
		if err = apply(symptomFields, &rawPatient.Reactions[i], &s); err != nil {
			return err
		}
		symptoms = append(symptoms, s)
	}

	var drugs []faers.Drug
	for i := range rawPatient.Drugs {
		rd := &rawPatient.Drugs[i]
		if Code(rd.Characterization) != SuspectDrug {
			continue
		}
		d := faers.Drug{DrugID: id}
		if err = apply(drugFields, rd, &d); err != nil {
			return err
		}
		drugs = append(drugs, d)
	}

	b.Reports = append(b.Reports, report)
	b.Patients = append(b.Patients, patient)
	b.Symptoms = append(b.Symptoms, symptoms...)
	b.Drugs = append(b.Drugs, drugs...)
	return nil
}

func (n normalizer) report(
	raw *faers.RawReport,
	id, version int64,
) (faers.Report, error) {
	res := faers.Report{SafetyReportID: id, SafetyReportVersion: version}

	date, err := parseDate(raw.ReceiptDate)
	if err != nil {
		return res, &fieldError{field: "receiptdate", err: err}
	}
	res.ReportDate = date

	if err = apply(reportFields, raw, &res); err != nil {
		return res, err
	}
	return res, nil
}

func parseDate(s faers.Scalar) (time.Time, error) {
	val := Code(s)
	if val == "" {
		return time.Time{}, fmt.Errorf("date is missing")
	}
	res, err := time.Parse(faers.SourceDateLayout, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not YYYYMMDD", s.Value)
	}
	return res, nil
}
