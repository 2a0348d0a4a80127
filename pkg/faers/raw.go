// Package faers contains the data model of FDA adverse event reports:
// the raw records served by the openFDA drug event API and the four
// tables they are normalized into.
package faers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RawReport is one record of the `results` array of the openFDA drug
// event API. Only the fields used by normalization are modeled.
// SafetyReportID and SafetyReportVersion identify a report and become
// foreign keys of every derived table.
type RawReport struct {
	SafetyReportID      Scalar `json:"safetyreportid"`
	SafetyReportVersion Scalar `json:"safetyreportversion"`
	OccurCountry        Scalar `json:"occurcountry"`
	ReceiptDate         Scalar `json:"receiptdate"`
	Serious             Scalar `json:"serious"`
	SeriousnessOther    Scalar `json:"seriousnessother"`
	SeriousnessDeath    Scalar `json:"seriousnessdeath"`

	// Patient is the nested patient sub-document. It is kept undecoded
	// because after staging it arrives as text that encodes the object.
	Patient json.RawMessage `json:"patient"`
}

// RawPatient is the `patient` sub-document of a report.
type RawPatient struct {
	OnsetAge  Scalar        `json:"patientonsetage"`
	Weight    Scalar        `json:"patientweight"`
	Sex       Scalar        `json:"patientsex"`
	Reactions []RawReaction `json:"reaction"`
	Drugs     []RawDrug     `json:"drug"`
}

// RawReaction is one reaction (symptom) experienced by the patient.
type RawReaction struct {
	MedDRAPT Scalar `json:"reactionmeddrapt"`
	Outcome  Scalar `json:"reactionoutcome"`
}

// RawDrug is one drug taken by the patient.
type RawDrug struct {
	// Characterization is "1" for drugs the reporter suspects to be the
	// cause, "2" for concomitant and "3" for interacting drugs.
	Characterization Scalar              `json:"drugcharacterization"`
	MedicinalProduct Scalar              `json:"medicinalproduct"`
	Indication       Scalar              `json:"drugindication"`
	ActiveSubstance  *RawActiveSubstance `json:"activesubstance"`
	OpenFDA          *RawOpenFDA         `json:"openfda"`
}

// RawActiveSubstance holds the active ingredient of a drug.
type RawActiveSubstance struct {
	Name Scalar `json:"activesubstancename"`
}

// RawOpenFDA holds harmonized fields added by openFDA.
type RawOpenFDA struct {
	ProductType ProductType `json:"product_type"`
}

// ProductType is the openFDA `product_type` field. The API serves a
// list of strings, but flattened sources render it as one string that
// may carry list decoration, for example "['HUMAN OTC DRUG']".
type ProductType []string

// UnmarshalJSON implements json.Unmarshaler.
func (p *ProductType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = nil
		return nil
	}
	if data[0] == '[' {
		var ss []Scalar
		if err := json.Unmarshal(data, &ss); err != nil {
			return fmt.Errorf("cannot decode product_type list: %w", err)
		}
		res := make(ProductType, 0, len(ss))
		for _, v := range ss {
			if v.Valid {
				res = append(res, v.Value)
			}
		}
		*p = res
		return nil
	}

	var s Scalar
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("cannot decode product_type: %w", err)
	}
	if s.Valid {
		*p = ProductType{s.Value}
	}
	return nil
}

// String joins the product types with ", ".
func (p ProductType) String() string {
	return strings.Join(p, ", ")
}
