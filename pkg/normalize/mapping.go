package normalize

import (
	"github.com/faersetl/faersetl/pkg/faers"
)

// fieldMap maps one source field of S to one column of the row T.
// Mapping tables below are the single place where source fields,
// warehouse columns and decoders are tied together.
type fieldMap[S, T any] struct {
	source string
	target string
	get    func(*S) faers.Scalar
	decode Decoder
	set    func(*T, string)
}

func apply[S, T any](fields []fieldMap[S, T], src *S, dst *T) error {
	for _, f := range fields {
		val, err := f.decode(f.get(src))
		if err != nil {
			return &fieldError{field: f.source, err: err}
		}
		f.set(dst, val)
	}
	return nil
}

var reportFields = []fieldMap[faers.RawReport, faers.Report]{
	{
		source: "occurcountry",
		target: "reportcountry",
		get:    func(r *faers.RawReport) faers.Scalar { return r.OccurCountry },
		decode: total(DecodeText),
		set:    func(r *faers.Report, v string) { r.ReportCountry = v },
	},
	{
		source: "serious",
		target: "eventoutcome",
		get:    func(r *faers.RawReport) faers.Scalar { return r.Serious },
		decode: total(DecodeSerious),
		set:    func(r *faers.Report, v string) { r.EventOutcome = v },
	},
	{
		source: "seriousnessother",
		target: "seriousnessother",
		get:    func(r *faers.RawReport) faers.Scalar { return r.SeriousnessOther },
		decode: total(DecodeYesNo),
		set:    func(r *faers.Report, v string) { r.SeriousnessOther = v },
	},
	{
		source: "seriousnessdeath",
		target: "seriousnessdeath",
		get:    func(r *faers.RawReport) faers.Scalar { return r.SeriousnessDeath },
		decode: total(DecodeYesNo),
		set:    func(r *faers.Report, v string) { r.SeriousnessDeath = v },
	},
}

var patientFields = []fieldMap[faers.RawPatient, faers.Patient]{
	{
		source: "patient.patientonsetage",
		target: "patientage",
		get:    func(p *faers.RawPatient) faers.Scalar { return p.OnsetAge },
		decode: total(DecodeText),
		set:    func(p *faers.Patient, v string) { p.Age = v },
	},
	{
		source: "patient.patientweight",
		target: "patientweight",
		get:    func(p *faers.RawPatient) faers.Scalar { return p.Weight },
		decode: DecodeWeight,
		set:    func(p *faers.Patient, v string) { p.Weight = v },
	},
	{
		source: "patient.patientsex",
		target: "patientsex",
		get:    func(p *faers.RawPatient) faers.Scalar { return p.Sex },
		decode: total(DecodeSex),
		set:    func(p *faers.Patient, v string) { p.Sex = v },
	},
}

var symptomFields = []fieldMap[faers.RawReaction, faers.Symptom]{
	{
		source: "patient.reaction.reactionmeddrapt",
		target: "symptomname",
		get:    func(r *faers.RawReaction) faers.Scalar { return r.MedDRAPT },
		decode: total(DecodeText),
		set:    func(s *faers.Symptom, v string) { s.Name = v },
	},
	{
		source: "patient.reaction.reactionoutcome",
		target: "symptomoutcome",
		get:    func(r *faers.RawReaction) faers.Scalar { return r.Outcome },
		decode: total(DecodeOutcome),
		set:    func(s *faers.Symptom, v string) { s.Outcome = v },
	},
}

var drugFields = []fieldMap[faers.RawDrug, faers.Drug]{
	{
		source: "patient.drug.openfda.product_type",
		target: "drugtype",
		get:    productType,
		decode: total(DecodeProductType),
		set:    func(d *faers.Drug, v string) { d.Type = v },
	},
	{
		source: "patient.drug.medicinalproduct",
		target: "drugtradename",
		get:    func(d *faers.RawDrug) faers.Scalar { return d.MedicinalProduct },
		decode: total(DecodeText),
		set:    func(d *faers.Drug, v string) { d.TradeName = v },
	},
	{
		source: "patient.drug.drugindication",
		target: "drugactualpurpose",
		get:    func(d *faers.RawDrug) faers.Scalar { return d.Indication },
		decode: total(DecodeText),
		set:    func(d *faers.Drug, v string) { d.ActualPurpose = v },
	},
	{
		source: "patient.drug.activesubstance.activesubstancename",
		target: "drugactivechemical",
		get:    activeSubstance,
		decode: total(DecodeText),
		set:    func(d *faers.Drug, v string) { d.ActiveChemical = v },
	},
}

func productType(d *faers.RawDrug) faers.Scalar {
	if d.OpenFDA == nil || len(d.OpenFDA.ProductType) == 0 {
		return faers.Scalar{}
	}
	return faers.S(d.OpenFDA.ProductType.String())
}

func activeSubstance(d *faers.RawDrug) faers.Scalar {
	if d.ActiveSubstance == nil {
		return faers.Scalar{}
	}
	return d.ActiveSubstance.Name
}

// Mapping describes one source-to-column mapping of a derived table.
type Mapping struct {
	Source string
	Target string
}

// Mappings returns the field mappings of a derived table, for audit
// and documentation. Key columns are not included, they always come
// from `safetyreportid` and `safetyreportversion`.
func Mappings(id faers.TableID) []Mapping {
	switch id {
	case faers.ReportsID:
		return mappings(reportFields)
	case faers.PatientsID:
		return mappings(patientFields)
	case faers.SymptomsID:
		return mappings(symptomFields)
	case faers.DrugsID:
		return mappings(drugFields)
	}
	return nil
}

func mappings[S, T any](fields []fieldMap[S, T]) []Mapping {
	res := make([]Mapping, len(fields))
	for i, v := range fields {
		res[i] = Mapping{Source: v.source, Target: v.target}
	}
	return res
}
