// Package schema describes warehouse tables. GORM models serve
// PostgreSQL AutoMigrate, plain DDL generated from faers.Table serves
// the SQLite warehouse.
package schema

import "time"

// Report is the warehouse model of the reports table.
type Report struct {
	SafetyReportVersion int64     `gorm:"column:safetyreportversion"`
	SafetyReportID      int64     `gorm:"column:safetyreportid"`
	ReportCountry       string    `gorm:"column:reportcountry;type:text"`
	ReportDate          time.Time `gorm:"column:reportdate;type:date"`
	EventOutcome        string    `gorm:"column:eventoutcome;type:text"`
	SeriousnessOther    string    `gorm:"column:seriousnessother;type:text"`
	SeriousnessDeath    string    `gorm:"column:seriousnessdeath;type:text"`
}

// Patient is the warehouse model of the patients table.
type Patient struct {
	PatientID     int64  `gorm:"column:patientid"`
	VersionID     int64  `gorm:"column:version_id"`
	PatientAge    string `gorm:"column:patientage;type:text"`
	PatientWeight string `gorm:"column:patientweight;type:text"`
	PatientSex    string `gorm:"column:patientsex;type:text"`
}

// Symptom is the warehouse model of the symptoms table. SymptomID
// repeats the report id and is not unique.
type Symptom struct {
	SymptomID      int64  `gorm:"column:symptomid"`
	SymptomName    string `gorm:"column:symptomname;type:text"`
	SymptomOutcome string `gorm:"column:symptomoutcome;type:text"`
}

// Drug is the warehouse model of the drugs table.
type Drug struct {
	DrugID             int64  `gorm:"column:drugid"`
	DrugType           string `gorm:"column:drugtype;type:text"`
	DrugTradeName      string `gorm:"column:drugtradename;type:text"`
	DrugActualPurpose  string `gorm:"column:drugactualpurpose;type:text"`
	DrugActiveChemical string `gorm:"column:drugactivechemical;type:text"`
}
