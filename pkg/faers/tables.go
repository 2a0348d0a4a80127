package faers

// TableID identifies one of the four derived tables.
type TableID string

const (
	ReportsID  TableID = "reports"
	PatientsID TableID = "patients"
	SymptomsID TableID = "symptoms"
	DrugsID    TableID = "drugs"
)

// Kind is the warehouse type of a column.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindDate
)

// Column describes one column of a derived table.
type Column struct {
	Name string
	Kind Kind
}

// Table describes the columns of a derived table. The warehouse table
// name is configurable and not part of the description.
type Table struct {
	ID      TableID
	Columns []Column
}

// Header returns the column names, used as the CSV header row.
func (t Table) Header() []string {
	res := make([]string, len(t.Columns))
	for i, v := range t.Columns {
		res[i] = v.Name
	}
	return res
}

var (
	ReportsTable = Table{
		ID: ReportsID,
		Columns: []Column{
			{"safetyreportversion", KindInt},
			{"safetyreportid", KindInt},
			{"reportcountry", KindText},
			{"reportdate", KindDate},
			{"eventoutcome", KindText},
			{"seriousnessother", KindText},
			{"seriousnessdeath", KindText},
		},
	}

	PatientsTable = Table{
		ID: PatientsID,
		Columns: []Column{
			{"patientid", KindInt},
			{"version_id", KindInt},
			{"patientage", KindText},
			{"patientweight", KindText},
			{"patientsex", KindText},
		},
	}

	SymptomsTable = Table{
		ID: SymptomsID,
		Columns: []Column{
			{"symptomid", KindInt},
			{"symptomname", KindText},
			{"symptomoutcome", KindText},
		},
	}

	DrugsTable = Table{
		ID: DrugsID,
		Columns: []Column{
			{"drugid", KindInt},
			{"drugtype", KindText},
			{"drugtradename", KindText},
			{"drugactualpurpose", KindText},
			{"drugactivechemical", KindText},
		},
	}
)

// Tables returns descriptions of all derived tables in load order.
func Tables() []Table {
	return []Table{ReportsTable, PatientsTable, SymptomsTable, DrugsTable}
}
