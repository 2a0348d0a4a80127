package schema_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/faersetl/faersetl/pkg/faers"
	"github.com/faersetl/faersetl/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gschema "gorm.io/gorm/schema"
)

func TestModelColumns(t *testing.T) {
	cache := &sync.Map{}
	for _, tbl := range faers.Tables() {
		m := schema.Model(tbl.ID)
		require.NotNil(t, m, string(tbl.ID))
		s, err := gschema.Parse(m, cache, gschema.NamingStrategy{})
		require.NoError(t, err, string(tbl.ID))
		assert.Equal(t, tbl.Header(), s.DBNames, string(tbl.ID))
	}
	assert.Nil(t, schema.Model(faers.TableID("nope")))
}

func TestSQLiteDDL(t *testing.T) {
	tests := []struct {
		msg   string
		name  string
		table faers.Table
		has   []string
	}{
		{
			"symptoms",
			"fda_symptoms",
			faers.SymptomsTable,
			[]string{
				`CREATE TABLE IF NOT EXISTS "fda_symptoms"`,
				`"symptomid" INTEGER`,
				`"symptomname" TEXT`,
				`"symptomoutcome" TEXT`,
			},
		},
		{
			"reports",
			"reports",
			faers.ReportsTable,
			[]string{`"reportdate" TEXT`, `"safetyreportid" INTEGER`},
		},
	}

	for _, v := range tests {
		ddl := schema.SQLiteDDL(v.name, v.table)
		for _, s := range v.has {
			assert.Contains(t, ddl, s, v.msg)
		}
		assert.Equal(t, len(v.table.Columns)-1, strings.Count(ddl, ",\n"), v.msg)
	}
}
