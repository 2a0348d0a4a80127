package schema

import (
	"fmt"
	"strings"

	"github.com/faersetl/faersetl/pkg/faers"
	"github.com/jackc/pgx/v5"
)

// sqliteTypes maps column kinds to SQLite column types. Dates are kept
// as ISO text, which sorts and compares correctly.
var sqliteTypes = map[faers.Kind]string{
	faers.KindInt:  "INTEGER",
	faers.KindText: "TEXT",
	faers.KindDate: "TEXT",
}

// SQLiteDDL returns the CREATE TABLE statement of a derived table
// stored under the given name.
func SQLiteDDL(name string, t faers.Table) string {
	cols := make([]string, len(t.Columns))
	for i, v := range t.Columns {
		cols[i] = fmt.Sprintf("    %s %s",
			pgx.Identifier{v.Name}.Sanitize(), sqliteTypes[v.Kind])
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		pgx.Identifier{name}.Sanitize(),
		strings.Join(cols, ",\n"))
}
