package sql

import (
	"fmt"
	"strings"

	"github.com/schemagraph/schemagraph/lib/output"
)

type TableRef struct {
	Schema string
	Table  string
}

func (self *TableRef) Qualified(q output.Quoter) string {
	return q.QualifyTable(self.Schema, self.Table)
}

type TableCreate struct {
	Table      TableRef
	Columns    []ColumnDefinition
	PrimaryKey *PrimaryKeyDefinition
}

func (self *TableCreate) ToSql(q output.Quoter) string {
	defs := []string{}
	for _, col := range self.Columns {
		defs = append(defs, col.GetSql(q))
	}
	if self.PrimaryKey != nil && len(self.PrimaryKey.Columns) > 0 {
		defs = append(defs, self.PrimaryKey.GetSql(q))
	}
	colsql := ""
	if len(defs) > 0 {
		colsql = fmt.Sprintf("\n\t%s\n", strings.Join(defs, ",\n\t"))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s);", self.Table.Qualified(q), colsql)
}

type TableDrop struct {
	Table TableRef
}

func (self *TableDrop) ToSql(q output.Quoter) string {
	return fmt.Sprintf("DROP TABLE %s;", self.Table.Qualified(q))
}
