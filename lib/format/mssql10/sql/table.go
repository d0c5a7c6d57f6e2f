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
	defs := make([]string, 0, len(self.Columns)+1)
	for _, col := range self.Columns {
		defs = append(defs, col.GetSql(q))
	}
	if self.PrimaryKey != nil && len(self.PrimaryKey.Columns) > 0 {
		defs = append(defs, self.PrimaryKey.GetSql(q))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n);", self.Table.Qualified(q), strings.Join(defs, ",\n\t"))
}

type TableDrop struct {
	Table TableRef
}

func (self *TableDrop) ToSql(q output.Quoter) string {
	return fmt.Sprintf("DROP TABLE %s;", self.Table.Qualified(q))
}

// SchemaTransfer moves a securable into another schema.
type SchemaTransfer struct {
	Table     TableRef
	NewSchema string
}

func (self *SchemaTransfer) ToSql(q output.Quoter) string {
	return fmt.Sprintf("ALTER SCHEMA %s TRANSFER %s;", q.QuoteSchema(self.NewSchema), self.Table.Qualified(q))
}

type RenameKind string

const (
	RenameKindDefault RenameKind = ""
	RenameKindColumn  RenameKind = "COLUMN"
	RenameKindObject  RenameKind = "OBJECT"
)

// Rename calls sp_rename. Object is the already quoted and qualified current
// name, NewName is the bare new name.
type Rename struct {
	Object  string
	NewName string
	Kind    RenameKind
}

func (self *Rename) ToSql(q output.Quoter) string {
	if self.Kind == RenameKindDefault {
		return fmt.Sprintf("EXEC sp_rename %s, %s;", q.LiteralString(self.Object), q.LiteralString(self.NewName))
	}
	return fmt.Sprintf("EXEC sp_rename %s, %s, %s;",
		q.LiteralString(self.Object), q.LiteralString(self.NewName), q.LiteralString(string(self.Kind)))
}
