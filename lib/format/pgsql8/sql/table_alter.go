package sql

import (
	"fmt"

	"github.com/schemagraph/schemagraph/lib/output"
)

type TableAlterParts struct {
	Table TableRef
	Parts []TableAlterPart
}
type TableAlterPart interface {
	GetAlterPartSql(q output.Quoter) string
}

func NewTableAlter(table TableRef, parts ...TableAlterPart) *TableAlterParts {
	return &TableAlterParts{table, parts}
}

// ToSql renders nothing when every part is empty.
func (tap *TableAlterParts) ToSql(q output.Quoter) string {
	parts := ""
	for _, part := range tap.Parts {
		partSql := part.GetAlterPartSql(q)
		if partSql == "" {
			continue
		}
		if parts != "" {
			parts += ","
		}
		parts += "\n  " + partSql
	}
	if parts == "" {
		return ""
	}
	return fmt.Sprintf("ALTER TABLE %s%s;", tap.Table.Qualified(q), parts)
}

type TableAlterPartRename struct {
	Name string
}

func (t *TableAlterPartRename) GetAlterPartSql(q output.Quoter) string {
	return fmt.Sprintf("RENAME TO %s", q.QuoteTable(t.Name))
}

type TableAlterPartSetSchema struct {
	Name string
}

func (t *TableAlterPartSetSchema) GetAlterPartSql(q output.Quoter) string {
	return fmt.Sprintf("SET SCHEMA %s", q.QuoteSchema(t.Name))
}

type TableAlterPartColumnAdd struct {
	Column ColumnDefinition
}

func (t *TableAlterPartColumnAdd) GetAlterPartSql(q output.Quoter) string {
	return "ADD COLUMN " + t.Column.GetSql(q)
}

type TableAlterPartColumnDrop struct {
	Column string
}

func (t *TableAlterPartColumnDrop) GetAlterPartSql(q output.Quoter) string {
	return fmt.Sprintf("DROP COLUMN %s", q.QuoteColumn(t.Column))
}

type TableAlterPartColumnRename struct {
	Column  string
	NewName string
}

func (t *TableAlterPartColumnRename) GetAlterPartSql(q output.Quoter) string {
	return fmt.Sprintf("RENAME COLUMN %s TO %s", q.QuoteColumn(t.Column), q.QuoteColumn(t.NewName))
}

type TableAlterPartColumnType struct {
	Column string
	Type   string
}

func (t *TableAlterPartColumnType) GetAlterPartSql(q output.Quoter) string {
	return fmt.Sprintf("ALTER COLUMN %s TYPE %s", q.QuoteColumn(t.Column), t.Type)
}

type TableAlterPartColumnSetNull struct {
	Column   string
	Nullable bool
}

func (t *TableAlterPartColumnSetNull) GetAlterPartSql(q output.Quoter) string {
	if t.Nullable {
		return fmt.Sprintf("ALTER COLUMN %s DROP NOT NULL", q.QuoteColumn(t.Column))
	}
	return fmt.Sprintf("ALTER COLUMN %s SET NOT NULL", q.QuoteColumn(t.Column))
}

type TableAlterPartColumnSetDefault struct {
	Column  string
	Default string
}

func (t *TableAlterPartColumnSetDefault) GetAlterPartSql(q output.Quoter) string {
	return fmt.Sprintf("ALTER COLUMN %s SET DEFAULT %s", q.QuoteColumn(t.Column), t.Default)
}

type TableAlterPartColumnDropDefault struct {
	Column string
}

func (t *TableAlterPartColumnDropDefault) GetAlterPartSql(q output.Quoter) string {
	return fmt.Sprintf("ALTER COLUMN %s DROP DEFAULT", q.QuoteColumn(t.Column))
}

type TableAlterPartConstraintRename struct {
	Constraint string
	NewName    string
}

func (t *TableAlterPartConstraintRename) GetAlterPartSql(q output.Quoter) string {
	return fmt.Sprintf("RENAME CONSTRAINT %s TO %s", q.QuoteObject(t.Constraint), q.QuoteObject(t.NewName))
}
