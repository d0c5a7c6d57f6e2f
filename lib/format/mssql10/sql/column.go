package sql

import (
	"fmt"

	"github.com/schemagraph/schemagraph/lib/output"
	"github.com/schemagraph/schemagraph/lib/util"
)

type Identity struct {
	Seed      int
	Increment int
}

type Computed struct {
	Formula   string
	Persisted bool
}

// ColumnDefinition is a column as it appears in CREATE TABLE or ADD.
type ColumnDefinition struct {
	Name        string
	Type        string
	Nullable    bool
	Default     string
	DefaultName string
	Identity    *Identity
	Computed    *Computed
}

func (self *ColumnDefinition) GetSql(q output.Quoter) string {
	if self.Computed != nil {
		return util.CondJoin(" ",
			q.QuoteColumn(self.Name),
			fmt.Sprintf("AS (%s)", self.Computed.Formula),
			util.MaybeStr(self.Computed.Persisted, "PERSISTED"),
		)
	}
	identity := ""
	if self.Identity != nil {
		identity = fmt.Sprintf("IDENTITY(%d, %d)", self.Identity.Seed, self.Identity.Increment)
	}
	nullable := "NOT NULL"
	if self.Nullable {
		nullable = "NULL"
	}
	def := ""
	if self.Default != "" {
		def = fmt.Sprintf("CONSTRAINT %s DEFAULT (%s)", q.QuoteObject(self.DefaultName), self.Default)
	}
	return util.CondJoin(" ", q.QuoteColumn(self.Name), self.Type, identity, nullable, def)
}

type ColumnAdd struct {
	Table  TableRef
	Column ColumnDefinition
}

func (self *ColumnAdd) ToSql(q output.Quoter) string {
	return fmt.Sprintf("ALTER TABLE %s ADD %s;", self.Table.Qualified(q), self.Column.GetSql(q))
}

type ColumnDrop struct {
	Table  TableRef
	Column string
}

func (self *ColumnDrop) ToSql(q output.Quoter) string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", self.Table.Qualified(q), q.QuoteColumn(self.Column))
}

// ColumnAlter changes type and nullability. Defaults are separate constraints.
type ColumnAlter struct {
	Table    TableRef
	Column   string
	Type     string
	Nullable bool
}

func (self *ColumnAlter) ToSql(q output.Quoter) string {
	nullable := "NOT NULL"
	if self.Nullable {
		nullable = "NULL"
	}
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s %s;", self.Table.Qualified(q), q.QuoteColumn(self.Column), self.Type, nullable)
}

type DefaultConstraintCreate struct {
	Table      TableRef
	Constraint string
	Column     string
	Default    string
}

func (self *DefaultConstraintCreate) ToSql(q output.Quoter) string {
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s DEFAULT (%s) FOR %s;",
		self.Table.Qualified(q), q.QuoteObject(self.Constraint), self.Default, q.QuoteColumn(self.Column))
}

// DefaultConstraintDropIfExists tolerates the constraint being absent, since a
// column created outside this tool may carry a system generated default name.
type DefaultConstraintDropIfExists struct {
	Table      TableRef
	Constraint string
}

func (self *DefaultConstraintDropIfExists) ToSql(q output.Quoter) string {
	return fmt.Sprintf("IF OBJECT_ID(%s, N'D') IS NOT NULL ALTER TABLE %s DROP CONSTRAINT %s;",
		q.LiteralString(q.QualifyObject(self.Table.Schema, self.Constraint)),
		self.Table.Qualified(q),
		q.QuoteObject(self.Constraint),
	)
}

// DefaultConstraintRenameIfExists keeps a default constraint's name in step
// with its table and column, since sp_rename leaves constraint names alone.
type DefaultConstraintRenameIfExists struct {
	Table      TableRef
	Constraint string
	NewName    string
}

func (self *DefaultConstraintRenameIfExists) ToSql(q output.Quoter) string {
	object := q.QualifyObject(self.Table.Schema, self.Constraint)
	return fmt.Sprintf("IF OBJECT_ID(%s, N'D') IS NOT NULL EXEC sp_rename %s, %s, N'OBJECT';",
		q.LiteralString(object),
		q.LiteralString(object),
		q.LiteralString(self.NewName),
	)
}
