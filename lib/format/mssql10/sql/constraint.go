package sql

import (
	"fmt"
	"strings"

	"github.com/schemagraph/schemagraph/lib/ir"
	"github.com/schemagraph/schemagraph/lib/output"
	"github.com/schemagraph/schemagraph/lib/util"
)

func quoteColumns(q output.Quoter, cols []string) string {
	return strings.Join(util.Map(cols, q.QuoteColumn), ", ")
}

type PrimaryKeyDefinition struct {
	Name    string
	Columns []string
}

func (self *PrimaryKeyDefinition) GetSql(q output.Quoter) string {
	return fmt.Sprintf("CONSTRAINT %s PRIMARY KEY (%s)", q.QuoteObject(self.Name), quoteColumns(q, self.Columns))
}

type ConstraintDrop struct {
	Table      TableRef
	Constraint string
}

func (self *ConstraintDrop) ToSql(q output.Quoter) string {
	return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s;", self.Table.Qualified(q), q.QuoteObject(self.Constraint))
}

type ConstraintCreatePrimaryKey struct {
	Table      TableRef
	PrimaryKey PrimaryKeyDefinition
}

func (self *ConstraintCreatePrimaryKey) ToSql(q output.Quoter) string {
	return fmt.Sprintf("ALTER TABLE %s ADD %s;", self.Table.Qualified(q), self.PrimaryKey.GetSql(q))
}

type ConstraintCreateForeignKey struct {
	Table          TableRef
	Constraint     string
	LocalColumns   []string
	ForeignTable   TableRef
	ForeignColumns []string
	OnUpdate       ir.ForeignKeyAction
	OnDelete       ir.ForeignKeyAction
}

func (self *ConstraintCreateForeignKey) ToSql(q output.Quoter) string {
	onDelete := ""
	if !self.OnDelete.Equals(ir.ForeignKeyActionNoAction) {
		onDelete = "ON DELETE " + self.OnDelete.Sql()
	}
	onUpdate := ""
	if !self.OnUpdate.Equals(ir.ForeignKeyActionNoAction) {
		onUpdate = "ON UPDATE " + self.OnUpdate.Sql()
	}
	return util.CondJoin(" ",
		fmt.Sprintf(
			"ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
			self.Table.Qualified(q),
			q.QuoteObject(self.Constraint),
			quoteColumns(q, self.LocalColumns),
			self.ForeignTable.Qualified(q),
			quoteColumns(q, self.ForeignColumns),
		),
		onDelete,
		onUpdate,
	) + ";"
}
