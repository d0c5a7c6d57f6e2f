package mssql10

import (
	"strings"

	"github.com/schemagraph/schemagraph/lib/format/mssql10/sql"
	"github.com/schemagraph/schemagraph/lib/ir"
	"github.com/schemagraph/schemagraph/lib/output"
	"github.com/schemagraph/schemagraph/lib/util"
)

type TableGenerator struct {
	dialect *Dialect
}

func tableRef(table *ir.Table) sql.TableRef {
	return sql.TableRef{Schema: table.Schema, Table: table.Name}
}

func (self *TableGenerator) CreateTable(table *ir.Table) []string {
	create := &sql.TableCreate{
		Table: tableRef(table),
		Columns: util.Map(table.Columns, func(col *ir.Column) sql.ColumnDefinition {
			return self.dialect.columnDefinition(table, col)
		}),
	}
	if table.HasPrimaryKey() {
		create.PrimaryKey = &sql.PrimaryKeyDefinition{
			Name:    table.PrimaryKeyConstraintName(),
			Columns: table.PrimaryKeyColumns(),
		}
	}
	return self.dialect.render(create)
}

func (self *TableGenerator) DropTable(table *ir.Table) []string {
	return self.dialect.render(&sql.TableDrop{Table: tableRef(table)})
}

// RenameTable also renames the default constraints of the table's columns,
// which are named after the table.
func (self *TableGenerator) RenameTable(table *ir.Table, newName string) []string {
	stmts := []output.ToSql{&sql.Rename{
		Object:  self.dialect.QualifyTable(table.Schema, table.Name),
		NewName: newName,
	}}
	for _, col := range table.Columns {
		if hasDefaultConstraint(col) {
			stmts = append(stmts, &sql.DefaultConstraintRenameIfExists{
				Table:      sql.TableRef{Schema: table.Schema, Table: newName},
				Constraint: defaultConstraintNameFor(table.Name, col.Name),
				NewName:    defaultConstraintNameFor(newName, col.Name),
			})
		}
	}
	return self.dialect.render(stmts...)
}

func (self *TableGenerator) MoveTableToSchema(table *ir.Table, newSchema string) []string {
	return self.dialect.render(&sql.SchemaTransfer{Table: tableRef(table), NewSchema: newSchema})
}

func (self *TableGenerator) GenerateFullTableScript(table *ir.Table) []string {
	out := self.CreateTable(table)
	for _, fk := range table.ForeignKeys {
		out = append(out, self.AddForeignKey(table, fk)...)
	}
	return out
}

func (self *TableGenerator) AddColumn(table *ir.Table, col *ir.Column) []string {
	return self.dialect.render(&sql.ColumnAdd{
		Table:  tableRef(table),
		Column: self.dialect.columnDefinition(table, col),
	})
}

// DropColumn removes the column's default first, since SQL Server refuses to
// drop a column a default constraint is bound to.
func (self *TableGenerator) DropColumn(table *ir.Table, col *ir.Column) []string {
	var dropDefault output.ToSql
	if hasDefaultConstraint(col) {
		dropDefault = &sql.DefaultConstraintDropIfExists{
			Table:      tableRef(table),
			Constraint: defaultConstraintName(table, col),
		}
	}
	return self.dialect.render(
		dropDefault,
		&sql.ColumnDrop{Table: tableRef(table), Column: col.Name},
	)
}

// AlterColumn changes type and nullability in place. A bound default is dropped
// around a type change and re-created afterwards.
func (self *TableGenerator) AlterColumn(table *ir.Table, from, to *ir.Column) []string {
	ref := tableRef(table)
	oldDefault := ir.NormalizeDefault(from.DefaultValue)
	newDefault := ir.NormalizeDefault(to.DefaultValue)
	oldType := self.dialect.FormatDataType(from)
	newType := self.dialect.FormatDataType(to)
	typeChanged := !strings.EqualFold(oldType, newType) || from.IsNullable != to.IsNullable
	defaultChanged := oldDefault != newDefault

	stmts := []output.ToSql{}
	if oldDefault != "" && (defaultChanged || typeChanged) {
		stmts = append(stmts, &sql.DefaultConstraintDropIfExists{
			Table:      ref,
			Constraint: defaultConstraintName(table, to),
		})
	}
	if typeChanged {
		stmts = append(stmts, &sql.ColumnAlter{
			Table:    ref,
			Column:   to.Name,
			Type:     newType,
			Nullable: to.IsNullable,
		})
	}
	if newDefault != "" && (defaultChanged || typeChanged) {
		stmts = append(stmts, &sql.DefaultConstraintCreate{
			Table:      ref,
			Constraint: defaultConstraintName(table, to),
			Column:     to.Name,
			Default:    newDefault,
		})
	}
	return self.dialect.render(stmts...)
}

// RenameColumn renames the column's default constraint too, when it has one.
func (self *TableGenerator) RenameColumn(table *ir.Table, oldName, newName string) []string {
	return self.dialect.render(
		&sql.Rename{
			Object:  self.dialect.QualifyTable(table.Schema, table.Name) + "." + self.dialect.QuoteColumn(oldName),
			NewName: newName,
			Kind:    sql.RenameKindColumn,
		},
		&sql.DefaultConstraintRenameIfExists{
			Table:      tableRef(table),
			Constraint: defaultConstraintNameFor(table.Name, oldName),
			NewName:    defaultConstraintNameFor(table.Name, newName),
		},
	)
}

func (self *TableGenerator) AddPrimaryKey(table *ir.Table) []string {
	if !table.HasPrimaryKey() {
		return nil
	}
	return self.dialect.render(&sql.ConstraintCreatePrimaryKey{
		Table: tableRef(table),
		PrimaryKey: sql.PrimaryKeyDefinition{
			Name:    table.PrimaryKeyConstraintName(),
			Columns: table.PrimaryKeyColumns(),
		},
	})
}

func (self *TableGenerator) DropPrimaryKey(table *ir.Table) []string {
	return self.dialect.render(&sql.ConstraintDrop{
		Table:      tableRef(table),
		Constraint: table.PrimaryKeyConstraintName(),
	})
}

func (self *TableGenerator) AddForeignKey(table *ir.Table, fk *ir.ForeignKey) []string {
	return self.dialect.render(&sql.ConstraintCreateForeignKey{
		Table:          tableRef(table),
		Constraint:     fk.Name,
		LocalColumns:   fk.Columns,
		ForeignTable:   sql.TableRef{Schema: fk.ReferencedSchema(table), Table: fk.ReferencedTableName},
		ForeignColumns: fk.ReferencedColumns,
		OnDelete:       fk.OnDeleteAction,
		OnUpdate:       fk.OnUpdateAction,
	})
}

func (self *TableGenerator) DropForeignKey(table *ir.Table, fk *ir.ForeignKey) []string {
	return self.dialect.render(&sql.ConstraintDrop{Table: tableRef(table), Constraint: fk.Name})
}

func (self *TableGenerator) RenameForeignKey(table *ir.Table, oldName, newName string) []string {
	return self.dialect.render(&sql.Rename{
		Object:  self.dialect.QualifyObject(table.Schema, oldName),
		NewName: newName,
		Kind:    sql.RenameKindObject,
	})
}
