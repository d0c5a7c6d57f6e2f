package pgsql8

import (
	"strings"

	"github.com/schemagraph/schemagraph/lib/format/pgsql8/sql"
	"github.com/schemagraph/schemagraph/lib/ir"
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
		Table:   tableRef(table),
		Columns: util.Map(table.Columns, self.dialect.columnDefinition),
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

func (self *TableGenerator) RenameTable(table *ir.Table, newName string) []string {
	return self.dialect.render(sql.NewTableAlter(tableRef(table), &sql.TableAlterPartRename{Name: newName}))
}

func (self *TableGenerator) MoveTableToSchema(table *ir.Table, newSchema string) []string {
	return self.dialect.render(sql.NewTableAlter(tableRef(table), &sql.TableAlterPartSetSchema{Name: newSchema}))
}

func (self *TableGenerator) GenerateFullTableScript(table *ir.Table) []string {
	out := self.CreateTable(table)
	for _, fk := range table.ForeignKeys {
		out = append(out, self.AddForeignKey(table, fk)...)
	}
	return out
}

func (self *TableGenerator) AddColumn(table *ir.Table, col *ir.Column) []string {
	return self.dialect.render(sql.NewTableAlter(tableRef(table), &sql.TableAlterPartColumnAdd{
		Column: self.dialect.columnDefinition(col),
	}))
}

func (self *TableGenerator) DropColumn(table *ir.Table, col *ir.Column) []string {
	return self.dialect.render(sql.NewTableAlter(tableRef(table), &sql.TableAlterPartColumnDrop{Column: col.Name}))
}

// AlterColumn emits only the parts that changed, in a single ALTER TABLE.
func (self *TableGenerator) AlterColumn(table *ir.Table, from, to *ir.Column) []string {
	parts := []sql.TableAlterPart{}
	newType := self.dialect.FormatDataType(to)
	if !strings.EqualFold(self.dialect.FormatDataType(from), newType) {
		parts = append(parts, &sql.TableAlterPartColumnType{Column: to.Name, Type: newType})
	}
	if from.IsNullable != to.IsNullable {
		parts = append(parts, &sql.TableAlterPartColumnSetNull{Column: to.Name, Nullable: to.IsNullable})
	}
	if oldDefault, newDefault := ir.NormalizeDefault(from.DefaultValue), ir.NormalizeDefault(to.DefaultValue); oldDefault != newDefault {
		if newDefault == "" {
			parts = append(parts, &sql.TableAlterPartColumnDropDefault{Column: to.Name})
		} else {
			parts = append(parts, &sql.TableAlterPartColumnSetDefault{Column: to.Name, Default: newDefault})
		}
	}
	return self.dialect.render(sql.NewTableAlter(tableRef(table), parts...))
}

func (self *TableGenerator) RenameColumn(table *ir.Table, oldName, newName string) []string {
	return self.dialect.render(sql.NewTableAlter(tableRef(table), &sql.TableAlterPartColumnRename{
		Column:  oldName,
		NewName: newName,
	}))
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
	return self.dialect.render(&sql.ConstraintDrop{Table: tableRef(table), Constraint: table.PrimaryKeyConstraintName()})
}

func (self *TableGenerator) AddForeignKey(table *ir.Table, fk *ir.ForeignKey) []string {
	return self.dialect.render(&sql.ConstraintCreateForeignKey{
		Table:          tableRef(table),
		Constraint:     fk.Name,
		LocalColumns:   fk.Columns,
		ForeignTable:   sql.TableRef{Schema: fk.ReferencedSchema(table), Table: fk.ReferencedTableName},
		ForeignColumns: fk.ReferencedColumns,
		OnUpdate:       fk.OnUpdateAction,
		OnDelete:       fk.OnDeleteAction,
	})
}

func (self *TableGenerator) DropForeignKey(table *ir.Table, fk *ir.ForeignKey) []string {
	return self.dialect.render(&sql.ConstraintDrop{Table: tableRef(table), Constraint: fk.Name})
}

func (self *TableGenerator) RenameForeignKey(table *ir.Table, oldName, newName string) []string {
	return self.dialect.render(sql.NewTableAlter(tableRef(table), &sql.TableAlterPartConstraintRename{
		Constraint: oldName,
		NewName:    newName,
	}))
}
