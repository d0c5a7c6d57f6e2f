package pgsql8

import (
	"github.com/schemagraph/schemagraph/lib/format/pgsql8/sql"
	"github.com/schemagraph/schemagraph/lib/ir"
)

func objectRef(obj ir.CodeObject) sql.ObjectRef {
	return sql.ObjectRef{Schema: obj.GetSchema(), Object: obj.GetName()}
}

type ViewGenerator struct {
	dialect *Dialect
}

func (self *ViewGenerator) Create(view ir.CodeObject) []string {
	return self.dialect.render(&sql.ViewCreate{View: objectRef(view), Query: view.GetDefinition()})
}

// Alter drops and re-creates, since CREATE OR REPLACE VIEW cannot remove or
// retype output columns.
func (self *ViewGenerator) Alter(from, to ir.CodeObject) []string {
	return self.dialect.render(
		&sql.ViewDrop{View: objectRef(from)},
		&sql.ViewCreate{View: objectRef(to), Query: to.GetDefinition()},
	)
}

func (self *ViewGenerator) Drop(view ir.CodeObject) []string {
	return self.dialect.render(&sql.ViewDrop{View: objectRef(view)})
}

type ProcedureGenerator struct {
	dialect *Dialect
}

func (self *ProcedureGenerator) Create(proc ir.CodeObject) []string {
	return self.dialect.render(&sql.ProcedureCreate{Definition: proc.GetDefinition()})
}

func (self *ProcedureGenerator) Alter(from, to ir.CodeObject) []string {
	return self.dialect.render(&sql.ProcedureCreate{Definition: to.GetDefinition()})
}

func (self *ProcedureGenerator) Drop(proc ir.CodeObject) []string {
	return self.dialect.render(&sql.ProcedureDrop{Procedure: objectRef(proc)})
}
