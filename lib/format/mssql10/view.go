package mssql10

import (
	"github.com/schemagraph/schemagraph/lib/format/mssql10/sql"
	"github.com/schemagraph/schemagraph/lib/ir"
)

func objectRef(obj ir.CodeObject) sql.ObjectRef {
	return sql.ObjectRef{Schema: obj.GetSchema(), Object: obj.GetName()}
}

type ViewGenerator struct {
	dialect *Dialect
}

func (self *ViewGenerator) Create(view ir.CodeObject) []string {
	return self.dialect.render(&sql.Exec{Statement: &sql.ViewCreate{
		View:  objectRef(view),
		Query: view.GetDefinition(),
	}})
}

func (self *ViewGenerator) Alter(from, to ir.CodeObject) []string {
	return self.dialect.render(&sql.Exec{Statement: &sql.ViewCreate{
		View:    objectRef(to),
		Query:   to.GetDefinition(),
		OrAlter: true,
	}})
}

func (self *ViewGenerator) Drop(view ir.CodeObject) []string {
	return self.dialect.render(&sql.ViewDrop{View: objectRef(view)})
}

type ProcedureGenerator struct {
	dialect *Dialect
}

func (self *ProcedureGenerator) Create(proc ir.CodeObject) []string {
	return self.dialect.render(&sql.Exec{Statement: &sql.ProcedureCreate{Definition: proc.GetDefinition()}})
}

func (self *ProcedureGenerator) Alter(from, to ir.CodeObject) []string {
	return self.dialect.render(&sql.Exec{Statement: &sql.ProcedureCreate{
		Definition: to.GetDefinition(),
		OrAlter:    true,
	}})
}

func (self *ProcedureGenerator) Drop(proc ir.CodeObject) []string {
	return self.dialect.render(&sql.ProcedureDrop{Procedure: objectRef(proc)})
}
