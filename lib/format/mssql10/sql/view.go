package sql

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/schemagraph/schemagraph/lib/output"
)

var createViewPrefix = regexp.MustCompile(`(?is)^\s*CREATE\s+(OR\s+ALTER\s+)?VIEW\b`)
var createProcPrefix = regexp.MustCompile(`(?is)^\s*CREATE\s+(OR\s+ALTER\s+)?PROC(EDURE)?\b`)

type ObjectRef struct {
	Schema string
	Object string
}

func (self *ObjectRef) Qualified(q output.Quoter) string {
	return q.QualifyObject(self.Schema, self.Object)
}

// Exec runs a statement through EXEC so that statements which must start a
// batch, like CREATE VIEW, can share one transaction with everything else.
type Exec struct {
	Statement output.ToSql
}

func (self *Exec) ToSql(q output.Quoter) string {
	return fmt.Sprintf("EXEC(%s);", q.LiteralString(self.Statement.ToSql(q)))
}

// ViewCreate accepts either a bare query or a complete CREATE VIEW statement.
type ViewCreate struct {
	View    ObjectRef
	Query   string
	OrAlter bool
}

func (self *ViewCreate) ToSql(q output.Quoter) string {
	verb := "CREATE"
	if self.OrAlter {
		verb = "CREATE OR ALTER"
	}
	query := strings.TrimSpace(self.Query)
	if createViewPrefix.MatchString(query) {
		return createViewPrefix.ReplaceAllString(query, verb+" VIEW")
	}
	return fmt.Sprintf("%s VIEW %s AS\n%s", verb, self.View.Qualified(q), strings.TrimSuffix(query, ";"))
}

type ViewDrop struct {
	View ObjectRef
}

func (self *ViewDrop) ToSql(q output.Quoter) string {
	return fmt.Sprintf("DROP VIEW %s;", self.View.Qualified(q))
}

// ProcedureCreate takes the complete CREATE PROCEDURE source.
type ProcedureCreate struct {
	Definition string
	OrAlter    bool
}

func (self *ProcedureCreate) ToSql(q output.Quoter) string {
	def := strings.TrimSpace(self.Definition)
	if !self.OrAlter {
		return def
	}
	return createProcPrefix.ReplaceAllString(def, "CREATE OR ALTER PROCEDURE")
}

type ProcedureDrop struct {
	Procedure ObjectRef
}

func (self *ProcedureDrop) ToSql(q output.Quoter) string {
	return fmt.Sprintf("DROP PROCEDURE %s;", self.Procedure.Qualified(q))
}
