package sql

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/schemagraph/schemagraph/lib/output"
)

var createViewPrefix = regexp.MustCompile(`(?is)^\s*CREATE\s+(OR\s+REPLACE\s+)?VIEW\b`)
var createProcPrefix = regexp.MustCompile(`(?is)^\s*CREATE\s+(OR\s+REPLACE\s+)?PROCEDURE\b`)

type ObjectRef struct {
	Schema string
	Object string
}

func (self *ObjectRef) Qualified(q output.Quoter) string {
	return q.QualifyObject(self.Schema, self.Object)
}

// ViewCreate accepts either a bare query or a complete CREATE VIEW statement.
type ViewCreate struct {
	View  ObjectRef
	Query string
}

func (self *ViewCreate) ToSql(q output.Quoter) string {
	query := strings.TrimSuffix(strings.TrimSpace(self.Query), ";")
	if createViewPrefix.MatchString(query) {
		return createViewPrefix.ReplaceAllString(query, "CREATE VIEW") + ";"
	}
	return fmt.Sprintf("CREATE VIEW %s\n AS %s;", self.View.Qualified(q), query)
}

type ViewDrop struct {
	View ObjectRef
}

func (self *ViewDrop) ToSql(q output.Quoter) string {
	return fmt.Sprintf("DROP VIEW IF EXISTS %s;", self.View.Qualified(q))
}

// ProcedureCreate takes the complete CREATE PROCEDURE source.
type ProcedureCreate struct {
	Definition string
}

func (self *ProcedureCreate) ToSql(q output.Quoter) string {
	def := strings.TrimSuffix(strings.TrimSpace(self.Definition), ";")
	return createProcPrefix.ReplaceAllString(def, "CREATE OR REPLACE PROCEDURE") + ";"
}

type ProcedureDrop struct {
	Procedure ObjectRef
}

func (self *ProcedureDrop) ToSql(q output.Quoter) string {
	return fmt.Sprintf("DROP PROCEDURE IF EXISTS %s;", self.Procedure.Qualified(q))
}
