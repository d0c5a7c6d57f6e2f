package pgsql8

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/schemagraph/schemagraph/lib/format"
	"github.com/schemagraph/schemagraph/lib/format/pgsql8/sql"
	"github.com/schemagraph/schemagraph/lib/ir"
	"github.com/schemagraph/schemagraph/lib/output"
)

func init() {
	format.Register(ir.SqlFormatPgsql8, func() format.Dialect {
		return NewDialect()
	})
}

var dataTypes = []string{
	"bigint", "bigserial", "bit", "boolean", "bytea", "char", "character", "character varying",
	"cidr", "date", "decimal", "double precision", "inet", "integer", "int", "interval", "json",
	"jsonb", "macaddr", "money", "numeric", "real", "serial", "smallint", "smallserial", "text",
	"time", "timestamp", "timestamptz", "tsvector", "uuid", "varchar", "xml",
}

// Dialect generates PostgreSQL DDL.
type Dialect struct {
	*sql.Quoter
}

func NewDialect() *Dialect {
	return &Dialect{Quoter: sql.NewQuoter()}
}

func (self *Dialect) Name() ir.SqlFormat {
	return ir.SqlFormatPgsql8
}

func (self *Dialect) Syntax() format.Syntax {
	return self
}

func (self *Dialect) Tables() format.TableGenerator {
	return &TableGenerator{dialect: self}
}

func (self *Dialect) CodeObjects(kind ir.ObjectKind) (format.CodeObjectGenerator, error) {
	switch kind {
	case ir.ObjectKindView:
		return &ViewGenerator{dialect: self}, nil
	case ir.ObjectKindProcedure:
		return &ProcedureGenerator{dialect: self}, nil
	}
	return nil, errors.Errorf("pgsql8 has no generator for %s", kind)
}

func (self *Dialect) DefaultSchema() string {
	return self.Quoter.DefaultSchema
}

func (self *Dialect) DataTypes() []string {
	return append([]string(nil), dataTypes...)
}

func (self *Dialect) WrapInTransaction(statements []string) string {
	seg := output.NewSegmenter(self)
	for _, stmt := range statements {
		if strings.TrimSpace(stmt) != "" {
			seg.WriteSql(output.NewRawSQL("%s", stmt))
		}
	}
	if !seg.HasBody() {
		return ""
	}
	seg.SetHeader(output.NewRawSQL("BEGIN;"))
	seg.AppendFooter(output.NewRawSQL("COMMIT;"))
	return seg.String()
}

// render drops statements that rendered empty, such as an ALTER TABLE without parts.
func (self *Dialect) render(stmts ...output.ToSql) []string {
	out := []string{}
	for _, stmt := range output.Render(self, stmts...) {
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
