package mssql10

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/schemagraph/schemagraph/lib/format"
	"github.com/schemagraph/schemagraph/lib/format/mssql10/sql"
	"github.com/schemagraph/schemagraph/lib/ir"
	"github.com/schemagraph/schemagraph/lib/output"
)

func init() {
	format.Register(ir.SqlFormatMssql10, func() format.Dialect {
		return NewDialect()
	})
}

var dataTypes = []string{
	"bigint", "binary", "bit", "char", "date", "datetime", "datetime2", "datetimeoffset",
	"decimal", "float", "geography", "geometry", "hierarchyid", "image", "int", "money",
	"nchar", "ntext", "numeric", "nvarchar", "real", "rowversion", "smalldatetime", "smallint",
	"smallmoney", "sql_variant", "text", "time", "timestamp", "tinyint", "uniqueidentifier",
	"varbinary", "varchar", "xml",
}

// Dialect generates SQL Server 2008+ DDL.
type Dialect struct {
	*sql.Quoter
}

func NewDialect() *Dialect {
	return &Dialect{Quoter: sql.NewQuoter()}
}

func (self *Dialect) Name() ir.SqlFormat {
	return ir.SqlFormatMssql10
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
	return nil, errors.Errorf("mssql10 has no generator for %s", kind)
}

func (self *Dialect) DefaultSchema() string {
	return self.Quoter.DefaultSchema
}

func (self *Dialect) DataTypes() []string {
	return append([]string(nil), dataTypes...)
}

// WrapInTransaction aborts the whole script on the first error.
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
	seg.SetHeader(
		output.NewRawSQL("SET XACT_ABORT ON;"),
		output.NewRawSQL("BEGIN TRANSACTION;"),
	)
	seg.AppendFooter(output.NewRawSQL("COMMIT TRANSACTION;"))
	return seg.String()
}

func (self *Dialect) render(stmts ...output.ToSql) []string {
	return output.Render(self, stmts...)
}
