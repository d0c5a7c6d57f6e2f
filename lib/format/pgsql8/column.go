package pgsql8

import (
	"fmt"
	"strings"

	"github.com/schemagraph/schemagraph/lib/format/pgsql8/sql"
	"github.com/schemagraph/schemagraph/lib/ir"
)

var lengthTypes = map[string]bool{
	"char": true, "character": true, "character varying": true, "varchar": true,
}

// mssqlTypes maps designer types that PostgreSQL spells differently.
var mssqlTypes = map[string]string{
	"nvarchar":         "varchar",
	"nchar":            "char",
	"ntext":            "text",
	"bit":              "boolean",
	"datetime":         "timestamp",
	"datetime2":        "timestamp",
	"datetimeoffset":   "timestamptz",
	"uniqueidentifier": "uuid",
	"varbinary":        "bytea",
	"tinyint":          "smallint",
	"float":            "double precision",
}

// FormatDataType renders the column type. Designer types borrowed from SQL
// Server are translated; types that already carry arguments pass through.
func (self *Dialect) FormatDataType(col *ir.Column) string {
	dataType := strings.TrimSpace(col.DataType)
	if strings.ContainsRune(dataType, '(') {
		return dataType
	}
	lower := strings.ToLower(dataType)
	if mapped, ok := mssqlTypes[lower]; ok {
		lower = mapped
	}
	switch {
	case lengthTypes[lower]:
		if col.MaxLength > 0 {
			return fmt.Sprintf("%s(%d)", lower, col.MaxLength)
		}
		if col.MaxLength == ir.MaxLengthUnbounded {
			return "text"
		}
	case lower == "decimal" || lower == "numeric":
		if col.Precision > 0 {
			return fmt.Sprintf("%s(%d,%d)", lower, col.Precision, col.Scale)
		}
	}
	return lower
}

func (self *Dialect) columnDefinition(col *ir.Column) sql.ColumnDefinition {
	def := sql.ColumnDefinition{
		Name:     col.Name,
		Type:     self.FormatDataType(col),
		Nullable: col.IsNullable,
	}
	switch {
	case col.IsComputed:
		def.Computed = &sql.Computed{Expression: strings.TrimSpace(col.ComputedFormula)}
	case col.IsIdentity:
		def.Identity = &sql.Identity{Start: col.IdentitySeed, Increment: col.IdentityIncrement}
		if def.Identity.Start == 0 {
			def.Identity.Start = 1
		}
		if def.Identity.Increment == 0 {
			def.Identity.Increment = 1
		}
	default:
		def.Default = ir.NormalizeDefault(col.DefaultValue)
	}
	return def
}
