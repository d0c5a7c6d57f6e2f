package mssql10

import (
	"fmt"
	"strings"

	"github.com/schemagraph/schemagraph/lib/format/mssql10/sql"
	"github.com/schemagraph/schemagraph/lib/ir"
)

var lengthTypes = map[string]bool{
	"binary": true, "char": true, "nchar": true, "nvarchar": true, "varbinary": true, "varchar": true,
}
var fractionalTimeTypes = map[string]bool{
	"datetime2": true, "datetimeoffset": true, "time": true,
}

// FormatDataType renders the column type with its length, precision or scale.
// A type that already carries arguments is passed through.
func (self *Dialect) FormatDataType(col *ir.Column) string {
	dataType := strings.TrimSpace(col.DataType)
	if strings.ContainsRune(dataType, '(') {
		return strings.ToUpper(dataType)
	}
	lower := strings.ToLower(dataType)
	upper := strings.ToUpper(dataType)
	switch {
	case lengthTypes[lower]:
		if col.MaxLength == ir.MaxLengthUnbounded {
			return upper + "(MAX)"
		}
		if col.MaxLength > 0 {
			return fmt.Sprintf("%s(%d)", upper, col.MaxLength)
		}
	case lower == "decimal" || lower == "numeric":
		if col.Precision > 0 {
			return fmt.Sprintf("%s(%d, %d)", upper, col.Precision, col.Scale)
		}
	case fractionalTimeTypes[lower]:
		if col.Scale > 0 {
			return fmt.Sprintf("%s(%d)", upper, col.Scale)
		}
	case lower == "float":
		if col.Precision > 0 {
			return fmt.Sprintf("%s(%d)", upper, col.Precision)
		}
	}
	return upper
}

func defaultConstraintName(table *ir.Table, col *ir.Column) string {
	return defaultConstraintNameFor(table.Name, col.Name)
}

// defaultConstraintNameFor is the name every default this dialect creates is
// given. Renames carry it along, so it always matches the current names.
func defaultConstraintNameFor(table, column string) string {
	return fmt.Sprintf("DF_%s_%s", table, column)
}

func hasDefaultConstraint(col *ir.Column) bool {
	return !col.IsComputed && ir.NormalizeDefault(col.DefaultValue) != ""
}

func (self *Dialect) columnDefinition(table *ir.Table, col *ir.Column) sql.ColumnDefinition {
	def := sql.ColumnDefinition{
		Name:     col.Name,
		Type:     self.FormatDataType(col),
		Nullable: col.IsNullable,
	}
	if col.IsComputed {
		def.Computed = &sql.Computed{
			Formula:   strings.TrimSpace(col.ComputedFormula),
			Persisted: col.ComputedPersisted,
		}
		return def
	}
	if col.IsIdentity {
		def.Identity = &sql.Identity{Seed: col.IdentitySeed, Increment: col.IdentityIncrement}
		if def.Identity.Increment == 0 {
			def.Identity.Increment = 1
		}
	}
	if hasDefaultConstraint(col) {
		def.Default = ir.NormalizeDefault(col.DefaultValue)
		def.DefaultName = defaultConstraintName(table, col)
	}
	return def
}
