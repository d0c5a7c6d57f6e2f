package ir

import (
	"fmt"
	"strings"
)

// MaxLengthUnbounded marks a variable-length column without a fixed limit, e.g. NVARCHAR(MAX)
const MaxLengthUnbounded = -1

type Column struct {
	Id                string
	Name              string
	DataType          string
	MaxLength         int
	Precision         int
	Scale             int
	IsNullable        bool
	DefaultValue      string
	IsComputed        bool
	ComputedFormula   string
	ComputedPersisted bool
	IsIdentity        bool
	IdentitySeed      int
	IdentityIncrement int
	IsPrimaryKey      bool
}

// IdentityKey is the stable key used to match a column across snapshots.
func (self *Column) IdentityKey() string {
	if self.Id != "" {
		return self.Id
	}
	return self.Name
}

// Equals compares the alterable attributes of two columns. Identity and computed
// attributes are not considered here, see RequiresRecreation.
func (self *Column) Equals(other *Column) bool {
	if self == nil || other == nil {
		return self == other
	}
	return strings.EqualFold(self.DataType, other.DataType) &&
		self.MaxLength == other.MaxLength &&
		self.Precision == other.Precision &&
		self.Scale == other.Scale &&
		self.IsNullable == other.IsNullable &&
		NormalizeDefault(self.DefaultValue) == NormalizeDefault(other.DefaultValue)
}

// RequiresRecreation reports whether moving from self to other changes an attribute
// that cannot be altered in place.
func (self *Column) RequiresRecreation(other *Column) bool {
	if self == nil || other == nil {
		return false
	}
	if self.IsIdentity != other.IsIdentity {
		return true
	}
	if self.IsIdentity && (self.IdentitySeed != other.IdentitySeed || self.IdentityIncrement != other.IdentityIncrement) {
		return true
	}
	if self.IsComputed != other.IsComputed {
		return true
	}
	if self.IsComputed && (strings.TrimSpace(self.ComputedFormula) != strings.TrimSpace(other.ComputedFormula) ||
		self.ComputedPersisted != other.ComputedPersisted) {
		return true
	}
	return false
}

func (self *Column) Validate(table *Table) []error {
	out := []error{}
	if strings.TrimSpace(self.Name) == "" {
		out = append(out, fmt.Errorf("column %q in table %s must have a name", self.Id, table.QualifiedName()))
	}
	if !self.IsComputed && strings.TrimSpace(self.DataType) == "" {
		out = append(out, fmt.Errorf("column %s.%s must have a data type", table.QualifiedName(), self.Name))
	}
	if self.IsComputed && strings.TrimSpace(self.ComputedFormula) == "" {
		out = append(out, fmt.Errorf("computed column %s.%s must have a formula", table.QualifiedName(), self.Name))
	}
	if self.IsIdentity && self.IdentityIncrement == 0 {
		out = append(out, fmt.Errorf("identity column %s.%s must have a non-zero increment", table.QualifiedName(), self.Name))
	}
	return out
}

func (self *Column) Clone() *Column {
	if self == nil {
		return nil
	}
	out := *self
	return &out
}

// NormalizeDefault strips whitespace and redundant enclosing parentheses so that
// `((0))` as reported by a server compares equal to `0` typed by a designer.
func NormalizeDefault(def string) string {
	def = strings.TrimSpace(def)
	for len(def) >= 2 && def[0] == '(' && def[len(def)-1] == ')' && balanced(def[1:len(def)-1]) {
		def = strings.TrimSpace(def[1 : len(def)-1])
	}
	return def
}

func balanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
