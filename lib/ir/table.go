package ir

import (
	"fmt"
	"strings"

	"github.com/schemagraph/schemagraph/lib/util"
)

type Table struct {
	Id             string
	Schema         string
	Name           string
	Columns        []*Column
	ForeignKeys    []*ForeignKey
	PrimaryKeyName string
}

// IdentityKey is the stable key used to match a table across snapshots.
// Without an explicit id the lower-cased qualified name is used.
func (self *Table) IdentityKey() string {
	if self.Id != "" {
		return self.Id
	}
	return strings.ToLower(self.QualifiedName())
}

func (self *Table) QualifiedName() string {
	return util.CondJoin(".", self.Schema, self.Name)
}

func (self *Table) TryGetColumnNamed(name string) *Column {
	if self == nil {
		return nil
	}
	for _, col := range self.Columns {
		if strings.EqualFold(col.Name, name) {
			return col
		}
	}
	return nil
}

// PrimaryKeyColumns returns the names of the primary key columns in column order.
func (self *Table) PrimaryKeyColumns() []string {
	out := []string{}
	for _, col := range self.Columns {
		if col.IsPrimaryKey {
			out = append(out, col.Name)
		}
	}
	return out
}

func (self *Table) HasPrimaryKey() bool {
	return len(self.PrimaryKeyColumns()) > 0
}

func (self *Table) PrimaryKeyConstraintName() string {
	if self.PrimaryKeyName != "" {
		return self.PrimaryKeyName
	}
	return "PK_" + self.Name
}

// PrimaryKeyEquals compares the ordered primary key column lists of two tables.
func (self *Table) PrimaryKeyEquals(other *Table) bool {
	return util.IStrsEq(self.PrimaryKeyColumns(), other.PrimaryKeyColumns())
}

func (self *Table) Validate() []error {
	out := []error{}
	if strings.TrimSpace(self.Name) == "" {
		out = append(out, fmt.Errorf("table %q must have a name", self.IdentityKey()))
	}
	seenCols := util.NewStrSet()
	for _, col := range self.Columns {
		if seenCols.Has(col.IdentityKey()) {
			out = append(out, fmt.Errorf("table %s has more than one column with identity %q", self.QualifiedName(), col.IdentityKey()))
		}
		seenCols.Add(col.IdentityKey())
		out = append(out, col.Validate(self)...)
	}
	seenKeys := util.NewStrSet()
	for _, fk := range self.ForeignKeys {
		if seenKeys.Has(fk.IdentityKey()) {
			out = append(out, fmt.Errorf("table %s has more than one foreign key with identity %q", self.QualifiedName(), fk.IdentityKey()))
		}
		seenKeys.Add(fk.IdentityKey())
		out = append(out, fk.Validate(self)...)
	}
	return out
}

func (self *Table) Clone() *Table {
	if self == nil {
		return nil
	}
	out := *self
	out.Columns = util.Map(self.Columns, (*Column).Clone)
	out.ForeignKeys = util.Map(self.ForeignKeys, (*ForeignKey).Clone)
	return &out
}
