package ir

import (
	"fmt"
	"strings"

	"github.com/schemagraph/schemagraph/lib/util"
)

type ForeignKeyAction string

const (
	ForeignKeyActionNoAction   ForeignKeyAction = "NO_ACTION"
	ForeignKeyActionCascade    ForeignKeyAction = "CASCADE"
	ForeignKeyActionSetNull    ForeignKeyAction = "SET_NULL"
	ForeignKeyActionSetDefault ForeignKeyAction = "SET_DEFAULT"
)

func NewForeignKeyAction(s string) (ForeignKeyAction, error) {
	fka := ForeignKeyAction(s).Normalized()
	switch fka {
	case ForeignKeyActionNoAction, ForeignKeyActionCascade, ForeignKeyActionSetNull, ForeignKeyActionSetDefault:
		return fka, nil
	}
	return "", fmt.Errorf("invalid Foreign Key Action: '%s'", s)
}

// Normalized upper-cases the action, accepts spaces in place of underscores,
// and treats the empty action as NO_ACTION.
func (fka ForeignKeyAction) Normalized() ForeignKeyAction {
	s := strings.ToUpper(strings.TrimSpace(string(fka)))
	if s == "" {
		return ForeignKeyActionNoAction
	}
	return ForeignKeyAction(strings.ReplaceAll(s, " ", "_"))
}

func (fka ForeignKeyAction) Equals(other ForeignKeyAction) bool {
	return fka.Normalized() == other.Normalized()
}

// Sql renders the action as it appears in an ON DELETE/ON UPDATE clause.
func (fka ForeignKeyAction) Sql() string {
	return strings.ReplaceAll(string(fka.Normalized()), "_", " ")
}

type ForeignKey struct {
	Id                   string
	Name                 string
	Columns              []string
	ReferencedSchemaName string
	ReferencedTableName  string
	ReferencedColumns    []string
	OnDeleteAction       ForeignKeyAction
	OnUpdateAction       ForeignKeyAction
}

func (self *ForeignKey) IdentityKey() string {
	if self.Id != "" {
		return self.Id
	}
	return self.Name
}

// ReferencedSchema resolves an empty referenced schema to the owning table's schema.
func (self *ForeignKey) ReferencedSchema(owner *Table) string {
	if self.ReferencedSchemaName != "" || owner == nil {
		return self.ReferencedSchemaName
	}
	return owner.Schema
}

// References reports whether this key, declared on owner, points at target.
func (self *ForeignKey) References(owner *Table, target *Table) bool {
	return strings.EqualFold(self.ReferencedSchema(owner), target.Schema) &&
		strings.EqualFold(self.ReferencedTableName, target.Name)
}

// StructurallyEquals compares everything but the key's identity and name.
// owner and otherOwner are the tables declaring each key, used to resolve
// implicit referenced schemas.
func (self *ForeignKey) StructurallyEquals(owner *Table, other *ForeignKey, otherOwner *Table) bool {
	if self == nil || other == nil {
		return self == other
	}
	return strings.EqualFold(self.ReferencedSchema(owner), other.ReferencedSchema(otherOwner)) &&
		strings.EqualFold(self.ReferencedTableName, other.ReferencedTableName) &&
		self.OnDeleteAction.Equals(other.OnDeleteAction) &&
		self.OnUpdateAction.Equals(other.OnUpdateAction) &&
		util.IStrsEq(self.Columns, other.Columns) &&
		util.IStrsEq(self.ReferencedColumns, other.ReferencedColumns)
}

// CoversColumn reports whether the named local column is part of this key.
func (self *ForeignKey) CoversColumn(name string) bool {
	return util.ContainsFunc(self.Columns, name, strings.EqualFold)
}

func (self *ForeignKey) Validate(table *Table) []error {
	out := []error{}
	if strings.TrimSpace(self.Name) == "" {
		out = append(out, fmt.Errorf("foreign key in table %s must have a constraint name", table.QualifiedName()))
	}
	if self.ReferencedTableName == "" {
		out = append(out, fmt.Errorf("foreign key %s in table %s must reference a table", self.Name, table.QualifiedName()))
	}
	if len(self.Columns) == 0 {
		out = append(out, fmt.Errorf("foreign key %s in table %s must have at least one column", self.Name, table.QualifiedName()))
	}
	if len(self.Columns) != len(self.ReferencedColumns) {
		out = append(out, fmt.Errorf("foreign key %s in table %s has %d columns but references %d",
			self.Name, table.QualifiedName(), len(self.Columns), len(self.ReferencedColumns)))
	}
	for _, col := range self.Columns {
		if table.TryGetColumnNamed(col) == nil {
			out = append(out, fmt.Errorf("foreign key %s in table %s covers unknown column %s", self.Name, table.QualifiedName(), col))
		}
	}
	return out
}

func (self *ForeignKey) Clone() *ForeignKey {
	if self == nil {
		return nil
	}
	out := *self
	out.Columns = append([]string(nil), self.Columns...)
	out.ReferencedColumns = append([]string(nil), self.ReferencedColumns...)
	return &out
}
