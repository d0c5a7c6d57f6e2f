package ir

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/schemagraph/schemagraph/lib/util"
)

// Definition is one snapshot of a database schema as produced by the designer.
// Any of its collections may be nil.
type Definition struct {
	Tables     []*Table
	Views      []*View
	Procedures []*Procedure
}

// Clone returns a deep copy, so a diff may never observe caller mutation.
func (self *Definition) Clone() *Definition {
	if self == nil {
		return &Definition{}
	}
	return &Definition{
		Tables:     util.Map(self.Tables, (*Table).Clone),
		Views:      util.Map(self.Views, (*View).Clone),
		Procedures: util.Map(self.Procedures, (*Procedure).Clone),
	}
}

// Validate reports structural problems with the definition. It does not
// check anything a diff depends on; a diff tolerates an invalid definition.
func (self *Definition) Validate() error {
	if self == nil {
		return nil
	}
	var errs *multierror.Error
	seenTables := util.NewStrSet()
	for _, table := range self.Tables {
		if seenTables.Has(table.IdentityKey()) {
			errs = multierror.Append(errs, fmt.Errorf("more than one table with identity %q", table.IdentityKey()))
		}
		seenTables.Add(table.IdentityKey())
		errs = multierror.Append(errs, table.Validate()...)
	}
	seenViews := util.NewStrSet()
	for _, view := range self.Views {
		if seenViews.Has(view.IdentityKey()) {
			errs = multierror.Append(errs, fmt.Errorf("more than one view with identity %q", view.IdentityKey()))
		}
		seenViews.Add(view.IdentityKey())
		errs = multierror.Append(errs, validateCodeObject(ObjectKindView, view)...)
	}
	seenProcs := util.NewStrSet()
	for _, proc := range self.Procedures {
		if seenProcs.Has(proc.IdentityKey()) {
			errs = multierror.Append(errs, fmt.Errorf("more than one procedure with identity %q", proc.IdentityKey()))
		}
		seenProcs.Add(proc.IdentityKey())
		errs = multierror.Append(errs, validateCodeObject(ObjectKindProcedure, proc)...)
	}
	return errs.ErrorOrNil()
}

// Merge overlays another definition onto this one. An overlay object replaces
// the object with the same identity in place; anything new is appended.
func (self *Definition) Merge(overlay *Definition) {
	if overlay == nil {
		return
	}
	for _, table := range overlay.Tables {
		self.Tables = mergeByIdentity(self.Tables, table.Clone(), (*Table).IdentityKey)
	}
	for _, view := range overlay.Views {
		self.Views = mergeByIdentity(self.Views, view.Clone(), (*View).IdentityKey)
	}
	for _, proc := range overlay.Procedures {
		self.Procedures = mergeByIdentity(self.Procedures, proc.Clone(), (*Procedure).IdentityKey)
	}
}

func mergeByIdentity[T any](list []T, item T, key func(T) string) []T {
	for i, existing := range list {
		if key(existing) == key(item) {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}
