package ir

import (
	"fmt"
	"strings"

	"github.com/schemagraph/schemagraph/lib/util"
)

// CodeObject is a schema object defined entirely by its source text, such as a
// view or a stored procedure.
type CodeObject interface {
	IdentityKey() string
	GetSchema() string
	GetName() string
	GetDefinition() string
}

type View struct {
	Id         string
	Schema     string
	Name       string
	Definition string
}

func (self *View) IdentityKey() string {
	return codeObjectIdentity(self.Id, self.Schema, self.Name)
}

func (self *View) GetSchema() string { return self.Schema }
func (self *View) GetName() string { return self.Name }
func (self *View) GetDefinition() string { return self.Definition }

func (self *View) Clone() *View {
	if self == nil {
		return nil
	}
	out := *self
	return &out
}

type Procedure struct {
	Id         string
	Schema     string
	Name       string
	Definition string
}

func (self *Procedure) IdentityKey() string {
	return codeObjectIdentity(self.Id, self.Schema, self.Name)
}

func (self *Procedure) GetSchema() string { return self.Schema }
func (self *Procedure) GetName() string { return self.Name }
func (self *Procedure) GetDefinition() string { return self.Definition }

func (self *Procedure) Clone() *Procedure {
	if self == nil {
		return nil
	}
	out := *self
	return &out
}

func codeObjectIdentity(id, schema, name string) string {
	if id != "" {
		return id
	}
	return strings.ToLower(util.CondJoin(".", schema, name))
}

// DefinitionEquals compares two code object definitions, ignoring surrounding whitespace.
func DefinitionEquals(left, right CodeObject) bool {
	return strings.TrimSpace(left.GetDefinition()) == strings.TrimSpace(right.GetDefinition())
}

func QualifiedCodeObjectName(obj CodeObject) string {
	return util.CondJoin(".", obj.GetSchema(), obj.GetName())
}

func validateCodeObject(kind ObjectKind, obj CodeObject) []error {
	out := []error{}
	if strings.TrimSpace(obj.GetName()) == "" {
		out = append(out, fmt.Errorf("%s %q must have a name", kind, obj.IdentityKey()))
	}
	if strings.TrimSpace(obj.GetDefinition()) == "" {
		out = append(out, fmt.Errorf("%s %s must have a definition", kind, QualifiedCodeObjectName(obj)))
	}
	return out
}
