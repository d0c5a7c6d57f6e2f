package graph

import (
	"fmt"

	"github.com/schemagraph/schemagraph/lib/util"
)

// Phase is a coarse execution bucket. Commands without a dependency between
// them are ordered by phase first.
type Phase int

const (
	PhaseDrop Phase = iota
	PhaseAlter
	PhaseCreate
	PhasePostHelper
)

func (p Phase) String() string {
	switch p {
	case PhaseDrop:
		return "drop"
	case PhaseAlter:
		return "alter"
	case PhaseCreate:
		return "create"
	case PhasePostHelper:
		return "post-helper"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// CommandKind classifies what a command does to its target.
type CommandKind string

const (
	KindUnknown          CommandKind = ""
	KindDropTable        CommandKind = "drop_table"
	KindCreateTable      CommandKind = "create_table"
	KindTransferTable    CommandKind = "transfer_table"
	KindRenameTable      CommandKind = "rename_table"
	KindDropColumn       CommandKind = "drop_column"
	KindAddColumn        CommandKind = "add_column"
	KindAlterColumn      CommandKind = "alter_column"
	KindRenameColumn     CommandKind = "rename_column"
	KindDropPrimaryKey   CommandKind = "drop_pk"
	KindAddPrimaryKey    CommandKind = "add_pk"
	KindDropForeignKey   CommandKind = "drop_fk"
	KindCreateForeignKey CommandKind = "create_fk"
	KindRenameForeignKey CommandKind = "rename_fk"
	KindDropView         CommandKind = "drop_view"
	KindCreateView       CommandKind = "create_view"
	KindAlterView        CommandKind = "alter_view"
	KindDropProcedure    CommandKind = "drop_procedure"
	KindCreateProcedure  CommandKind = "create_procedure"
	KindAlterProcedure   CommandKind = "alter_procedure"
)

// Command is one unit of generated work. Once added to a Graph it is not modified.
type Command struct {
	Id           string
	Phase        Phase
	Statements   []string
	Description  string
	Dependencies *util.Set[string, string]

	// Kind and Target describe the change for data loss detection and reporting
	Kind   CommandKind
	Target string
}

// DependsOn lists the dependency ids in ascending order.
func (self Command) DependsOn() []string {
	if self.Dependencies == nil {
		return []string{}
	}
	return util.SortedItems(self.Dependencies)
}

func (self Command) clone() Command {
	out := self
	out.Statements = append([]string(nil), self.Statements...)
	if self.Dependencies == nil {
		out.Dependencies = util.NewStrSet()
	} else {
		out.Dependencies = self.Dependencies.Clone()
	}
	return out
}
