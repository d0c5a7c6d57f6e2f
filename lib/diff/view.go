package diff

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/schemagraph/schemagraph/lib/graph"
	"github.com/schemagraph/schemagraph/lib/ir"
	"github.com/schemagraph/schemagraph/lib/util"
)

// CodeObjectHandler diffs objects that are defined by their source text. Views
// and procedures differ only in the kinds and phases they register.
type CodeObjectHandler struct {
	name        string
	kind        ir.ObjectKind
	idPrefix    string
	createPhase graph.Phase
	dropKind    graph.CommandKind
	createKind  graph.CommandKind
	alterKind   graph.CommandKind
	objects     func(*ir.Definition) []ir.CodeObject
}

func NewViewHandler() *CodeObjectHandler {
	return &CodeObjectHandler{
		name:        "view",
		kind:        ir.ObjectKindView,
		idPrefix:    "view",
		createPhase: graph.PhaseCreate,
		dropKind:    graph.KindDropView,
		createKind:  graph.KindCreateView,
		alterKind:   graph.KindAlterView,
		objects: func(def *ir.Definition) []ir.CodeObject {
			return util.Map(def.Views, func(v *ir.View) ir.CodeObject { return v })
		},
	}
}

// NewProcedureHandler places procedures after everything else, since their
// bodies may touch any table or view.
func NewProcedureHandler() *CodeObjectHandler {
	return &CodeObjectHandler{
		name:        "procedure",
		kind:        ir.ObjectKindProcedure,
		idPrefix:    "procedure",
		createPhase: graph.PhasePostHelper,
		dropKind:    graph.KindDropProcedure,
		createKind:  graph.KindCreateProcedure,
		alterKind:   graph.KindAlterProcedure,
		objects: func(def *ir.Definition) []ir.CodeObject {
			return util.Map(def.Procedures, func(p *ir.Procedure) ir.CodeObject { return p })
		},
	}
}

func (self *CodeObjectHandler) Name() string {
	return self.name
}

func (self *CodeObjectHandler) BuildCommands(ctx *Context) error {
	gen, err := ctx.Registry.CodeObjects(self.kind)
	if err != nil {
		return errors.Wrapf(err, "no %s generator", self.kind)
	}
	original := util.OrderedMapFrom(self.objects(ctx.Original), ir.CodeObject.IdentityKey)
	updated := util.OrderedMapFrom(self.objects(ctx.Updated), ir.CodeObject.IdentityKey)

	for _, key := range original.UnionKeys(updated) {
		old, hadOld := original.Get(key)
		new, hasNew := updated.Get(key)
		switch {
		case hadOld && !hasNew:
			self.drop(ctx, gen.Drop(old), old)

		case !hadOld && hasNew:
			self.create(ctx, gen.Create(new), new, self.tableDeps(ctx, new))

		case !strings.EqualFold(old.GetSchema(), new.GetSchema()) || old.GetName() != new.GetName():
			deps := self.tableDeps(ctx, new)
			if self.drop(ctx, gen.Drop(old), old) {
				deps = append(deps, self.id(ctx, "drop", old))
			}
			self.create(ctx, gen.Create(new), new, deps)

		case !ir.DefinitionEquals(old, new):
			ctx.AddTypedCommand(CommandSpec{
				Id:           self.id(ctx, "alter", new),
				Phase:        self.createPhase,
				Statements:   gen.Alter(old, new),
				Dependencies: self.tableDeps(ctx, new),
				Description:  fmt.Sprintf("Alter %s %s", self.kind, ir.QualifiedCodeObjectName(new)),
				Kind:         self.alterKind,
				Target:       strings.ToLower(new.IdentityKey()),
			})
		}
	}
	return nil
}

func (self *CodeObjectHandler) id(ctx *Context, verb string, obj ir.CodeObject) string {
	return ctx.CreateId(verb+"_"+self.idPrefix, obj.GetSchema(), obj.GetName())
}

func (self *CodeObjectHandler) drop(ctx *Context, stmts []string, obj ir.CodeObject) bool {
	return ctx.AddTypedCommand(CommandSpec{
		Id:          self.id(ctx, "drop", obj),
		Phase:       graph.PhaseDrop,
		Statements:  stmts,
		Description: fmt.Sprintf("Drop %s %s", self.kind, ir.QualifiedCodeObjectName(obj)),
		Kind:        self.dropKind,
		Target:      strings.ToLower(obj.IdentityKey()),
	})
}

func (self *CodeObjectHandler) create(ctx *Context, stmts []string, obj ir.CodeObject, deps []string) bool {
	return ctx.AddTypedCommand(CommandSpec{
		Id:           self.id(ctx, "create", obj),
		Phase:        self.createPhase,
		Statements:   stmts,
		Dependencies: deps,
		Description:  fmt.Sprintf("Create %s %s", self.kind, ir.QualifiedCodeObjectName(obj)),
		Kind:         self.createKind,
		Target:       strings.ToLower(obj.IdentityKey()),
	})
}

// tableDeps finds the table commands an object's definition appears to need,
// by whole-word matching table names in its source. Commands registered for
// views and procedures are skipped, which keeps repeated runs from chaining
// code objects to each other.
func (self *CodeObjectHandler) tableDeps(ctx *Context, obj ir.CodeObject) []string {
	deps := util.NewStrSet()
	for _, table := range ctx.Updated.Tables {
		if !util.IContainsWord(obj.GetDefinition(), table.Name) {
			continue
		}
		for _, id := range ctx.FindCommandsForTable(table.Name) {
			if cmd, ok := ctx.Graph().Command(id); ok && isCodeObjectKind(cmd.Kind) {
				continue
			}
			deps.Add(id)
		}
	}
	return util.SortedItems(deps)
}

func isCodeObjectKind(kind graph.CommandKind) bool {
	switch kind {
	case graph.KindDropView, graph.KindCreateView, graph.KindAlterView,
		graph.KindDropProcedure, graph.KindCreateProcedure, graph.KindAlterProcedure:
		return true
	}
	return false
}
