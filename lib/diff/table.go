package diff

import (
	"fmt"
	"strings"

	"github.com/schemagraph/schemagraph/lib/format"
	"github.com/schemagraph/schemagraph/lib/graph"
	"github.com/schemagraph/schemagraph/lib/ir"
	"github.com/schemagraph/schemagraph/lib/util"
)

// TableHandler diffs tables along with their columns, primary keys and foreign keys.
type TableHandler struct{}

func (self *TableHandler) Name() string {
	return "table"
}

func (self *TableHandler) BuildCommands(ctx *Context) error {
	original := util.OrderedMapFrom(ctx.Original.Tables, (*ir.Table).IdentityKey)
	updated := util.OrderedMapFrom(ctx.Updated.Tables, (*ir.Table).IdentityKey)

	// column plans come first, so that foreign keys elsewhere know which
	// primary keys are about to be rebuilt
	plans := []*tablePlan{}
	rebuiltPks := util.NewStrSet()
	for _, entry := range original.Intersect(updated).Entries() {
		newTable, _ := updated.Get(entry.Key)
		plan := planTable(entry.Value, newTable)
		if plan.rebuildPk {
			rebuiltPks.Add(entry.Key)
		}
		plans = append(plans, plan)
	}

	builder := &tableBuilder{
		ctx:        ctx,
		gen:        ctx.Registry.Tables(),
		original:   original,
		updated:    updated,
		rebuiltPks: rebuiltPks,
	}
	for _, table := range original.Difference(updated).Values() {
		builder.dropTable(table)
	}
	for _, table := range updated.Difference(original).Values() {
		builder.createTable(table)
	}
	for _, plan := range plans {
		builder.alterTable(plan)
	}
	return nil
}

type columnPair struct {
	from *ir.Column
	to   *ir.Column
}

// tablePlan classifies the columns of a table present in both snapshots.
type tablePlan struct {
	old *ir.Table
	new *ir.Table

	dropped   []*ir.Column
	added     []*ir.Column
	renamed   []columnPair
	recreated []columnPair
	altered   []columnPair

	// original names of columns that are dropped, recreated or altered;
	// constraints covering them cannot survive
	disturbed *util.Set[string, string]
	rebuildPk bool
}

func planTable(old, new *ir.Table) *tablePlan {
	plan := &tablePlan{
		old:       old,
		new:       new,
		disturbed: util.NewSet(strings.ToLower),
	}
	oldCols := util.OrderedMapFrom(old.Columns, (*ir.Column).IdentityKey)
	newCols := util.OrderedMapFrom(new.Columns, (*ir.Column).IdentityKey)

	plan.dropped = oldCols.Difference(newCols).Values()
	for _, col := range plan.dropped {
		plan.disturbed.Add(col.Name)
	}
	plan.added = newCols.Difference(oldCols).Values()

	for _, entry := range oldCols.Intersect(newCols).Entries() {
		from := entry.Value
		to, _ := newCols.Get(entry.Key)
		pair := columnPair{from, to}
		if from.Name != to.Name {
			plan.renamed = append(plan.renamed, pair)
		}
		if from.RequiresRecreation(to) {
			plan.recreated = append(plan.recreated, pair)
			plan.disturbed.Add(from.Name)
		} else if !from.Equals(to) {
			plan.altered = append(plan.altered, pair)
			plan.disturbed.Add(from.Name)
		}
	}

	plan.rebuildPk = !old.PrimaryKeyEquals(new)
	for _, col := range old.PrimaryKeyColumns() {
		if plan.disturbed.Has(col) {
			plan.rebuildPk = true
		}
	}
	return plan
}

// touchesDisturbedColumn is true when a foreign key of the original table
// covers a column that is dropped, recreated or altered.
func (self *tablePlan) touchesDisturbedColumn(fk *ir.ForeignKey) bool {
	_, found := util.Find(self.disturbed.Items(), fk.CoversColumn)
	return found
}

type tableBuilder struct {
	ctx        *Context
	gen        format.TableGenerator
	original   *util.OrderedMap[string, *ir.Table]
	updated    *util.OrderedMap[string, *ir.Table]
	rebuiltPks *util.Set[string, string]
}

func tableTarget(table *ir.Table) string {
	return strings.ToLower(table.IdentityKey())
}

func columnTarget(table *ir.Table, col *ir.Column) string {
	return strings.ToLower(table.IdentityKey() + "." + col.IdentityKey())
}

func foreignKeyTarget(table *ir.Table, fk *ir.ForeignKey) string {
	return strings.ToLower(table.IdentityKey() + "." + fk.IdentityKey())
}

func findTableNamed(def *ir.Definition, schema, name string) *ir.Table {
	table, _ := util.Find(def.Tables, func(table *ir.Table) bool {
		return strings.EqualFold(table.Schema, schema) && strings.EqualFold(table.Name, name)
	})
	return table
}

func (self *tableBuilder) dropForeignKeyId(owner *ir.Table, fk *ir.ForeignKey) string {
	return self.ctx.CreateId("drop_fk", owner.Schema, owner.Name, fk.Name)
}

func (self *tableBuilder) transferId(old, new *ir.Table) string {
	return self.ctx.CreateId("transfer_table", old.Schema, old.Name, "to", new.Schema)
}

func (self *tableBuilder) renameId(old, new *ir.Table) string {
	return self.ctx.CreateId("rename_table", old.Schema, old.Name, "to", new.Schema, new.Name)
}

// referencingForeignKeyDrops lists the commands that remove every original
// foreign key pointing at target: the key's own drop, or the drop of its
// table when that table goes away.
func (self *tableBuilder) referencingForeignKeyDrops(target *ir.Table) []string {
	out := []string{}
	for _, other := range self.ctx.Original.Tables {
		kept := self.updated.Has(other.IdentityKey())
		for _, fk := range other.ForeignKeys {
			if !fk.References(other, target) {
				continue
			}
			if kept {
				out = append(out, self.dropForeignKeyId(other, fk))
			} else {
				out = append(out, self.ctx.CreateId("drop_table", other.Schema, other.Name))
			}
		}
	}
	return out
}

// referencesRebuiltPk is true when fk, declared on an original table, points
// at a table whose primary key is dropped and re-added.
func (self *tableBuilder) referencesRebuiltPk(owner *ir.Table, fk *ir.ForeignKey) bool {
	target := findTableNamed(self.ctx.Original, fk.ReferencedSchema(owner), fk.ReferencedTableName)
	return target != nil && self.rebuiltPks.Has(target.IdentityKey())
}

// referencedTableDeps are the commands that must run before a foreign key of
// owner can point at its referenced table. Most of them are dangling for any
// given key.
func (self *tableBuilder) referencedTableDeps(owner *ir.Table, fk *ir.ForeignKey) []string {
	schema := fk.ReferencedSchema(owner)
	name := fk.ReferencedTableName
	deps := []string{
		self.ctx.CreateId("create_table", schema, name),
		self.ctx.CreateId("add_pk", schema, name),
	}
	for _, col := range fk.ReferencedColumns {
		deps = append(deps, self.ctx.CreateId("add_column", schema, name, col))
	}
	if target := findTableNamed(self.ctx.Updated, schema, name); target != nil {
		if old, ok := self.original.Get(target.IdentityKey()); ok {
			deps = append(deps, self.transferId(old, target), self.renameId(old, target))
		}
	}
	return deps
}

func (self *tableBuilder) addDropForeignKey(owner *ir.Table, fk *ir.ForeignKey) bool {
	return self.ctx.AddTypedCommand(CommandSpec{
		Id:          self.dropForeignKeyId(owner, fk),
		Phase:       graph.PhaseDrop,
		Statements:  self.gen.DropForeignKey(owner, fk),
		Description: fmt.Sprintf("Drop foreign key %s on %s", fk.Name, owner.QualifiedName()),
		Kind:        graph.KindDropForeignKey,
		Target:      foreignKeyTarget(owner, fk),
	})
}

func (self *tableBuilder) addCreateForeignKey(owner *ir.Table, fk *ir.ForeignKey, deps []string) bool {
	return self.ctx.AddTypedCommand(CommandSpec{
		Id:           self.ctx.CreateId("create_fk", owner.Schema, owner.Name, fk.Name),
		Phase:        graph.PhaseCreate,
		Statements:   self.gen.AddForeignKey(owner, fk),
		Dependencies: deps,
		Description: fmt.Sprintf("Create foreign key %s on %s referencing %s",
			fk.Name, owner.QualifiedName(), util.CondJoin(".", fk.ReferencedSchema(owner), fk.ReferencedTableName)),
		Kind:   graph.KindCreateForeignKey,
		Target: foreignKeyTarget(owner, fk),
	})
}

func (self *tableBuilder) dropTable(table *ir.Table) {
	deps := []string{}
	for _, other := range self.ctx.Original.Tables {
		if other == table {
			continue
		}
		for _, fk := range other.ForeignKeys {
			if fk.References(other, table) && self.addDropForeignKey(other, fk) {
				deps = append(deps, self.dropForeignKeyId(other, fk))
			}
		}
	}
	for _, view := range self.ctx.Original.Views {
		if util.IContainsWord(view.Definition, table.Name) {
			deps = append(deps, self.ctx.CreateId("drop_view", view.Schema, view.Name))
		}
	}
	self.ctx.AddTypedCommand(CommandSpec{
		Id:           self.ctx.CreateId("drop_table", table.Schema, table.Name),
		Phase:        graph.PhaseDrop,
		Statements:   self.gen.DropTable(table),
		Dependencies: deps,
		Description:  fmt.Sprintf("Drop table %s", table.QualifiedName()),
		Kind:         graph.KindDropTable,
		Target:       tableTarget(table),
	})
}

func (self *tableBuilder) createTable(table *ir.Table) {
	id := self.ctx.CreateId("create_table", table.Schema, table.Name)
	created := self.ctx.AddTypedCommand(CommandSpec{
		Id:           id,
		Phase:        graph.PhaseCreate,
		Statements:   self.gen.CreateTable(table),
		Dependencies: []string{self.ctx.CreateId("drop_table", table.Schema, table.Name)},
		Description:  fmt.Sprintf("Create table %s", table.QualifiedName()),
		Kind:         graph.KindCreateTable,
		Target:       tableTarget(table),
	})
	for _, fk := range table.ForeignKeys {
		deps := self.referencedTableDeps(table, fk)
		if created {
			deps = append(deps, id)
		}
		self.addCreateForeignKey(table, fk, deps)
	}
}

func (self *tableBuilder) alterTable(plan *tablePlan) {
	old, new := plan.old, plan.new
	oldFks := util.OrderedMapFrom(old.ForeignKeys, (*ir.ForeignKey).IdentityKey)
	newFks := util.OrderedMapFrom(new.ForeignKeys, (*ir.ForeignKey).IdentityKey)

	// foreign keys that are removed, changed, or cover a column about to change
	rebuiltFks := util.NewStrSet()
	dropFkIds := map[string]string{}
	for _, entry := range oldFks.Entries() {
		oldFk := entry.Value
		newFk, kept := newFks.Get(entry.Key)
		if kept && oldFk.StructurallyEquals(old, newFk, new) &&
			!plan.touchesDisturbedColumn(oldFk) && !self.referencesRebuiltPk(old, oldFk) {
			continue
		}
		rebuiltFks.Add(entry.Key)
		if self.addDropForeignKey(old, oldFk) {
			dropFkIds[entry.Key] = self.dropForeignKeyId(old, oldFk)
		}
	}

	// everything after this addresses the table by its new schema and name
	chain := []string{}
	current := &ir.Table{Schema: old.Schema, Name: old.Name, Columns: old.Columns}
	if !strings.EqualFold(old.Schema, new.Schema) {
		id := self.transferId(old, new)
		if self.ctx.AddTypedCommand(CommandSpec{
			Id:          id,
			Phase:       graph.PhaseAlter,
			Statements:  self.gen.MoveTableToSchema(current, new.Schema),
			Description: fmt.Sprintf("Move table %s to schema %s", old.QualifiedName(), new.Schema),
			Kind:        graph.KindTransferTable,
			Target:      tableTarget(new),
		}) {
			chain = append(chain, id)
		}
		current = &ir.Table{Schema: new.Schema, Name: old.Name, Columns: old.Columns}
	}
	if old.Name != new.Name {
		id := self.renameId(old, new)
		if self.ctx.AddTypedCommand(CommandSpec{
			Id:           id,
			Phase:        graph.PhaseAlter,
			Statements:   self.gen.RenameTable(current, new.Name),
			Dependencies: chain,
			Description:  fmt.Sprintf("Rename table %s to %s", current.QualifiedName(), new.Name),
			Kind:         graph.KindRenameTable,
			Target:       tableTarget(new),
		}) {
			chain = append(chain, id)
		}
	}

	for _, entry := range newFks.Entries() {
		newFk := entry.Value
		oldFk, kept := oldFks.Get(entry.Key)
		if !kept || rebuiltFks.Has(entry.Key) || oldFk.Name == newFk.Name {
			continue
		}
		self.ctx.AddTypedCommand(CommandSpec{
			Id:           self.ctx.CreateId("rename_fk", new.Schema, new.Name, newFk.Name),
			Phase:        graph.PhaseAlter,
			Statements:   self.gen.RenameForeignKey(new, oldFk.Name, newFk.Name),
			Dependencies: chain,
			Description:  fmt.Sprintf("Rename foreign key %s to %s on %s", oldFk.Name, newFk.Name, new.QualifiedName()),
			Kind:         graph.KindRenameForeignKey,
			Target:       foreignKeyTarget(new, newFk),
		})
	}

	columnIds := self.alterColumns(plan, chain)

	dropPkId := ""
	if plan.rebuildPk && old.HasPrimaryKey() {
		id := self.ctx.CreateId("drop_pk", old.Schema, old.Name)
		if self.ctx.AddTypedCommand(CommandSpec{
			Id:           id,
			Phase:        graph.PhaseDrop,
			Statements:   self.gen.DropPrimaryKey(old),
			Dependencies: self.referencingForeignKeyDrops(old),
			Description:  fmt.Sprintf("Drop primary key %s on %s", old.PrimaryKeyConstraintName(), old.QualifiedName()),
			Kind:         graph.KindDropPrimaryKey,
			Target:       tableTarget(old),
		}) {
			dropPkId = id
		}
	}
	if plan.rebuildPk && new.HasPrimaryKey() {
		deps := append(append([]string{}, chain...), columnIds...)
		if dropPkId != "" {
			deps = append(deps, dropPkId)
		}
		self.ctx.AddTypedCommand(CommandSpec{
			Id:           self.ctx.CreateId("add_pk", new.Schema, new.Name),
			Phase:        graph.PhaseCreate,
			Statements:   self.gen.AddPrimaryKey(new),
			Dependencies: deps,
			Description:  fmt.Sprintf("Add primary key %s on %s", new.PrimaryKeyConstraintName(), new.QualifiedName()),
			Kind:         graph.KindAddPrimaryKey,
			Target:       tableTarget(new),
		})
	}

	for _, entry := range newFks.Entries() {
		_, kept := oldFks.Get(entry.Key)
		if kept && !rebuiltFks.Has(entry.Key) {
			continue
		}
		deps := append(append([]string{}, chain...), columnIds...)
		deps = append(deps, self.referencedTableDeps(new, entry.Value)...)
		if id, ok := dropFkIds[entry.Key]; ok {
			deps = append(deps, id)
		}
		self.addCreateForeignKey(new, entry.Value, deps)
	}
}

// alterColumns registers the column commands of a table and returns the ids
// that were registered.
func (self *tableBuilder) alterColumns(plan *tablePlan, chain []string) []string {
	table := plan.new
	columnIds := []string{}
	renameIds := map[string]string{}
	// rename ids keyed by the lower-cased name each rename gives up
	freedNames := map[string]string{}
	add := func(spec CommandSpec) bool {
		if self.ctx.AddTypedCommand(spec) {
			columnIds = append(columnIds, spec.Id)
			return true
		}
		return false
	}
	depsFor := func(col *ir.Column, extra ...string) []string {
		deps := append(append([]string{}, chain...), extra...)
		if id, ok := renameIds[col.IdentityKey()]; ok {
			deps = append(deps, id)
		}
		return deps
	}
	// an added column may take a name another column is renamed away from
	addDepsFor := func(col *ir.Column, extra ...string) []string {
		deps := depsFor(col, extra...)
		if id, ok := freedNames[strings.ToLower(col.Name)]; ok {
			deps = append(deps, id)
		}
		return deps
	}
	qualified := func(col *ir.Column) string {
		return table.QualifiedName() + "." + col.Name
	}

	droppedNames := util.NewSet(strings.ToLower)
	for _, col := range plan.dropped {
		droppedNames.Add(col.Name)
	}

	for _, pair := range plan.renamed {
		id := self.ctx.CreateId("rename_column", table.Schema, table.Name, pair.from.Name)
		deps := append([]string{}, chain...)
		if droppedNames.Has(pair.to.Name) {
			// the name is only free once the dropped column is gone
			deps = append(deps, self.ctx.CreateId("drop_column", table.Schema, table.Name, pair.to.Name))
		}
		if add(CommandSpec{
			Id:           id,
			Phase:        graph.PhaseAlter,
			Statements:   self.gen.RenameColumn(table, pair.from.Name, pair.to.Name),
			Dependencies: deps,
			Description:  fmt.Sprintf("Rename column %s to %s", qualified(pair.from), pair.to.Name),
			Kind:         graph.KindRenameColumn,
			Target:       columnTarget(table, pair.to),
		}) {
			renameIds[pair.to.IdentityKey()] = id
			freedNames[strings.ToLower(pair.from.Name)] = id
		}
	}

	for _, col := range plan.dropped {
		add(CommandSpec{
			Id:           self.ctx.CreateId("drop_column", table.Schema, table.Name, col.Name),
			Phase:        graph.PhaseAlter,
			Statements:   self.gen.DropColumn(table, col),
			Dependencies: depsFor(col),
			Description:  fmt.Sprintf("Drop column %s", qualified(col)),
			Kind:         graph.KindDropColumn,
			Target:       columnTarget(table, col),
		})
	}

	for _, col := range plan.added {
		// a column of the same name may be on its way out
		add(CommandSpec{
			Id:           self.ctx.CreateId("add_column", table.Schema, table.Name, col.Name),
			Phase:        graph.PhaseAlter,
			Statements:   self.gen.AddColumn(table, col),
			Dependencies: addDepsFor(col, self.ctx.CreateId("drop_column", table.Schema, table.Name, col.Name)),
			Description:  fmt.Sprintf("Add column %s", qualified(col)),
			Kind:         graph.KindAddColumn,
			Target:       columnTarget(table, col),
		})
	}

	for _, pair := range plan.recreated {
		current := pair.from.Clone()
		current.Name = pair.to.Name
		dropId := self.ctx.CreateId("drop_column", table.Schema, table.Name, pair.to.Name)
		addDeps := addDepsFor(pair.to)
		if add(CommandSpec{
			Id:           dropId,
			Phase:        graph.PhaseAlter,
			Statements:   self.gen.DropColumn(table, current),
			Dependencies: depsFor(pair.to),
			Description:  fmt.Sprintf("Drop column %s for recreation", qualified(pair.to)),
			Kind:         graph.KindDropColumn,
			Target:       columnTarget(table, pair.to),
		}) {
			addDeps = append(addDeps, dropId)
		}
		add(CommandSpec{
			Id:           self.ctx.CreateId("add_column", table.Schema, table.Name, pair.to.Name),
			Phase:        graph.PhaseAlter,
			Statements:   self.gen.AddColumn(table, pair.to),
			Dependencies: addDeps,
			Description:  fmt.Sprintf("Recreate column %s", qualified(pair.to)),
			Kind:         graph.KindAddColumn,
			Target:       columnTarget(table, pair.to),
		})
	}

	for _, pair := range plan.altered {
		add(CommandSpec{
			Id:           self.ctx.CreateId("alter_column", table.Schema, table.Name, pair.to.Name),
			Phase:        graph.PhaseAlter,
			Statements:   self.gen.AlterColumn(table, pair.from, pair.to),
			Dependencies: depsFor(pair.to),
			Description:  fmt.Sprintf("Alter column %s", qualified(pair.to)),
			Kind:         graph.KindAlterColumn,
			Target:       columnTarget(table, pair.to),
		})
	}
	return columnIds
}
