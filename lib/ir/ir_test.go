package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemagraph/schemagraph/lib/ir"
)

func TestTable_IdentityKeyFallsBackToQualifiedName(t *testing.T) {
	assert.Equal(t, "t1", (&ir.Table{Id: "t1", Schema: "dbo", Name: "Emp"}).IdentityKey())
	assert.Equal(t, "dbo.emp", (&ir.Table{Schema: "dbo", Name: "Emp"}).IdentityKey())
	assert.Equal(t, "emp", (&ir.Table{Name: "Emp"}).IdentityKey())
}

func TestColumn_EqualsIgnoresIdentityAndComputed(t *testing.T) {
	left := &ir.Column{Name: "a", DataType: "int", IsIdentity: true, IdentitySeed: 1, IdentityIncrement: 1}
	right := &ir.Column{Name: "a", DataType: "INT"}
	assert.True(t, left.Equals(right))
	assert.True(t, left.RequiresRecreation(right))

	right.IsNullable = true
	assert.False(t, left.Equals(right))
}

func TestColumn_EqualsNormalizesDefaults(t *testing.T) {
	left := &ir.Column{Name: "a", DataType: "int", DefaultValue: "((0))"}
	right := &ir.Column{Name: "a", DataType: "int", DefaultValue: "0"}
	assert.True(t, left.Equals(right))

	assert.Equal(t, "(a) + (b)", ir.NormalizeDefault("(a) + (b)"))
	assert.Equal(t, "getdate()", ir.NormalizeDefault(" (getdate()) "))
}

func TestColumn_RequiresRecreation(t *testing.T) {
	identity := &ir.Column{Name: "id", DataType: "int", IsIdentity: true, IdentitySeed: 1, IdentityIncrement: 1}
	computed := &ir.Column{Name: "c", IsComputed: true, ComputedFormula: "a + b"}

	cases := []struct {
		name     string
		from, to *ir.Column
		expected bool
	}{
		{"identity unchanged", identity, identity.Clone(), false},
		{"identity removed", identity, &ir.Column{Name: "id", DataType: "int"}, true},
		{"identity added", &ir.Column{Name: "id", DataType: "int"}, identity, true},
		{"seed changed", identity, &ir.Column{Name: "id", DataType: "int", IsIdentity: true, IdentitySeed: 100, IdentityIncrement: 1}, true},
		{"seed ignored without identity", &ir.Column{Name: "id", IdentitySeed: 1}, &ir.Column{Name: "id", IdentitySeed: 2}, false},
		{"formula changed", computed, &ir.Column{Name: "c", IsComputed: true, ComputedFormula: "a - b"}, true},
		{"persistence changed", computed, &ir.Column{Name: "c", IsComputed: true, ComputedFormula: "a + b", ComputedPersisted: true}, true},
		{"computed removed", computed, &ir.Column{Name: "c", DataType: "int"}, true},
		{"type change is an alter", &ir.Column{Name: "x", DataType: "int"}, &ir.Column{Name: "x", DataType: "bigint"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, c.from.RequiresRecreation(c.to))
		})
	}
}

func TestForeignKey_StructurallyEquals(t *testing.T) {
	owner := &ir.Table{Schema: "dbo", Name: "B"}
	base := &ir.ForeignKey{
		Name:                "FK_B_A",
		Columns:             []string{"a_id"},
		ReferencedTableName: "A",
		ReferencedColumns:   []string{"id"},
	}

	explicit := base.Clone()
	explicit.Name = "FK_renamed"
	explicit.ReferencedSchemaName = "DBO"
	explicit.OnDeleteAction = "no action"
	assert.True(t, base.StructurallyEquals(owner, explicit, owner))

	cascade := base.Clone()
	cascade.OnDeleteAction = ir.ForeignKeyActionCascade
	assert.False(t, base.StructurallyEquals(owner, cascade, owner))

	otherCols := base.Clone()
	otherCols.ReferencedColumns = []string{"other_id"}
	assert.False(t, base.StructurallyEquals(owner, otherCols, owner))

	moved := &ir.Table{Schema: "sales", Name: "B"}
	assert.False(t, base.StructurallyEquals(owner, base.Clone(), moved))
}

func TestForeignKeyAction(t *testing.T) {
	action, err := ir.NewForeignKeyAction("set null")
	require.NoError(t, err)
	assert.Equal(t, ir.ForeignKeyActionSetNull, action)
	assert.Equal(t, "SET NULL", action.Sql())
	assert.True(t, ir.ForeignKeyAction("").Equals(ir.ForeignKeyActionNoAction))

	_, err = ir.NewForeignKeyAction("explode")
	assert.Error(t, err)
}

func TestTable_PrimaryKey(t *testing.T) {
	table := &ir.Table{
		Name: "OrderLine",
		Columns: []*ir.Column{
			{Name: "order_id", IsPrimaryKey: true},
			{Name: "note"},
			{Name: "line_no", IsPrimaryKey: true},
		},
	}
	assert.Equal(t, []string{"order_id", "line_no"}, table.PrimaryKeyColumns())
	assert.Equal(t, "PK_OrderLine", table.PrimaryKeyConstraintName())

	reordered := table.Clone()
	reordered.Columns[0], reordered.Columns[2] = reordered.Columns[2], reordered.Columns[0]
	assert.False(t, table.PrimaryKeyEquals(reordered))

	table.PrimaryKeyName = "pk_lines"
	assert.Equal(t, "pk_lines", table.PrimaryKeyConstraintName())
}

func TestDefinition_CloneIsDeep(t *testing.T) {
	def := &ir.Definition{
		Tables: []*ir.Table{{
			Schema:      "dbo",
			Name:        "Emp",
			Columns:     []*ir.Column{{Name: "id", DataType: "int"}},
			ForeignKeys: []*ir.ForeignKey{{Name: "fk", Columns: []string{"id"}}},
		}},
		Views: []*ir.View{{Name: "v", Definition: "SELECT 1"}},
	}
	clone := def.Clone()
	clone.Tables[0].Columns[0].DataType = "bigint"
	clone.Tables[0].ForeignKeys[0].Columns[0] = "other"
	clone.Views[0].Definition = "SELECT 2"

	assert.Equal(t, "int", def.Tables[0].Columns[0].DataType)
	assert.Equal(t, "id", def.Tables[0].ForeignKeys[0].Columns[0])
	assert.Equal(t, "SELECT 1", def.Views[0].Definition)

	var nilDef *ir.Definition
	assert.NotNil(t, nilDef.Clone())
}

func TestDefinition_ValidateAggregates(t *testing.T) {
	def := &ir.Definition{
		Tables: []*ir.Table{
			{Schema: "dbo", Name: "A", Columns: []*ir.Column{{Name: "id", DataType: "int"}, {Name: "id", DataType: "int"}}},
			{Schema: "dbo", Name: "a"},
			{Schema: "dbo", Name: "B", Columns: []*ir.Column{{Name: "a_id", DataType: "int"}}, ForeignKeys: []*ir.ForeignKey{{
				Name:                "FK_B_A",
				Columns:             []string{"a_id"},
				ReferencedTableName: "A",
			}}},
		},
		Views: []*ir.View{{Name: "v"}},
	}
	err := def.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `more than one column with identity "id"`)
	assert.Contains(t, err.Error(), `more than one table with identity "dbo.a"`)
	assert.Contains(t, err.Error(), "has 1 columns but references 0")
	assert.Contains(t, err.Error(), "view v must have a definition")

	assert.NoError(t, (&ir.Definition{}).Validate())
}

func TestDefinition_Merge(t *testing.T) {
	base := &ir.Definition{
		Tables: []*ir.Table{
			{Schema: "dbo", Name: "A", Columns: []*ir.Column{{Name: "id", DataType: "int"}}},
			{Schema: "dbo", Name: "B"},
		},
	}
	overlay := &ir.Definition{
		Tables: []*ir.Table{
			{Schema: "DBO", Name: "a", Columns: []*ir.Column{{Name: "id", DataType: "bigint"}}},
			{Schema: "dbo", Name: "C"},
		},
		Procedures: []*ir.Procedure{{Schema: "dbo", Name: "p", Definition: "SELECT 1"}},
	}
	base.Merge(overlay)
	base.Merge(nil)

	require.Len(t, base.Tables, 3)
	assert.Equal(t, "bigint", base.Tables[0].Columns[0].DataType)
	assert.Equal(t, "B", base.Tables[1].Name)
	assert.Equal(t, "C", base.Tables[2].Name)
	require.Len(t, base.Procedures, 1)

	overlay.Tables[0].Columns[0].DataType = "smallint"
	assert.Equal(t, "bigint", base.Tables[0].Columns[0].DataType)
}
