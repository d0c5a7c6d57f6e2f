package yaml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemagraph/schemagraph/lib/encoding"
	"github.com/schemagraph/schemagraph/lib/encoding/yaml"
	"github.com/schemagraph/schemagraph/lib/ir"
)

const doc = `
tables:
  - schema: dbo
    name: Emp
    id: t_emp
    columns:
      - name: id
        type: int
        nullable: false
        primaryKey: true
        identity: {seed: 1, increment: 1}
      - name: Email
        type: nvarchar
        length: 255
      - name: Total
        computed: {formula: "[id] * 2", persisted: true}
    foreignKeys:
      - name: FK_Emp_Dept
        columns: [DeptId]
        references: {schema: hr, table: Dept, columns: [id]}
        onDelete: cascade
views:
  - schema: dbo
    name: EmpEmails
    definition: |
      SELECT Email FROM dbo.Emp
procedures:
  - schema: dbo
    name: Touch
    definition: CREATE PROCEDURE dbo.Touch AS SELECT 1
`

func TestReadDef(t *testing.T) {
	def, err := yaml.ReadDef(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, def.Tables, 1)
	emp := def.Tables[0]
	assert.Equal(t, "t_emp", emp.IdentityKey())
	require.Len(t, emp.Columns, 3)

	id := emp.Columns[0]
	assert.False(t, id.IsNullable)
	assert.True(t, id.IsIdentity)
	assert.Equal(t, 1, id.IdentitySeed)
	assert.True(t, id.IsPrimaryKey)

	email := emp.Columns[1]
	assert.True(t, email.IsNullable, "columns are nullable by default")
	assert.Equal(t, 255, email.MaxLength)

	assert.True(t, emp.Columns[2].IsComputed)
	assert.Equal(t, "[id] * 2", emp.Columns[2].ComputedFormula)

	fk := emp.ForeignKeys[0]
	assert.Equal(t, "hr", fk.ReferencedSchema(emp))
	assert.Equal(t, []string{"id"}, fk.ReferencedColumns)
	assert.Equal(t, ir.ForeignKeyActionCascade, fk.OnDeleteAction)

	assert.Equal(t, "SELECT Email FROM dbo.Emp", def.Views[0].Definition)
	assert.Equal(t, "Touch", def.Procedures[0].Name)
}

func TestWriteDefReadsBack(t *testing.T) {
	def, err := yaml.ReadDef(strings.NewReader(doc))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, yaml.WriteDef(buf, def))
	assert.Contains(t, buf.String(), "onDelete: CASCADE")

	again, err := yaml.ReadDef(buf)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(def, again))
}

func TestReadDef_EmptyAndInvalid(t *testing.T) {
	def, err := yaml.ReadDef(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, def.Tables)

	_, err = yaml.ReadDef(strings.NewReader("tables:\n  - name: T\n    foreignKeys:\n      - name: fk\n        onDelete: explode\n"))
	assert.ErrorContains(t, err, "foreign key fk")

	_, err = yaml.ReadDef(strings.NewReader("tables: [oops"))
	assert.Error(t, err)
}

func TestRegistersForYamlFiles(t *testing.T) {
	for _, file := range []string{"a.yaml", "b.yml"} {
		enc, err := encoding.ForFile(file)
		require.NoError(t, err)
		assert.IsType(t, yaml.YAMLEncoding{}, enc)
	}
	_, err := encoding.ForFile("c.json")
	assert.Error(t, err)
}
