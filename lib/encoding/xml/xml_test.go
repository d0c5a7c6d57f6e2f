package xml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemagraph/schemagraph/lib/encoding"
	"github.com/schemagraph/schemagraph/lib/encoding/xml"
	"github.com/schemagraph/schemagraph/lib/ir"
)

const doc = `
<schemagraph>
  <schema name="dbo">
    <table name="Emp" id="t_emp" primaryKeyName="PK_Employees">
      <column name="id" type="int" null="false" primaryKey="true" identity="true" identitySeed="1" identityIncrement="1"/>
      <column name="Name" type="nvarchar" length="MAX" default="N''"/>
      <column name="DeptId" id="c_dept" type="int"/>
      <column name="Total" computed="[id] * 2" persisted="true"/>
      <foreignKey name="FK_Emp_Dept" columns="DeptId" foreignSchema="hr" foreignTable="Dept" foreignColumns="id" onDelete="set null"/>
    </table>
    <view name="EmpNames">
      <viewQuery>
        SELECT Name FROM dbo.Emp
      </viewQuery>
    </view>
  </schema>
  <schema name="hr">
    <table name="Dept">
      <column name="id" type="int" null="false" primaryKey="true"/>
    </table>
    <procedure name="Touch"><definition>CREATE PROCEDURE hr.Touch AS SELECT 1</definition></procedure>
  </schema>
</schemagraph>
`

func TestReadDef(t *testing.T) {
	def, err := xml.ReadDef(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, def.Tables, 2)
	emp := def.Tables[0]
	assert.Equal(t, "dbo", emp.Schema)
	assert.Equal(t, "t_emp", emp.IdentityKey())
	assert.Equal(t, "PK_Employees", emp.PrimaryKeyConstraintName())
	assert.Equal(t, []string{"id"}, emp.PrimaryKeyColumns())

	id := emp.Columns[0]
	assert.False(t, id.IsNullable)
	assert.True(t, id.IsIdentity)
	assert.Equal(t, 1, id.IdentityIncrement)

	name := emp.Columns[1]
	assert.True(t, name.IsNullable, "columns are nullable by default")
	assert.Equal(t, ir.MaxLengthUnbounded, name.MaxLength)
	assert.Equal(t, "N''", name.DefaultValue)

	assert.Equal(t, "c_dept", emp.Columns[2].IdentityKey())
	assert.True(t, emp.Columns[3].IsComputed)
	assert.True(t, emp.Columns[3].ComputedPersisted)

	fk := emp.ForeignKeys[0]
	assert.Equal(t, []string{"DeptId"}, fk.Columns)
	assert.Equal(t, "hr", fk.ReferencedSchema(emp))
	assert.Equal(t, ir.ForeignKeyActionSetNull, fk.OnDeleteAction)
	assert.Equal(t, ir.ForeignKeyActionNoAction, fk.OnUpdateAction)

	require.Len(t, def.Views, 1)
	assert.Equal(t, "SELECT Name FROM dbo.Emp", def.Views[0].Definition)
	require.Len(t, def.Procedures, 1)
	assert.Equal(t, "hr", def.Procedures[0].Schema)

	assert.NoError(t, def.Validate())
}

func TestWriteDefReadsBack(t *testing.T) {
	def, err := xml.ReadDef(strings.NewReader(doc))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, xml.WriteDef(nil, buf, def))
	assert.Contains(t, buf.String(), `length="MAX"`)
	assert.Contains(t, buf.String(), `onDelete="SET NULL"`)
	assert.NotContains(t, buf.String(), `onUpdate=`)

	again, err := xml.ReadDef(buf)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(def, again))
}

func TestReadDef_Errors(t *testing.T) {
	_, err := xml.ReadDef(strings.NewReader(`<schemagraph><schema name="dbo"><table name="T"><column name="c" length="lots"/></table></schema></schemagraph>`))
	assert.ErrorContains(t, err, `invalid length "lots"`)

	_, err = xml.ReadDef(strings.NewReader(`<schemagraph>`))
	assert.Error(t, err)
}

func TestDelimitedList(t *testing.T) {
	assert.Equal(t, xml.DelimitedList{"a", "b", "c"}, xml.ParseDelimitedList(" a, b  c,"))
	assert.Equal(t, xml.DelimitedList{}, xml.ParseDelimitedList(""))
}

func TestRegistersForXmlFiles(t *testing.T) {
	enc, err := encoding.ForFile("schema/app.XML")
	require.NoError(t, err)
	assert.IsType(t, xml.XMLEncoding{}, enc)
}
