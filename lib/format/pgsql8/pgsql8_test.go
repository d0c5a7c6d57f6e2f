package pgsql8_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemagraph/schemagraph/lib/format"
	"github.com/schemagraph/schemagraph/lib/format/pgsql8"
	"github.com/schemagraph/schemagraph/lib/ir"
)

func TestDialect_RegistersItself(t *testing.T) {
	dialect, err := format.Lookup("PGSQL8")
	require.NoError(t, err)
	assert.Equal(t, ir.SqlFormatPgsql8, dialect.Name())
	assert.Equal(t, "public", dialect.DefaultSchema())
}

func TestDialect_FormatDataType(t *testing.T) {
	dialect := pgsql8.NewDialect()
	assert.Equal(t, "text", dialect.FormatDataType(&ir.Column{DataType: "nvarchar", MaxLength: ir.MaxLengthUnbounded}))
	assert.Equal(t, "varchar(30)", dialect.FormatDataType(&ir.Column{DataType: "NVARCHAR", MaxLength: 30}))
	assert.Equal(t, "decimal(10,2)", dialect.FormatDataType(&ir.Column{DataType: "decimal", Precision: 10, Scale: 2}))
	assert.Equal(t, "uuid", dialect.FormatDataType(&ir.Column{DataType: "uniqueidentifier"}))
	assert.Equal(t, "boolean", dialect.FormatDataType(&ir.Column{DataType: "bit"}))
}

func TestTableGenerator_CreateTable(t *testing.T) {
	tables := pgsql8.NewDialect().Tables()
	table := &ir.Table{
		Name: "emp",
		Columns: []*ir.Column{
			{Name: "id", DataType: "integer", IsIdentity: true, IdentitySeed: 1, IdentityIncrement: 1, IsPrimaryKey: true},
			{Name: "name", DataType: "nvarchar", MaxLength: 100, DefaultValue: "('x')"},
			{Name: "notes", DataType: "nvarchar", MaxLength: ir.MaxLengthUnbounded, IsNullable: true},
			{Name: "total", DataType: "integer", IsComputed: true, ComputedFormula: "id * 2", IsNullable: true},
		},
	}
	assert.Equal(t, []string{
		"CREATE TABLE \"public\".\"emp\" (\n" +
			"\t\"id\" integer GENERATED BY DEFAULT AS IDENTITY (START WITH 1 INCREMENT BY 1) NOT NULL,\n" +
			"\t\"name\" varchar(100) DEFAULT 'x' NOT NULL,\n" +
			"\t\"notes\" text,\n" +
			"\t\"total\" integer GENERATED ALWAYS AS (id * 2) STORED,\n" +
			"\tCONSTRAINT \"PK_emp\" PRIMARY KEY (\"id\")\n" +
			");",
	}, tables.CreateTable(table))
}

func TestTableGenerator_Alters(t *testing.T) {
	tables := pgsql8.NewDialect().Tables()
	table := &ir.Table{Schema: "hr", Name: "emp"}

	assert.Equal(t, []string{"ALTER TABLE \"hr\".\"emp\"\n  RENAME TO \"employee\";"}, tables.RenameTable(table, "employee"))
	assert.Equal(t, []string{"ALTER TABLE \"hr\".\"emp\"\n  SET SCHEMA \"sales\";"}, tables.MoveTableToSchema(table, "sales"))
	assert.Equal(t, []string{"ALTER TABLE \"hr\".\"emp\"\n  RENAME COLUMN \"a\" TO \"b\";"}, tables.RenameColumn(table, "a", "b"))
	assert.Equal(t, []string{"ALTER TABLE \"hr\".\"emp\"\n  RENAME CONSTRAINT \"fk1\" TO \"fk2\";"}, tables.RenameForeignKey(table, "fk1", "fk2"))
	assert.Equal(t, []string{"ALTER TABLE \"hr\".\"emp\"\n  DROP COLUMN \"a\";"}, tables.DropColumn(table, &ir.Column{Name: "a"}))

	from := &ir.Column{Name: "c", DataType: "varchar", MaxLength: 50, DefaultValue: "'a'"}
	to := &ir.Column{Name: "c", DataType: "varchar", MaxLength: 80, IsNullable: true}
	assert.Equal(t, []string{
		"ALTER TABLE \"hr\".\"emp\"\n" +
			"  ALTER COLUMN \"c\" TYPE varchar(80),\n" +
			"  ALTER COLUMN \"c\" DROP NOT NULL,\n" +
			"  ALTER COLUMN \"c\" DROP DEFAULT;",
	}, tables.AlterColumn(table, from, to))
	assert.Empty(t, tables.AlterColumn(table, from, from.Clone()))
}

func TestTableGenerator_Constraints(t *testing.T) {
	tables := pgsql8.NewDialect().Tables()
	table := &ir.Table{Name: "b", Columns: []*ir.Column{{Name: "a_id", DataType: "int", IsPrimaryKey: true}}}
	fk := &ir.ForeignKey{
		Name:                "fk",
		Columns:             []string{"a_id"},
		ReferencedTableName: "a",
		ReferencedColumns:   []string{"id"},
		OnDeleteAction:      "cascade",
	}
	assert.Equal(t, []string{
		"ALTER TABLE \"public\".\"b\"\n  ADD CONSTRAINT \"fk\" FOREIGN KEY (\"a_id\") REFERENCES \"public\".\"a\" (\"id\") ON UPDATE NO ACTION ON DELETE CASCADE;",
	}, tables.AddForeignKey(table, fk))
	assert.Equal(t, []string{"ALTER TABLE \"public\".\"b\"\n  ADD CONSTRAINT \"PK_b\" PRIMARY KEY (\"a_id\");"}, tables.AddPrimaryKey(table))
	assert.Equal(t, []string{"ALTER TABLE \"public\".\"b\" DROP CONSTRAINT \"PK_b\";"}, tables.DropPrimaryKey(table))
}

func TestCodeObjects(t *testing.T) {
	dialect := pgsql8.NewDialect()
	views, err := dialect.CodeObjects(ir.ObjectKindView)
	require.NoError(t, err)

	from := &ir.View{Name: "v", Definition: "SELECT 1"}
	to := &ir.View{Name: "v", Definition: "SELECT 2;"}
	assert.Equal(t, []string{"CREATE VIEW \"public\".\"v\"\n AS SELECT 1;"}, views.Create(from))
	assert.Equal(t, []string{
		"DROP VIEW IF EXISTS \"public\".\"v\";",
		"CREATE VIEW \"public\".\"v\"\n AS SELECT 2;",
	}, views.Alter(from, to))

	procs, err := dialect.CodeObjects(ir.ObjectKindProcedure)
	require.NoError(t, err)
	proc := &ir.Procedure{Schema: "app", Name: "p", Definition: "create procedure app.p() language sql as $$ select 1 $$;"}
	assert.Equal(t, []string{"CREATE OR REPLACE PROCEDURE app.p() language sql as $$ select 1 $$;"}, procs.Create(proc))
	assert.Equal(t, []string{"DROP PROCEDURE IF EXISTS \"app\".\"p\";"}, procs.Drop(proc))
}

func TestDialect_WrapInTransaction(t *testing.T) {
	dialect := pgsql8.NewDialect()
	assert.Equal(t, "", dialect.WrapInTransaction([]string{}))
	assert.Equal(t, "BEGIN;\nSELECT 1;\nCOMMIT;\n", dialect.WrapInTransaction([]string{"SELECT 1;"}))
}
