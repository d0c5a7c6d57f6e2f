package lib_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemagraph/schemagraph/lib"
	"github.com/schemagraph/schemagraph/lib/config"
	_ "github.com/schemagraph/schemagraph/lib/encoding/xml"
	_ "github.com/schemagraph/schemagraph/lib/encoding/yaml"
	_ "github.com/schemagraph/schemagraph/lib/format/mssql10"
	_ "github.com/schemagraph/schemagraph/lib/format/pgsql8"
	"github.com/schemagraph/schemagraph/lib/ir"
)

const originalYaml = `
tables:
  - schema: dbo
    name: Emp
    id: t_emp
    columns:
      - {name: id, type: int, nullable: false, primaryKey: true}
      - {name: Legacy, type: int}
`

const updatedYaml = `
tables:
  - schema: dbo
    name: Employee
    id: t_emp
    columns:
      - {name: id, type: int, nullable: false, primaryKey: true}
      - {name: Email, type: nvarchar, length: 255}
`

const overlayXml = `
<schemagraph>
  <schema name="dbo">
    <view name="EmpEmails"><viewQuery>SELECT Email FROM dbo.Employee</viewQuery></view>
  </schema>
</schemagraph>
`

func writeFiles(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestApp_WritesScriptAndReport(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"original.yaml": originalYaml,
		"updated.yml":   updatedYaml,
		"overlay.xml":   overlayXml,
	})
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	app := lib.NewAppWithOutput(stdout, stderr)

	err := app.Run(&config.Args{
		SqlFormat: "MSSQL10",
		Original:  []string{filepath.Join(dir, "original.yaml")},
		Updated:   []string{filepath.Join(dir, "updated.yml"), filepath.Join(dir, "overlay.xml")},
		Report:    true,
		NoColor:   true,
	})
	require.NoError(t, err)

	script := stdout.String()
	assert.Contains(t, script, "BEGIN TRANSACTION;")
	assert.Contains(t, script, "EXEC sp_rename N'[dbo].[Emp]', N'Employee';")
	assert.Contains(t, script, "ALTER TABLE [dbo].[Employee] ADD [Email] NVARCHAR(255) NULL;")
	assert.Contains(t, script, "ALTER TABLE [dbo].[Employee] DROP COLUMN [Legacy];")
	assert.Contains(t, script, "CREATE VIEW [dbo].[EmpEmails]")

	report := stderr.String()
	assert.Contains(t, report, "Schema changes:\n")
	assert.Contains(t, report, "- Rename table dbo.Emp to Employee\n")
	assert.Contains(t, report, "Upgrade drops data")
}

func TestApp_FailOnDataLoss(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"original.yaml": originalYaml,
		"updated.yaml":  updatedYaml,
	})
	out := filepath.Join(dir, "upgrade.sql")
	app := lib.NewAppWithOutput(&bytes.Buffer{}, &bytes.Buffer{})

	err := app.Run(&config.Args{
		SqlFormat:      ir.SqlFormatMssql10,
		Original:       []string{filepath.Join(dir, "original.yaml")},
		Updated:        []string{filepath.Join(dir, "updated.yaml")},
		OutputFile:     out,
		FailOnDataLoss: true,
	})
	assert.True(t, errors.Is(err, lib.ErrDataLoss))
	assert.NoFileExists(t, out)
}

func TestApp_WritesOutputFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"original.yaml": originalYaml,
		"updated.yaml":  updatedYaml,
	})
	out := filepath.Join(dir, "upgrade.sql")
	composite := filepath.Join(dir, "composite.xml")
	stdout := &bytes.Buffer{}
	app := lib.NewAppWithOutput(stdout, &bytes.Buffer{})

	err := app.Run(&config.Args{
		SqlFormat:     ir.SqlFormatPgsql8,
		Original:      []string{filepath.Join(dir, "original.yaml")},
		Updated:       []string{filepath.Join(dir, "updated.yaml")},
		OutputFile:    out,
		DumpComposite: composite,
	})
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	script, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(script), "BEGIN;")
	assert.Contains(t, string(script), "ALTER TABLE \"dbo\".\"Emp\"\n  RENAME TO \"Employee\";")
	assert.FileExists(t, composite)
}

func TestApp_Errors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"original.yaml": originalYaml})
	app := lib.NewAppWithOutput(&bytes.Buffer{}, &bytes.Buffer{})

	err := app.Run(&config.Args{SqlFormat: "oracle"})
	assert.ErrorContains(t, err, "unknown SqlFormat")

	err = app.Run(&config.Args{
		SqlFormat: ir.SqlFormatMssql10,
		Original:  []string{filepath.Join(dir, "original.yaml")},
		Updated:   []string{filepath.Join(dir, "missing.yaml")},
	})
	assert.ErrorContains(t, err, "while loading updated definition")

	err = app.Run(&config.Args{
		SqlFormat: ir.SqlFormatMssql10,
		Original:  []string{filepath.Join(dir, "original.json")},
		Updated:   []string{filepath.Join(dir, "original.yaml")},
	})
	assert.ErrorContains(t, err, `no encoding handles ".json" files`)
}
