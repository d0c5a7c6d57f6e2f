package main

import (
	"github.com/schemagraph/schemagraph/lib"
	_ "github.com/schemagraph/schemagraph/lib/encoding/xml"
	_ "github.com/schemagraph/schemagraph/lib/encoding/yaml"
	_ "github.com/schemagraph/schemagraph/lib/format/mssql10"
	_ "github.com/schemagraph/schemagraph/lib/format/pgsql8"
)

func main() {
	app := lib.NewApp()
	app.ArgParse()
	app.Notice("Done")
}
