package config

import (
	"github.com/schemagraph/schemagraph/lib/ir"
)

type Args struct {
	// Global Switches and Flags
	SqlFormat ir.SqlFormat `arg:"--sqlformat" default:"mssql10" help:"SQL dialect of the generated script"`
	Verbose   []bool       `arg:"-v" help:"see more detail (verbose). -vvv is not advised for normal use."`
	Quiet     []bool       `arg:"-q" help:"see less detail (quiet)."`
	Debug     bool         `arg:"--debug" help:"display extended information about errors. Automatically implies -vv."`
	// Handled by go-arg
	// Help bool `arg:"-h,--help" help:"show this usage information"`

	// Diffing
	Original []string `arg:"--original,required" help:"definition files (xml, yaml) describing the deployed schema; later files override earlier ones"`
	Updated  []string `arg:"--updated,required" help:"definition files describing the desired schema"`

	// Output options
	OutputFile     string `arg:"--outputfile" help:"write the script here instead of stdout"`
	Report         bool   `arg:"--report" help:"print the change report to stderr"`
	NoColor        bool   `arg:"--nocolor" help:"do not color the change report"`
	FailOnDataLoss bool   `arg:"--failondataloss" help:"exit non-zero without writing a script when the upgrade drops data"`
	DumpComposite  string `arg:"--dumpcomposite" help:"also save the composited updated definition to this file"`
}

func (Args) Description() string {
	return "Generate a DDL upgrade script from two schema definitions"
}
