package format

import (
	"github.com/schemagraph/schemagraph/lib/ir"
	"github.com/schemagraph/schemagraph/lib/output"
)

// Syntax quotes and qualifies identifiers and renders column data types.
type Syntax interface {
	output.Quoter
	FormatDataType(*ir.Column) string
}

// TableLifecycle creates, drops, renames and moves whole tables.
// Tables are addressed by their own Schema and Name.
type TableLifecycle interface {
	// CreateTable emits the table with its columns and primary key but without foreign keys
	CreateTable(*ir.Table) []string
	DropTable(*ir.Table) []string
	RenameTable(table *ir.Table, newName string) []string
	MoveTableToSchema(table *ir.Table, newSchema string) []string
	// GenerateFullTableScript emits the table followed by its foreign keys, for an initial build
	GenerateFullTableScript(*ir.Table) []string
}

type ColumnGenerator interface {
	AddColumn(table *ir.Table, col *ir.Column) []string
	DropColumn(table *ir.Table, col *ir.Column) []string
	AlterColumn(table *ir.Table, from, to *ir.Column) []string
	RenameColumn(table *ir.Table, oldName, newName string) []string
}

type ConstraintGenerator interface {
	AddPrimaryKey(*ir.Table) []string
	DropPrimaryKey(*ir.Table) []string
	AddForeignKey(table *ir.Table, fk *ir.ForeignKey) []string
	DropForeignKey(table *ir.Table, fk *ir.ForeignKey) []string
	RenameForeignKey(table *ir.Table, oldName, newName string) []string
}

type TableGenerator interface {
	TableLifecycle
	ColumnGenerator
	ConstraintGenerator
}

// CodeObjectGenerator handles objects defined by source text, such as views and procedures.
type CodeObjectGenerator interface {
	Create(ir.CodeObject) []string
	Alter(from, to ir.CodeObject) []string
	Drop(ir.CodeObject) []string
}

// Registry hands out the generators of one dialect.
type Registry interface {
	Syntax() Syntax
	Tables() TableGenerator
	CodeObjects(kind ir.ObjectKind) (CodeObjectGenerator, error)
}

//go:generate mockgen -destination=formattest/mock_platform.go -package=formattest . Platform

// Platform frames scripts and describes the target database product.
type Platform interface {
	Name() ir.SqlFormat
	WrapInTransaction(statements []string) string
	DefaultSchema() string
	DataTypes() []string
}

type Dialect interface {
	Registry
	Platform
}
