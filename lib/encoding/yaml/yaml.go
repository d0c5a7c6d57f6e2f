// Package yaml reads and writes definitions as yaml documents.
package yaml

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/schemagraph/schemagraph/lib/encoding"
	"github.com/schemagraph/schemagraph/lib/encoding/xml"
	"github.com/schemagraph/schemagraph/lib/ir"
	"github.com/schemagraph/schemagraph/lib/util"
)

const EncodingYAML = encoding.Format("yaml")

func init() {
	encoding.Register(EncodingYAML, NewYAMLEncoding, ".yaml", ".yml")
}

type YAMLEncoding struct{}

func NewYAMLEncoding() encoding.Encoding {
	return YAMLEncoding{}
}

func (e YAMLEncoding) Import(l *slog.Logger, r io.Reader) (*ir.Definition, error) {
	return ReadDef(r)
}

func (e YAMLEncoding) Export(l *slog.Logger, def *ir.Definition, w io.Writer) error {
	return WriteDef(w, def)
}

type Document struct {
	Tables     []*Table      `yaml:"tables,omitempty"`
	Views      []*CodeObject `yaml:"views,omitempty"`
	Procedures []*CodeObject `yaml:"procedures,omitempty"`
}

type Table struct {
	Id             string        `yaml:"id,omitempty"`
	Schema         string        `yaml:"schema,omitempty"`
	Name           string        `yaml:"name"`
	PrimaryKeyName string        `yaml:"primaryKeyName,omitempty"`
	Columns        []*Column     `yaml:"columns,omitempty"`
	ForeignKeys    []*ForeignKey `yaml:"foreignKeys,omitempty"`
}

type Column struct {
	Id         string    `yaml:"id,omitempty"`
	Name       string    `yaml:"name"`
	Type       string    `yaml:"type,omitempty"`
	Length     string    `yaml:"length,omitempty"`
	Precision  int       `yaml:"precision,omitempty"`
	Scale      int       `yaml:"scale,omitempty"`
	Nullable   *bool     `yaml:"nullable,omitempty"`
	Default    string    `yaml:"default,omitempty"`
	PrimaryKey bool      `yaml:"primaryKey,omitempty"`
	Identity   *Identity `yaml:"identity,omitempty"`
	Computed   *Computed `yaml:"computed,omitempty"`
}

type Identity struct {
	Seed      int `yaml:"seed"`
	Increment int `yaml:"increment"`
}

type Computed struct {
	Formula   string `yaml:"formula"`
	Persisted bool   `yaml:"persisted,omitempty"`
}

type ForeignKey struct {
	Id         string     `yaml:"id,omitempty"`
	Name       string     `yaml:"name"`
	Columns    []string   `yaml:"columns,flow"`
	References References `yaml:"references"`
	OnUpdate   string     `yaml:"onUpdate,omitempty"`
	OnDelete   string     `yaml:"onDelete,omitempty"`
}

type References struct {
	Schema  string   `yaml:"schema,omitempty"`
	Table   string   `yaml:"table"`
	Columns []string `yaml:"columns,flow"`
}

type CodeObject struct {
	Id         string `yaml:"id,omitempty"`
	Schema     string `yaml:"schema,omitempty"`
	Name       string `yaml:"name"`
	Definition string `yaml:"definition"`
}

func ReadDoc(r io.Reader) (*Document, error) {
	doc := &Document{}
	err := yaml.NewDecoder(r).Decode(doc)
	if err == io.EOF {
		return doc, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not unmarshal yaml")
	}
	return doc, nil
}

func WriteDoc(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "could not marshal yaml")
	}
	return errors.Wrap(enc.Close(), "could not marshal yaml")
}

func ReadDef(r io.Reader) (*ir.Definition, error) {
	doc, err := ReadDoc(r)
	if err != nil {
		return nil, err
	}
	return doc.ToIR()
}

func WriteDef(w io.Writer, def *ir.Definition) error {
	return WriteDoc(w, FromIR(def))
}

func (self *Document) ToIR() (*ir.Definition, error) {
	tables, err := util.MapErr(self.Tables, (*Table).ToIR)
	if err != nil {
		return nil, err
	}
	return &ir.Definition{
		Tables: tables,
		Views: util.Map(self.Views, func(obj *CodeObject) *ir.View {
			return &ir.View{Id: obj.Id, Schema: obj.Schema, Name: obj.Name, Definition: strings.TrimSpace(obj.Definition)}
		}),
		Procedures: util.Map(self.Procedures, func(obj *CodeObject) *ir.Procedure {
			return &ir.Procedure{Id: obj.Id, Schema: obj.Schema, Name: obj.Name, Definition: strings.TrimSpace(obj.Definition)}
		}),
	}, nil
}

func (self *Table) ToIR() (*ir.Table, error) {
	columns, err := util.MapErr(self.Columns, (*Column).ToIR)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s", util.CondJoin(".", self.Schema, self.Name))
	}
	fks, err := util.MapErr(self.ForeignKeys, (*ForeignKey).ToIR)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s", util.CondJoin(".", self.Schema, self.Name))
	}
	return &ir.Table{
		Id:             self.Id,
		Schema:         self.Schema,
		Name:           self.Name,
		PrimaryKeyName: self.PrimaryKeyName,
		Columns:        columns,
		ForeignKeys:    fks,
	}, nil
}

func (self *Column) ToIR() (*ir.Column, error) {
	// the length syntax is shared with the xml encoding
	length, err := xml.ParseLength(self.Length)
	if err != nil {
		return nil, errors.Wrapf(err, "column %s", self.Name)
	}
	col := &ir.Column{
		Id:           self.Id,
		Name:         self.Name,
		DataType:     self.Type,
		MaxLength:    length,
		Precision:    self.Precision,
		Scale:        self.Scale,
		IsNullable:   self.Nullable == nil || *self.Nullable,
		DefaultValue: self.Default,
		IsPrimaryKey: self.PrimaryKey,
	}
	if self.Identity != nil {
		col.IsIdentity = true
		col.IdentitySeed = self.Identity.Seed
		col.IdentityIncrement = self.Identity.Increment
	}
	if self.Computed != nil {
		col.IsComputed = true
		col.ComputedFormula = self.Computed.Formula
		col.ComputedPersisted = self.Computed.Persisted
	}
	return col, nil
}

func (self *ForeignKey) ToIR() (*ir.ForeignKey, error) {
	onUpdate, err := ir.NewForeignKeyAction(self.OnUpdate)
	if err != nil {
		return nil, errors.Wrapf(err, "foreign key %s", self.Name)
	}
	onDelete, err := ir.NewForeignKeyAction(self.OnDelete)
	if err != nil {
		return nil, errors.Wrapf(err, "foreign key %s", self.Name)
	}
	return &ir.ForeignKey{
		Id:                   self.Id,
		Name:                 self.Name,
		Columns:              self.Columns,
		ReferencedSchemaName: self.References.Schema,
		ReferencedTableName:  self.References.Table,
		ReferencedColumns:    self.References.Columns,
		OnUpdateAction:       onUpdate,
		OnDeleteAction:       onDelete,
	}, nil
}

func FromIR(def *ir.Definition) *Document {
	doc := &Document{}
	if def == nil {
		return doc
	}
	doc.Tables = util.Map(def.Tables, tableFromIR)
	doc.Views = util.Map(def.Views, func(v *ir.View) *CodeObject {
		return &CodeObject{Id: v.Id, Schema: v.Schema, Name: v.Name, Definition: v.Definition}
	})
	doc.Procedures = util.Map(def.Procedures, func(p *ir.Procedure) *CodeObject {
		return &CodeObject{Id: p.Id, Schema: p.Schema, Name: p.Name, Definition: p.Definition}
	})
	return doc
}

func tableFromIR(table *ir.Table) *Table {
	return &Table{
		Id:             table.Id,
		Schema:         table.Schema,
		Name:           table.Name,
		PrimaryKeyName: table.PrimaryKeyName,
		Columns:        util.Map(table.Columns, columnFromIR),
		ForeignKeys: util.Map(table.ForeignKeys, func(fk *ir.ForeignKey) *ForeignKey {
			out := &ForeignKey{
				Id:      fk.Id,
				Name:    fk.Name,
				Columns: fk.Columns,
				References: References{
					Schema:  fk.ReferencedSchemaName,
					Table:   fk.ReferencedTableName,
					Columns: fk.ReferencedColumns,
				},
			}
			if !fk.OnUpdateAction.Equals(ir.ForeignKeyActionNoAction) {
				out.OnUpdate = fk.OnUpdateAction.Sql()
			}
			if !fk.OnDeleteAction.Equals(ir.ForeignKeyActionNoAction) {
				out.OnDelete = fk.OnDeleteAction.Sql()
			}
			return out
		}),
	}
}

func columnFromIR(col *ir.Column) *Column {
	nullable := col.IsNullable
	out := &Column{
		Id:         col.Id,
		Name:       col.Name,
		Type:       col.DataType,
		Length:     xml.FormatLength(col.MaxLength),
		Precision:  col.Precision,
		Scale:      col.Scale,
		Nullable:   &nullable,
		Default:    col.DefaultValue,
		PrimaryKey: col.IsPrimaryKey,
	}
	if col.IsIdentity {
		out.Identity = &Identity{Seed: col.IdentitySeed, Increment: col.IdentityIncrement}
	}
	if col.IsComputed {
		out.Computed = &Computed{Formula: col.ComputedFormula, Persisted: col.ComputedPersisted}
	}
	return out
}
