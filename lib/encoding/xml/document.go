package xml

import (
	"encoding/xml"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/schemagraph/schemagraph/lib/ir"
	"github.com/schemagraph/schemagraph/lib/util"
)

type Document struct {
	XMLName xml.Name  `xml:"schemagraph"`
	Schemas []*Schema `xml:"schema"`
}

type Schema struct {
	Name       string       `xml:"name,attr"`
	Tables     []*Table     `xml:"table"`
	Views      []*View      `xml:"view"`
	Procedures []*Procedure `xml:"procedure"`
}

// ToIR converts the document into a definition. No semantic validation is
// done here; see ir.Definition.Validate.
func (self *Document) ToIR() (*ir.Definition, error) {
	def := &ir.Definition{}
	for _, schema := range self.Schemas {
		tables, err := util.MapErr(schema.Tables, util.Partial2RE((*Table).ToIR, schema.Name))
		if err != nil {
			return nil, errors.Wrapf(err, "could not process tables of schema %s", schema.Name)
		}
		def.Tables = append(def.Tables, tables...)
		def.Views = append(def.Views, util.Map(schema.Views, util.Partial2R((*View).ToIR, schema.Name))...)
		def.Procedures = append(def.Procedures, util.Map(schema.Procedures, util.Partial2R((*Procedure).ToIR, schema.Name))...)
	}
	return def, nil
}

// FromIR groups the objects of a definition by schema, in order of first appearance.
func FromIR(l *slog.Logger, def *ir.Definition) (*Document, error) {
	if l == nil {
		l = slog.Default()
	}
	doc := &Document{}
	schemas := util.NewOrderedMap[string, *Schema]()
	schemaFor := func(name string) *Schema {
		schema, ok := schemas.Get(name)
		if !ok {
			schema = &Schema{Name: name}
			schemas.Set(name, schema)
		}
		return schema
	}
	if def == nil {
		return doc, nil
	}
	for _, table := range def.Tables {
		schema := schemaFor(table.Schema)
		schema.Tables = append(schema.Tables, TableFromIR(table))
	}
	for _, view := range def.Views {
		schema := schemaFor(view.Schema)
		schema.Views = append(schema.Views, &View{Id: view.Id, Name: view.Name, Query: view.Definition})
	}
	for _, proc := range def.Procedures {
		schema := schemaFor(proc.Schema)
		schema.Procedures = append(schema.Procedures, &Procedure{Id: proc.Id, Name: proc.Name, Definition: proc.Definition})
	}
	doc.Schemas = schemas.Values()
	l.Debug("converted definition to xml document", slog.Int("schemas", len(doc.Schemas)))
	return doc, nil
}
