package xml

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/schemagraph/schemagraph/lib/ir"
	"github.com/schemagraph/schemagraph/lib/util"
)

type Table struct {
	Id             string        `xml:"id,attr,omitempty"`
	Name           string        `xml:"name,attr"`
	PrimaryKeyName string        `xml:"primaryKeyName,attr,omitempty"`
	Columns        []*Column     `xml:"column"`
	ForeignKeys    []*ForeignKey `xml:"foreignKey"`
}

type Column struct {
	Id                string `xml:"id,attr,omitempty"`
	Name              string `xml:"name,attr"`
	Type              string `xml:"type,attr,omitempty"`
	Length            string `xml:"length,attr,omitempty"`
	Precision         int    `xml:"precision,attr,omitempty"`
	Scale             int    `xml:"scale,attr,omitempty"`
	Nullable          bool   `xml:"null,attr"`
	Default           string `xml:"default,attr,omitempty"`
	PrimaryKey        bool   `xml:"primaryKey,attr,omitempty"`
	Identity          bool   `xml:"identity,attr,omitempty"`
	IdentitySeed      int    `xml:"identitySeed,attr,omitempty"`
	IdentityIncrement int    `xml:"identityIncrement,attr,omitempty"`
	Computed          string `xml:"computed,attr,omitempty"`
	Persisted         bool   `xml:"persisted,attr,omitempty"`
}

type ForeignKey struct {
	Id             string        `xml:"id,attr,omitempty"`
	Name           string        `xml:"name,attr"`
	Columns        DelimitedList `xml:"columns,attr"`
	ForeignSchema  string        `xml:"foreignSchema,attr,omitempty"`
	ForeignTable   string        `xml:"foreignTable,attr"`
	ForeignColumns DelimitedList `xml:"foreignColumns,attr"`
	OnUpdate       string        `xml:"onUpdate,attr,omitempty"`
	OnDelete       string        `xml:"onDelete,attr,omitempty"`
}

// Implement some custom unmarshalling behavior
func (self *Column) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	type colAlias Column // prevents recursion while decoding
	// columns are nullable unless they say otherwise
	col := &colAlias{
		Nullable: true,
	}
	err := decoder.DecodeElement(col, &start)
	if err != nil {
		return err
	}
	*self = Column(*col)
	return nil
}

func (self *Table) ToIR(schema string) (*ir.Table, error) {
	columns, err := util.MapErr(self.Columns, (*Column).ToIR)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s", self.Name)
	}
	fks, err := util.MapErr(self.ForeignKeys, (*ForeignKey).ToIR)
	if err != nil {
		return nil, errors.Wrapf(err, "table %s", self.Name)
	}
	return &ir.Table{
		Id:             self.Id,
		Schema:         schema,
		Name:           self.Name,
		PrimaryKeyName: self.PrimaryKeyName,
		Columns:        columns,
		ForeignKeys:    fks,
	}, nil
}

func (self *Column) ToIR() (*ir.Column, error) {
	length, err := ParseLength(self.Length)
	if err != nil {
		return nil, errors.Wrapf(err, "column %s", self.Name)
	}
	return &ir.Column{
		Id:                self.Id,
		Name:              self.Name,
		DataType:          self.Type,
		MaxLength:         length,
		Precision:         self.Precision,
		Scale:             self.Scale,
		IsNullable:        self.Nullable,
		DefaultValue:      self.Default,
		IsComputed:        strings.TrimSpace(self.Computed) != "",
		ComputedFormula:   self.Computed,
		ComputedPersisted: self.Persisted,
		IsIdentity:        self.Identity,
		IdentitySeed:      self.IdentitySeed,
		IdentityIncrement: self.IdentityIncrement,
		IsPrimaryKey:      self.PrimaryKey,
	}, nil
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
		Columns:              []string(self.Columns),
		ReferencedSchemaName: self.ForeignSchema,
		ReferencedTableName:  self.ForeignTable,
		ReferencedColumns:    []string(self.ForeignColumns),
		OnUpdateAction:       onUpdate,
		OnDeleteAction:       onDelete,
	}, nil
}

func TableFromIR(table *ir.Table) *Table {
	return &Table{
		Id:             table.Id,
		Name:           table.Name,
		PrimaryKeyName: table.PrimaryKeyName,
		Columns: util.Map(table.Columns, func(col *ir.Column) *Column {
			return &Column{
				Id:                col.Id,
				Name:              col.Name,
				Type:              col.DataType,
				Length:            FormatLength(col.MaxLength),
				Precision:         col.Precision,
				Scale:             col.Scale,
				Nullable:          col.IsNullable,
				Default:           col.DefaultValue,
				PrimaryKey:        col.IsPrimaryKey,
				Identity:          col.IsIdentity,
				IdentitySeed:      col.IdentitySeed,
				IdentityIncrement: col.IdentityIncrement,
				Computed:          util.MaybeStr(col.IsComputed, col.ComputedFormula),
				Persisted:         col.ComputedPersisted,
			}
		}),
		ForeignKeys: util.Map(table.ForeignKeys, func(fk *ir.ForeignKey) *ForeignKey {
			return &ForeignKey{
				Id:             fk.Id,
				Name:           fk.Name,
				Columns:        DelimitedList(fk.Columns),
				ForeignSchema:  fk.ReferencedSchemaName,
				ForeignTable:   fk.ReferencedTableName,
				ForeignColumns: DelimitedList(fk.ReferencedColumns),
				OnUpdate:       actionAttr(fk.OnUpdateAction),
				OnDelete:       actionAttr(fk.OnDeleteAction),
			}
		}),
	}
}

func actionAttr(action ir.ForeignKeyAction) string {
	if action.Equals(ir.ForeignKeyActionNoAction) {
		return ""
	}
	return action.Sql()
}

// ParseLength reads a column length, where MAX means unbounded and empty means unset.
func ParseLength(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.EqualFold(s, "max") {
		return ir.MaxLengthUnbounded, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.Errorf("invalid length %q", s)
	}
	return n, nil
}

func FormatLength(n int) string {
	switch {
	case n == ir.MaxLengthUnbounded:
		return "MAX"
	case n > 0:
		return strconv.Itoa(n)
	}
	return ""
}
