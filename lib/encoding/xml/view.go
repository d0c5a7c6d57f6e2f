package xml

import (
	"strings"

	"github.com/schemagraph/schemagraph/lib/ir"
)

type View struct {
	Id    string `xml:"id,attr,omitempty"`
	Name  string `xml:"name,attr"`
	Query string `xml:"viewQuery"`
}

type Procedure struct {
	Id         string `xml:"id,attr,omitempty"`
	Name       string `xml:"name,attr"`
	Definition string `xml:"definition"`
}

func (self *View) ToIR(schema string) *ir.View {
	return &ir.View{
		Id:         self.Id,
		Schema:     schema,
		Name:       self.Name,
		Definition: strings.TrimSpace(self.Query),
	}
}

func (self *Procedure) ToIR(schema string) *ir.Procedure {
	return &ir.Procedure{
		Id:         self.Id,
		Schema:     schema,
		Name:       self.Name,
		Definition: strings.TrimSpace(self.Definition),
	}
}
