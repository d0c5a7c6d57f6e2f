package sql

import (
	"fmt"
	"strings"
)

const DefaultSchema = "dbo"

// Quoter always brackets identifiers. An empty schema qualifies as DefaultSchema.
type Quoter struct {
	DefaultSchema string
}

func NewQuoter() *Quoter {
	return &Quoter{DefaultSchema: DefaultSchema}
}

func (self *Quoter) quote(name string) string {
	return fmt.Sprintf("[%s]", strings.ReplaceAll(name, "]", "]]"))
}

func (self *Quoter) schemaOrDefault(schema string) string {
	if schema == "" {
		return self.DefaultSchema
	}
	return schema
}

func (self *Quoter) QuoteSchema(name string) string {
	return self.quote(self.schemaOrDefault(name))
}

func (self *Quoter) QuoteTable(name string) string {
	return self.quote(name)
}

func (self *Quoter) QuoteColumn(name string) string {
	return self.quote(name)
}

func (self *Quoter) QuoteObject(name string) string {
	return self.quote(name)
}

func (self *Quoter) QualifyTable(schema string, table string) string {
	return fmt.Sprintf("%s.%s", self.QuoteSchema(schema), self.QuoteTable(table))
}

func (self *Quoter) QualifyObject(schema string, object string) string {
	return fmt.Sprintf("%s.%s", self.QuoteSchema(schema), self.QuoteObject(object))
}

// LiteralString renders a unicode string literal.
func (self *Quoter) LiteralString(value string) string {
	return fmt.Sprintf("N'%s'", strings.ReplaceAll(value, "'", "''"))
}
