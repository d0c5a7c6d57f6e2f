package sql

import (
	"fmt"
	"strings"
)

const DefaultSchema = "public"

// Quoter double-quotes every identifier, so designer casing is preserved.
type Quoter struct {
	DefaultSchema string
}

func NewQuoter() *Quoter {
	return &Quoter{DefaultSchema: DefaultSchema}
}

func (self *Quoter) getQuotedName(name string) string {
	return fmt.Sprintf(`"%s"`, strings.ReplaceAll(name, `"`, `""`))
}

func (self *Quoter) QuoteSchema(name string) string {
	if name == "" {
		name = self.DefaultSchema
	}
	return self.getQuotedName(name)
}

func (self *Quoter) QuoteTable(name string) string {
	return self.getQuotedName(name)
}

func (self *Quoter) QuoteColumn(name string) string {
	return self.getQuotedName(name)
}

func (self *Quoter) QuoteObject(name string) string {
	return self.getQuotedName(name)
}

func (self *Quoter) QualifyTable(schema string, table string) string {
	return fmt.Sprintf("%s.%s", self.QuoteSchema(schema), self.QuoteTable(table))
}

func (self *Quoter) QualifyObject(schema string, object string) string {
	return fmt.Sprintf("%s.%s", self.QuoteSchema(schema), self.QuoteObject(object))
}

func (self *Quoter) LiteralString(value string) string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(value, "'", "''"))
}
