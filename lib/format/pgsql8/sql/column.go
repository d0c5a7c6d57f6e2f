package sql

import (
	"fmt"

	"github.com/schemagraph/schemagraph/lib/output"
	"github.com/schemagraph/schemagraph/lib/util"
)

type Identity struct {
	Start     int
	Increment int
}

type Computed struct {
	Expression string
}

// ColumnDefinition is a column as it appears in CREATE TABLE or ADD COLUMN.
type ColumnDefinition struct {
	Name     string
	Type     string
	Nullable bool
	Default  string
	Identity *Identity
	Computed *Computed
}

func (self *ColumnDefinition) GetSql(q output.Quoter) string {
	generated := ""
	def := ""
	switch {
	case self.Computed != nil:
		generated = fmt.Sprintf("GENERATED ALWAYS AS (%s) STORED", self.Computed.Expression)
	case self.Identity != nil:
		generated = fmt.Sprintf("GENERATED BY DEFAULT AS IDENTITY (START WITH %d INCREMENT BY %d)", self.Identity.Start, self.Identity.Increment)
	case self.Default != "":
		def = "DEFAULT " + self.Default
	}
	return util.CondJoin(" ",
		q.QuoteColumn(self.Name),
		self.Type,
		def,
		generated,
		util.MaybeStr(!self.Nullable, "NOT NULL"),
	)
}
