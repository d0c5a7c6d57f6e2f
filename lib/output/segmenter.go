package output

import (
	"fmt"
	"strings"
)

const CommentLinePrefix = "--"

// ToSql is implemented by every statement a dialect can emit. Identifiers are
// quoted through the given Quoter at render time.
type ToSql interface {
	ToSql(Quoter) string
}

func NewRawSQL(format string, args ...interface{}) rawSQL {
	return rawSQL(fmt.Sprintf(format, args...))
}

type rawSQL string

func (c rawSQL) ToSql(q Quoter) string {
	return string(c)
}

// Comment is a single line comment. It is rendered but carries no DDL.
type Comment string

func (c Comment) ToSql(q Quoter) string {
	return CommentLinePrefix + " " + strings.ReplaceAll(string(c), "\n", "\n"+CommentLinePrefix+" ")
}

type Quoter interface {
	QuoteSchema(schema string) string
	QuoteTable(table string) string
	QuoteColumn(column string) string
	QuoteObject(obj string) string
	QualifyTable(schema, table string) string
	QualifyObject(schema, obj string) string
	LiteralString(value string) string
}

// Render turns statements into text, skipping nils.
func Render(q Quoter, stmts ...ToSql) []string {
	out := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		out = append(out, stmt.ToSql(q))
	}
	return out
}

func NewSegmenter(q Quoter) *Segmenter {
	return &Segmenter{quoter: q}
}

// Segmenter holds header, body and footer statements separately
// and returns the properly ordered list from AllStatements()
type Segmenter struct {
	quoter Quoter
	Header []ToSql
	Body   []ToSql
	Footer []ToSql
}

// SetHeader removes any previous header statements and
// starts the header fresh
func (s *Segmenter) SetHeader(stmts ...ToSql) {
	s.Header = nil
	s.AppendHeader(stmts...)
}

func (s *Segmenter) AppendHeader(stmts ...ToSql) {
	s.Header = appendNonNil(s.Header, stmts)
}

func (s *Segmenter) AppendFooter(stmts ...ToSql) {
	s.Footer = appendNonNil(s.Footer, stmts)
}

func (s *Segmenter) WriteSql(stmts ...ToSql) {
	s.Body = appendNonNil(s.Body, stmts)
}

// HasBody is false until a body statement is written.
func (s *Segmenter) HasBody() bool {
	return len(s.Body) > 0
}

// AllStatements renders header, body and footer, in that order.
func (s *Segmenter) AllStatements() []string {
	out := Render(s.quoter, s.Header...)
	out = append(out, Render(s.quoter, s.Body...)...)
	return append(out, Render(s.quoter, s.Footer...)...)
}

// String joins all statements one per line, with a trailing newline.
func (s *Segmenter) String() string {
	stmts := s.AllStatements()
	if len(stmts) == 0 {
		return ""
	}
	return strings.Join(stmts, "\n") + "\n"
}

func appendNonNil(to []ToSql, stmts []ToSql) []ToSql {
	for _, stmt := range stmts {
		if stmt != nil {
			to = append(to, stmt)
		}
	}
	return to
}
