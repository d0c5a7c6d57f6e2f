package ir

import (
	"fmt"
	"strings"
)

type SqlFormat string

const (
	SqlFormatUnknown SqlFormat = ""
	SqlFormatPgsql8  SqlFormat = "pgsql8"
	SqlFormatMssql10 SqlFormat = "mssql10"
)

func NewSqlFormat(from string) (SqlFormat, error) {
	to := SqlFormat(strings.ToLower(from))
	if to.Equals(SqlFormatPgsql8) || to.Equals(SqlFormatMssql10) {
		return to, nil
	}
	return to, fmt.Errorf("unknown SqlFormat: '%s'", from)
}

func (sf SqlFormat) Equals(other SqlFormat) bool {
	return strings.EqualFold(string(sf), string(other))
}

// ObjectKind names a category of schema object that has its own generator.
type ObjectKind string

const (
	ObjectKindTable     ObjectKind = "table"
	ObjectKindView      ObjectKind = "view"
	ObjectKindProcedure ObjectKind = "procedure"
)
