package format

import (
	"strings"

	"github.com/schemagraph/schemagraph/lib/ir"
)

const DefaultSqlFormat = ir.SqlFormatMssql10

func normalizeType(t string) string {
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	return strings.ToLower(strings.TrimSpace(t))
}
