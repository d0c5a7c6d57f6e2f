package format

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/schemagraph/schemagraph/lib/ir"
)

var dialectMutex sync.Mutex
var dialects = make(map[ir.SqlFormat]func() Dialect)

// Register makes a dialect available to Lookup. Dialect packages call it from init.
func Register(id ir.SqlFormat, constructor func() Dialect) {
	dialectMutex.Lock()
	defer dialectMutex.Unlock()
	dialects[id] = constructor
}

func Lookup(id ir.SqlFormat) (Dialect, error) {
	dialectMutex.Lock()
	defer dialectMutex.Unlock()
	for registered, constructor := range dialects {
		if registered.Equals(id) {
			return constructor(), nil
		}
	}
	return nil, errors.Errorf("no such sql format as %s", id)
}

// Registered lists the registered dialects in name order.
func Registered() []ir.SqlFormat {
	dialectMutex.Lock()
	defer dialectMutex.Unlock()
	out := make([]ir.SqlFormat, 0, len(dialects))
	for id := range dialects {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// UnknownDataTypes returns the data types used by the definition that the
// platform does not list, in first-seen order.
func UnknownDataTypes(platform Platform, def *ir.Definition) []string {
	known := map[string]bool{}
	for _, t := range platform.DataTypes() {
		known[normalizeType(t)] = true
	}
	seen := map[string]bool{}
	out := []string{}
	if def == nil {
		return out
	}
	for _, table := range def.Tables {
		for _, col := range table.Columns {
			if col.IsComputed || col.DataType == "" {
				continue
			}
			norm := normalizeType(col.DataType)
			if known[norm] || seen[norm] {
				continue
			}
			seen[norm] = true
			out = append(out, col.DataType)
		}
	}
	return out
}
