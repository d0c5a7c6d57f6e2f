package diff

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/schemagraph/schemagraph/lib/format"
	"github.com/schemagraph/schemagraph/lib/graph"
	"github.com/schemagraph/schemagraph/lib/ir"
	"github.com/schemagraph/schemagraph/lib/util"
)

var idUnsafeChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Context is what a Handler sees of one diff run: both snapshots, the
// generators of the target dialect, and the graph commands are added to.
type Context struct {
	Logger   *slog.Logger
	Original *ir.Definition
	Updated  *ir.Definition
	Registry format.Registry

	graph *graph.Graph
}

func NewContext(logger *slog.Logger, original, updated *ir.Definition, registry format.Registry, g *graph.Graph) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	if original == nil {
		original = &ir.Definition{}
	}
	if updated == nil {
		updated = &ir.Definition{}
	}
	return &Context{
		Logger:   logger,
		Original: original,
		Updated:  updated,
		Registry: registry,
		graph:    g,
	}
}

func (self *Context) Graph() *graph.Graph {
	return self.graph
}

// CreateId builds a deterministic command id of the form kind_part1_part2.
// Every character of a part outside [A-Za-z0-9_] becomes an underscore, and
// the result is lower-cased.
func (self *Context) CreateId(kind string, parts ...string) string {
	out := make([]string, 0, len(parts)+1)
	out = append(out, sanitizeIdPart(kind))
	for _, part := range parts {
		out = append(out, sanitizeIdPart(part))
	}
	return strings.Join(out, "_")
}

func sanitizeIdPart(part string) string {
	return strings.ToLower(idUnsafeChars.ReplaceAllString(part, "_"))
}

// CommandSpec describes a command to register with AddTypedCommand.
type CommandSpec struct {
	Id           string
	Phase        graph.Phase
	Statements   []string
	Dependencies []string
	Description  string
	Kind         graph.CommandKind
	Target       string
}

// AddCommand registers a command unless none of its statements have content.
// It returns whether the command was registered; only then is its id a
// meaningful dependency.
func (self *Context) AddCommand(id string, phase graph.Phase, statements []string, dependencies []string, description string) bool {
	return self.AddTypedCommand(CommandSpec{
		Id:           id,
		Phase:        phase,
		Statements:   statements,
		Dependencies: dependencies,
		Description:  description,
	})
}

func (self *Context) AddTypedCommand(spec CommandSpec) bool {
	statements := util.Filter(spec.Statements, func(stmt string) bool {
		return !util.IsBlank(stmt)
	})
	if len(statements) == 0 {
		self.Logger.Debug("discarding command without statements", slog.String("id", spec.Id))
		return false
	}
	deps := util.NewStrSet(spec.Dependencies...)
	self.graph.AddCommand(graph.Command{
		Id:           spec.Id,
		Phase:        spec.Phase,
		Statements:   statements,
		Description:  spec.Description,
		Dependencies: deps,
		Kind:         spec.Kind,
		Target:       spec.Target,
	})
	self.Logger.Debug("registered command",
		slog.String("id", spec.Id),
		slog.String("phase", spec.Phase.String()),
		slog.Int("statements", len(statements)),
		slog.Int("dependencies", deps.Len()),
	)
	return true
}

// FindCommandsForTable returns, in ascending order, every registered command id
// containing the lower-cased table name, sanitized the way CreateId sanitizes.
// This is a coarse match: it also finds commands of tables whose names merely
// contain this one.
func (self *Context) FindCommandsForTable(name string) []string {
	needle := sanitizeIdPart(name)
	out := []string{}
	if needle == "" {
		return out
	}
	for _, id := range self.graph.AllCommandIds() {
		if strings.Contains(id, needle) {
			out = append(out, id)
		}
	}
	return out
}
