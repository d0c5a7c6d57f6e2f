package diff

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/schemagraph/schemagraph/lib/format"
	"github.com/schemagraph/schemagraph/lib/graph"
	"github.com/schemagraph/schemagraph/lib/ir"
)

// Run diffs original against updated and returns the populated command graph.
// Both definitions are cloned first, and every call owns its graph, so Run may
// be called concurrently. With no handlers given, DefaultHandlers are used.
func Run(logger *slog.Logger, original, updated *ir.Definition, registry format.Registry, handlers ...Handler) (*graph.Graph, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(handlers) == 0 {
		handlers = DefaultHandlers()
	}
	g := graph.New()
	ctx := NewContext(logger, original.Clone(), updated.Clone(), registry, g)
	for _, handler := range handlers {
		if err := handler.BuildCommands(ctx); err != nil {
			return nil, errors.Wrapf(err, "while building %s commands", handler.Name())
		}
		logger.Debug("handler finished", slog.String("handler", handler.Name()), slog.Int("commands", g.Len()))
	}
	return g, nil
}

// Result is everything a caller needs to present or apply a diff.
type Result struct {
	Script      string
	Report      []string
	DataLoss    bool
	Destructive []string
	CommandIds  []string
}

// HasChanges is false when the diff produced no commands.
func (self *Result) HasChanges() bool {
	return len(self.CommandIds) > 0
}

// Plan runs the diff and renders the script and report for the dialect.
func Plan(logger *slog.Logger, original, updated *ir.Definition, dialect format.Dialect, handlers ...Handler) (*Result, error) {
	g, err := Run(logger, original, updated, dialect, handlers...)
	if err != nil {
		return nil, err
	}
	script, err := g.ToScript(dialect)
	if err != nil {
		return nil, errors.Wrap(err, "could not generate script")
	}
	return &Result{
		Script:      script,
		Report:      g.ReportLines(),
		DataLoss:    g.HasDataLoss(),
		Destructive: g.DestructiveCommands(),
		CommandIds:  g.AllCommandIds(),
	}, nil
}
