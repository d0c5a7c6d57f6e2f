package lib

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/schemagraph/schemagraph/lib/config"
	"github.com/schemagraph/schemagraph/lib/diff"
	"github.com/schemagraph/schemagraph/lib/encoding"
	"github.com/schemagraph/schemagraph/lib/format"
	"github.com/schemagraph/schemagraph/lib/graph"
	"github.com/schemagraph/schemagraph/lib/ir"
	"github.com/schemagraph/schemagraph/lib/util"
)

var Version = "1.0.0"

var ErrDataLoss = errors.New("upgrade would lose data")

// App is the command line front end: it loads both definitions, runs the
// diff and writes the script.
type App struct {
	logger zerolog.Logger
	stdout io.Writer
	stderr io.Writer
}

func NewApp() *App {
	return &App{
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// NewAppWithOutput is NewApp with every stream redirected, for tests.
func NewAppWithOutput(stdout, stderr io.Writer) *App {
	return &App{
		logger: zerolog.New(stderr),
		stdout: stdout,
		stderr: stderr,
	}
}

func (self *App) ArgParse() {
	args := &config.Args{}
	arg.MustParse(args)
	self.setVerbosity(args)

	self.Notice("schemagraph version %s", Version)
	if err := self.Run(args); err != nil {
		self.Fatal("%v", err)
	}
}

// Logger is the slog view of the zerolog logger, for library code.
func (self *App) Logger() *slog.Logger {
	return slog.New(newLogHandler(&self.logger))
}

func (self *App) Run(args *config.Args) error {
	sqlFormat, err := ir.NewSqlFormat(string(args.SqlFormat))
	if err != nil {
		return err
	}
	dialect, err := format.Lookup(sqlFormat)
	if err != nil {
		return err
	}
	self.Notice("Using sqlformat=%s", sqlFormat)

	original, updated, err := self.loadDefinitions(args.Original, args.Updated)
	if err != nil {
		return err
	}
	self.validate("original", original, dialect)
	self.validate("updated", updated, dialect)

	if args.DumpComposite != "" {
		self.Notice("Saving composite as %s", args.DumpComposite)
		if err := encoding.SaveDefinition(self.Logger(), args.DumpComposite, updated); err != nil {
			return err
		}
	}

	result, err := diff.Plan(self.Logger(), original, updated, dialect)
	if err != nil {
		return err
	}
	if args.Report {
		self.printReport(result.Report, !args.NoColor)
	}
	if result.DataLoss {
		self.Warning("Upgrade drops data: %s", strings.Join(result.Destructive, ", "))
		if args.FailOnDataLoss {
			return ErrDataLoss
		}
	}
	if !result.HasChanges() {
		self.Notice("No changes between definitions")
	}

	if args.OutputFile == "" {
		_, err := io.WriteString(self.stdout, result.Script)
		return errors.Wrap(err, "could not write script")
	}
	self.Notice("Writing %d commands to %s", len(result.CommandIds), args.OutputFile)
	return util.WriteFile(result.Script, args.OutputFile)
}

// loadDefinitions composites both sides concurrently.
func (self *App) loadDefinitions(originalFiles, updatedFiles []string) (*ir.Definition, *ir.Definition, error) {
	var original, updated *ir.Definition
	var group errgroup.Group
	group.Go(func() error {
		def, err := self.composite(originalFiles)
		original = def
		return errors.Wrap(err, "while loading original definition")
	})
	group.Go(func() error {
		def, err := self.composite(updatedFiles)
		updated = def
		return errors.Wrap(err, "while loading updated definition")
	})
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return original, updated, nil
}

func (self *App) composite(files []string) (*ir.Definition, error) {
	composite := &ir.Definition{}
	for _, file := range files {
		self.Info("Loading %s", file)
		def, err := encoding.LoadDefinition(self.Logger(), file)
		if err != nil {
			return nil, err
		}
		composite.Merge(def)
	}
	return composite, nil
}

// validate only warns; a diff tolerates definitions that would not deploy cleanly.
func (self *App) validate(name string, def *ir.Definition, platform format.Platform) {
	if err := def.Validate(); err != nil {
		self.Warning("%s definition has problems: %v", name, err)
	}
	for _, dataType := range format.UnknownDataTypes(platform, def) {
		self.Warning("%s definition uses type %s, which %s does not know", name, dataType, platform.Name())
	}
}

func (self *App) printReport(lines []string, useColor bool) {
	header := color.New(color.Bold)
	drop := color.New(color.FgRed)
	change := color.New(color.FgYellow)
	create := color.New(color.FgGreen)
	if !useColor {
		for _, c := range []*color.Color{header, drop, change, create} {
			c.DisableColor()
		}
	}

	for _, line := range lines {
		c := header
		switch {
		case line == graph.ReportHeader:
		case strings.HasPrefix(line, "- Drop"):
			c = drop
		case strings.HasPrefix(line, "- Create"), strings.HasPrefix(line, "- Add"):
			c = create
		default:
			c = change
		}
		c.Fprintln(self.stderr, line)
	}
}

func (self *App) Fatal(s string, args ...interface{}) {
	self.logger.Fatal().Msgf(s, args...)
}

func (self *App) Warning(s string, args ...interface{}) {
	self.logger.Warn().Msgf(s, args...)
}

func (self *App) Notice(s string, args ...interface{}) {
	self.Info(s, args...)
}

func (self *App) Info(s string, args ...interface{}) {
	self.logger.Info().Msgf(s, args...)
}

func (self *App) setVerbosity(args *config.Args) {
	level := zerolog.InfoLevel

	if args.Debug {
		level = zerolog.TraceLevel
	}

	for _, v := range args.Verbose {
		if v {
			level -= 1
		} else {
			level += 1
		}
	}
	for _, q := range args.Quiet {
		if q {
			level += 1
		} else {
			level -= 1
		}
	}

	// clamp it to [trace, panic]
	if level < zerolog.TraceLevel {
		level = zerolog.TraceLevel
	}
	if level > zerolog.PanicLevel {
		level = zerolog.PanicLevel
	}

	self.logger = self.logger.Level(level)
	self.logger.Debug().Msgf("Log level set to %s", level)
}
