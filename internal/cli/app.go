package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/gogenie/annotate/internal/analysis"
	genieerrors "github.com/gogenie/annotate/internal/errors"
	"github.com/gogenie/annotate/internal/index"
	"github.com/gogenie/annotate/internal/utils"
)

// App runs subcommands against one project
type App struct {
	config      Config
	diagnostics *utils.DiagnosticSystem
	reporter    *DiagnosticReporter
	analyzer    *analysis.Analyzer
}

// NewApp opens the project enclosing cfg.Root
func NewApp(cfg Config) (*App, error) {
	cfg = cfg.withDefaults()

	level := utils.DiagnosticInfo
	switch {
	case cfg.Quiet || cfg.JSON:
		level = utils.DiagnosticError
	case cfg.Verbose:
		level = utils.DiagnosticVerbose
	}
	diagnostics := utils.NewDiagnosticSystem(level)
	diagnostics.SetOutput(cfg.Stderr, cfg.Stderr)
	if cfg.Stderr != os.Stderr {
		diagnostics.SetColors(false)
	}

	project, err := index.Open(cfg.Root, index.Options{ScanLimit: cfg.ScanLimit})
	if err != nil {
		return nil, err
	}
	diagnostics.Verbose("project root %s (module %q)", project.Root(), project.Module())

	return &App{
		config:      cfg,
		diagnostics: diagnostics,
		reporter:    NewDiagnosticReporterTo(cfg.Verbose, cfg.Stderr),
		analyzer:    analysis.New(project),
	}, nil
}

// Analyzer returns the analyzer commands run against
func (a *App) Analyzer() *analysis.Analyzer {
	return a.analyzer
}

// Diagnostics returns the logger of the app
func (a *App) Diagnostics() *utils.DiagnosticSystem {
	return a.diagnostics
}

// Reporter returns the error reporter of the app
func (a *App) Reporter() *DiagnosticReporter {
	return a.reporter
}

// Run executes the command named by args[0]
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return genieerrors.NewUsageError("a command is required (one of %v)", commands.List())
	}
	command, err := commands.GetOrError(args[0])
	if err != nil {
		return genieerrors.NewUsageError("%v", err)
	}

	if profile := a.analyzer.Project().Profiles.Config(); profile.ParseError != "" {
		a.diagnostics.Warn("config %s: %s (using defaults)", profile.ConfigPath, profile.ParseError)
	}
	return command.Run(ctx, a, args[1:])
}

func (a *App) out() io.Writer {
	return a.config.Stdout
}

// emit writes value as JSON in JSON mode and calls text otherwise
func (a *App) emit(value interface{}, text func(w io.Writer)) error {
	if !a.config.JSON {
		text(a.out())
		return nil
	}
	encoder := gojson.NewEncoder(a.out())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return genieerrors.WrapWithOperation("encode", "result", err)
	}
	return nil
}

// load reads a file named on the command line, relative to the working directory
func (a *App) load(path string) (analysis.Document, error) {
	if path == "" {
		return analysis.Document{}, genieerrors.NewUsageError("a file path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return analysis.Document{}, genieerrors.WrapFileSystemError("resolve", path, err)
	}
	return a.analyzer.Load(abs)
}

// rel shortens path for display
func (a *App) rel(path string) string {
	if rel, err := filepath.Rel(a.analyzer.Project().Root(), path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}
