package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gogenie/annotate/internal/analysis"
	"github.com/gogenie/annotate/internal/annotations"
	"github.com/gogenie/annotate/internal/config"
	"github.com/gogenie/annotate/internal/enum"
	genieerrors "github.com/gogenie/annotate/internal/errors"
	"github.com/gogenie/annotate/internal/index"
	"github.com/gogenie/annotate/internal/server"
	"github.com/gogenie/annotate/internal/utils"
)

// Command is one subcommand of the CLI
type Command struct {
	Name    string
	Usage   string
	Summary string
	Run     func(ctx context.Context, app *App, args []string) error
}

var commands = utils.NewRegistry[Command]("command")

func init() {
	for _, command := range []Command{
		{Name: "annotations", Usage: "annotations <file>", Summary: "List the annotations of every comment in a file", Run: runAnnotations},
		{Name: "complete", Usage: "complete <file> <offset>", Summary: "Show completion candidates at a byte offset", Run: runComplete},
		{Name: "enum", Usage: "enum <file> [offset]", Summary: "List enum ranges, or resolve the enum reference at an offset", Run: runEnum},
		{Name: "routes", Usage: "routes [--deep] <file>", Summary: "Resolve http route annotations to the generated router", Run: runRoutes},
		{Name: "mounts", Usage: "mounts [file]", Summary: "List mount aliases and bindings, or resolve the mount values of a file", Run: runMounts},
		{Name: "lint", Usage: "lint [paths...]", Summary: "Check annotation argument lists", Run: runLint},
		{Name: "commands", Usage: "commands <annotation> [scope-path]", Summary: "Show the generator commands for an annotation", Run: runCommands},
		{Name: "config", Usage: "config [--write] [--diff] [--<key> value]", Summary: "Print, preview or write the project config", Run: runConfig},
		{Name: "serve", Usage: "serve [--engine echo|gin|fiber] [--addr :8080]", Summary: "Serve the resolvers over HTTP", Run: runServe},
	} {
		commands.MustRegister(command.Name, command)
	}
}

// Commands returns every subcommand sorted by name
func Commands() []Command {
	var result []Command
	for _, name := range commands.List() {
		command, _ := commands.Get(name)
		result = append(result, command)
	}
	return result
}

// parseFlags parses fs allowing flags after positional arguments
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, genieerrors.NewUsageError("%s: %v", fs.Name(), err)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func newFlagSet(app *App, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(app.config.Stderr)
	return fs
}

func expectArgs(name string, args []string, min, max int) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		command, _ := commands.Get(name)
		return genieerrors.NewUsageError("usage: %s", command.Usage)
	}
	return nil
}

func parseOffset(doc analysis.Document, raw string) (int, error) {
	offset, err := strconv.Atoi(raw)
	if err != nil {
		return 0, genieerrors.NewUsageError("offset %q is not a number", raw)
	}
	if err := utils.ValidateOffset("offset", len(doc.Text))(offset); err != nil {
		return 0, genieerrors.NewUsageError("%v", err)
	}
	return offset, nil
}

func runAnnotations(_ context.Context, app *App, args []string) error {
	if err := expectArgs("annotations", args, 1, 1); err != nil {
		return err
	}
	doc, err := app.load(args[0])
	if err != nil {
		return err
	}
	comments, err := app.analyzer.Annotations(doc)
	if err != nil {
		return err
	}

	return app.emit(comments, func(w io.Writer) {
		for _, comment := range comments {
			for _, match := range comment.Matches {
				if !match.Recognized {
					fmt.Fprintf(w, "%s:%d @%s (unrecognized)\n", app.rel(doc.Path), comment.Line, match.Name)
					continue
				}
				fmt.Fprintf(w, "%s:%d @%s [%s]\n", app.rel(doc.Path), comment.Line, match.Name, match.CommandFamily)
				if len(match.Options) > 0 {
					keys := make([]string, len(match.Options))
					for i, option := range match.Options {
						keys[i] = option.Key
					}
					fmt.Fprintf(w, "    options: %s\n", strings.Join(keys, ", "))
				}
			}
			if comment.Impl != nil {
				fmt.Fprintf(w, "    implements: %s (@%s)\n", comment.Impl.Interface, comment.Impl.Annotation)
			}
			for _, command := range comment.Commands {
				fmt.Fprintf(w, "    run: %s\n", command.String())
			}
		}
	})
}

func runComplete(_ context.Context, app *App, args []string) error {
	if err := expectArgs("complete", args, 2, 2); err != nil {
		return err
	}
	doc, err := app.load(args[0])
	if err != nil {
		return err
	}
	offset, err := parseOffset(doc, args[1])
	if err != nil {
		return err
	}
	completion, err := app.analyzer.Complete(doc, offset)
	if err != nil {
		return err
	}

	return app.emit(completion, func(w io.Writer) {
		ctx := completion.Context
		switch ctx.Kind {
		case annotations.ContextAnnotationOption:
			fmt.Fprintf(w, "%s @%s (prefix %q)\n", ctx.Kind, ctx.AnnotationName, ctx.Prefix)
		default:
			fmt.Fprintf(w, "%s (prefix %q)\n", ctx.Kind, ctx.Prefix)
		}
		for _, item := range completion.Items {
			if item.CommandFamily != "" {
				fmt.Fprintf(w, "  %s\t%s\n", item.Label, item.CommandFamily)
			} else {
				fmt.Fprintf(w, "  %s\n", item.Label)
			}
		}
	})
}

func runEnum(_ context.Context, app *App, args []string) error {
	if err := expectArgs("enum", args, 1, 2); err != nil {
		return err
	}
	doc, err := app.load(args[0])
	if err != nil {
		return err
	}

	if len(args) == 1 {
		ranges, err := app.analyzer.EnumRanges(doc)
		if err != nil {
			return err
		}
		if ranges == nil {
			ranges = []enum.SemanticRange{}
		}
		return app.emit(ranges, func(w io.Writer) {
			for _, r := range ranges {
				loc := genieerrors.LocationAt(app.rel(doc.Path), doc.Text, r.Span.Start)
				name := r.EnumName
				if r.ConstName != "" {
					name += "." + r.ConstName
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", loc.String(), r.Kind, name)
			}
		})
	}

	offset, err := parseOffset(doc, args[1])
	if err != nil {
		return err
	}
	resolution, ok, err := app.analyzer.ResolveEnum(doc, offset)
	if err != nil {
		return err
	}
	if !ok {
		return app.emit(nil, func(w io.Writer) {
			fmt.Fprintln(w, "no enum reference at offset")
		})
	}

	return app.emit(resolution, func(w io.Writer) {
		name := resolution.Target.EnumName
		if resolution.Target.ConstName != "" {
			name += "." + resolution.Target.ConstName
		}
		if resolution.Location == nil {
			fmt.Fprintf(w, "%s -> not generated\n", name)
			return
		}
		loc := resolution.Location
		fmt.Fprintf(w, "%s -> %s:%d:%d\n", name, app.rel(loc.Path), loc.Line, loc.Column)
	})
}

func runRoutes(_ context.Context, app *App, args []string) error {
	fs := newFlagSet(app, "routes")
	deep := fs.Bool("deep", false, "Search every generated file when the expected one lacks the route")
	args, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if err := expectArgs("routes", args, 1, 1); err != nil {
		return err
	}
	doc, err := app.load(args[0])
	if err != nil {
		return err
	}
	routes, err := app.analyzer.Routes(doc, *deep)
	if err != nil {
		return err
	}
	if routes == nil {
		routes = []analysis.RouteResolution{}
	}

	return app.emit(routes, func(w io.Writer) {
		for _, route := range routes {
			ctx := route.Context
			method := strings.ToUpper(ctx.Method)
			if method == "" {
				method = "ANY"
			}
			line := genieerrors.LocationAt("", doc.Text, route.Anchor.Span.Start).Line
			target := "not generated"
			if route.Location != nil {
				target = fmt.Sprintf("%s:%d:%d", app.rel(route.Location.Path), route.Location.Line, route.Location.Column)
			}
			fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n", line, method, ctx.FullRoute, ctx.Handler, target)
		}
	})
}

type mountListing struct {
	Aliases    []string                    `json:"aliases"`
	Generation index.Generation            `json:"generation"`
	Bindings   map[string][]bindingSummary `json:"bindings"`
}

type bindingSummary struct {
	Path       string   `json:"path"`
	StructName string   `json:"structName"`
	Fields     []string `json:"fields"`
}

func runMounts(_ context.Context, app *App, args []string) error {
	if err := expectArgs("mounts", args, 0, 1); err != nil {
		return err
	}

	if len(args) == 1 {
		doc, err := app.load(args[0])
		if err != nil {
			return err
		}
		values, err := app.analyzer.MountValues(doc)
		if err != nil {
			return err
		}
		if values == nil {
			values = []analysis.MountResolution{}
		}
		return app.emit(values, func(w io.Writer) {
			for _, value := range values {
				line := genieerrors.LocationAt("", doc.Text, value.Anchor.Span.Start).Line
				if value.Target == nil {
					fmt.Fprintf(w, "%d\t@%s %s\tunresolved\n", line, value.Anchor.AnnotationName, value.Anchor.ValueName)
					continue
				}
				target := value.Target.StructName
				if value.Target.FieldName != "" {
					target += "." + value.Target.FieldName
				}
				fmt.Fprintf(w, "%d\t@%s %s\t%s (%s)\n", line, value.Anchor.AnnotationName, value.Anchor.ValueName, target, app.rel(value.Target.Path))
			}
		})
	}

	aliases, generation, err := app.analyzer.Aliases()
	if err != nil {
		return err
	}
	grouped, err := app.analyzer.Bindings()
	if err != nil {
		return err
	}
	listing := mountListing{Aliases: aliases, Generation: generation, Bindings: map[string][]bindingSummary{}}
	for alias, bindings := range grouped {
		for _, binding := range bindings {
			summary := bindingSummary{Path: app.rel(binding.Path), StructName: binding.StructName, Fields: []string{}}
			for _, field := range binding.Fields {
				summary.Fields = append(summary.Fields, field.Name)
			}
			listing.Bindings[alias] = append(listing.Bindings[alias], summary)
		}
	}
	app.diagnostics.PhaseHeader("Indexing")
	app.diagnostics.PhaseItem(fmt.Sprintf("%d files scanned (generation %s)", generation.Files, generation.ID))
	if generation.Truncated {
		app.diagnostics.Warn("project scan stopped after %d files", generation.Files)
	}
	bindingCount := 0
	for _, bindings := range listing.Bindings {
		bindingCount += len(bindings)
	}
	app.diagnostics.Summary("Mount index", map[string]interface{}{
		"aliases":  len(aliases),
		"bindings": bindingCount,
		"files":    generation.Files,
	})

	return app.emit(listing, func(w io.Writer) {
		for _, alias := range aliases {
			fmt.Fprintf(w, "%s\n", alias)
			for _, binding := range listing.Bindings[alias] {
				fmt.Fprintf(w, "    %s (%s)", binding.StructName, binding.Path)
				if len(binding.Fields) > 0 {
					fmt.Fprintf(w, ": %s", strings.Join(binding.Fields, ", "))
				}
				fmt.Fprintln(w)
			}
		}
	})
}

func runLint(_ context.Context, app *App, args []string) error {
	if len(args) == 0 {
		args = []string{app.analyzer.Project().Root()}
	}

	processor := utils.NewFileProcessorWithReader(app.analyzer.Project().Reader())
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return genieerrors.WrapFileSystemError("stat", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		walked, err := processor.WalkGoFiles(arg, 0)
		if err != nil {
			return err
		}
		files = append(files, walked.Files...)
	}

	app.diagnostics.PhaseHeader("Linting")
	var all []analysis.LintDiagnostic
	for _, file := range files {
		doc, err := app.load(file)
		if err != nil {
			return err
		}
		diagnostics, err := app.analyzer.Lint(doc)
		if err != nil {
			return err
		}
		all = append(all, diagnostics...)
	}
	if all == nil {
		all = []analysis.LintDiagnostic{}
	}

	errorCount := 0
	for _, d := range all {
		if d.Severity == annotations.SeverityError {
			errorCount++
		}
	}
	app.diagnostics.PhaseItem(fmt.Sprintf("%d files checked", len(files)))

	if err := app.emit(all, func(w io.Writer) {
		for _, d := range all {
			fmt.Fprintf(w, "%s:%d:%d: %s: %s (%s)\n", app.rel(d.Path), d.Line, d.Column, d.Severity, d.Message, d.Code)
		}
	}); err != nil {
		return err
	}
	app.diagnostics.Summary("Lint", map[string]interface{}{
		"files":    len(files),
		"errors":   errorCount,
		"warnings": len(all) - errorCount,
	})

	if errorCount > 0 {
		return genieerrors.Newf(genieerrors.SyntaxErrorCode, "%d annotation error(s) found", errorCount)
	}
	return nil
}

type commandLine struct {
	Label string   `json:"label"`
	Argv  []string `json:"argv"`
}

func runCommands(_ context.Context, app *App, args []string) error {
	if err := expectArgs("commands", args, 1, 2); err != nil {
		return err
	}
	profile, err := app.analyzer.Project().Profile()
	if err != nil {
		return err
	}
	scope := ""
	if len(args) == 2 {
		scope = args[1]
	}

	var lines []commandLine
	for _, command := range annotations.ResolveQuickCommands(strings.TrimPrefix(args[0], "@"), profile) {
		lines = append(lines, commandLine{Label: command.Label, Argv: command.Argv("gogenie", scope)})
	}
	if lines == nil {
		lines = []commandLine{}
	}

	return app.emit(lines, func(w io.Writer) {
		if len(lines) == 0 {
			fmt.Fprintf(w, "no generator command for @%s\n", strings.TrimPrefix(args[0], "@"))
		}
		for _, line := range lines {
			fmt.Fprintf(w, "%s\t%s\n", line.Label, strings.Join(line.Argv, " "))
		}
	})
}

type configResult struct {
	Path    string `json:"path"`
	YAML    string `json:"yaml"`
	Diff    string `json:"diff,omitempty"`
	Written bool   `json:"written"`
}

func runConfig(_ context.Context, app *App, args []string) error {
	project := app.analyzer.Project()
	editable := config.EditableFrom(project.Profiles.Config())

	fs := newFlagSet(app, "config")
	write := fs.Bool("write", false, "Write the config file")
	diff := fs.Bool("diff", false, "Show a diff against the current file")
	fs.StringVar(&editable.HTTPIndent, "http-indent", editable.HTTPIndent, "Annotation name of http services")
	fs.StringVar(&editable.HTTPAPIOutputPath, "http-api-output", editable.HTTPAPIOutputPath, "Output path of generated http apis")
	fs.StringVar(&editable.HTTPRouterOutputPath, "http-router-output", editable.HTTPRouterOutputPath, "Output path of generated http routers")
	fs.StringVar(&editable.HTTPClientOutputPath, "http-client-output", editable.HTTPClientOutputPath, "Output path of generated http clients")
	fs.StringVar(&editable.EnumIndent, "enum-indent", editable.EnumIndent, "Annotation name of enums")
	fs.StringVar(&editable.EnumOutputPath, "enum-output", editable.EnumOutputPath, "Output path of generated enums")
	fs.StringVar(&editable.MountName, "mount-name", editable.MountName, "Annotation name of mounts")
	impl := fs.String("impl", strings.Join(editable.ImplServiceNames, ","), "Comma separated impl annotation names")
	rest, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return expectArgs("config", rest, 0, 0)
	}
	editable.ImplServiceNames = strings.Split(*impl, ",")

	located, _ := config.Locate(project.Root())
	result := configResult{Path: config.WritePath(project.Root(), located)}
	if result.YAML, err = editable.ToYAML(); err != nil {
		return err
	}

	if *diff {
		current := ""
		if content, err := os.ReadFile(result.Path); err == nil {
			current = string(content)
		}
		if result.Diff, err = config.Diff(app.rel(result.Path), current, result.YAML); err != nil {
			return genieerrors.WrapWithOperation("diff", "config", err)
		}
	}

	if *write {
		app.diagnostics.PhaseProgress("Writing " + app.rel(result.Path))
		if err := editable.Write(result.Path); err != nil {
			return err
		}
		project.Profiles.Invalidate()
		result.Written = true
		app.diagnostics.Done("config updated")
	}

	return app.emit(result, func(w io.Writer) {
		switch {
		case *diff && result.Diff == "":
			fmt.Fprintf(w, "%s is up to date\n", app.rel(result.Path))
		case *diff:
			fmt.Fprint(w, result.Diff)
		case !*write:
			fmt.Fprint(w, result.YAML)
		}
		if result.Written {
			fmt.Fprintf(w, "wrote %s\n", app.rel(result.Path))
		}
	})
}

func runServe(ctx context.Context, app *App, args []string) error {
	fs := newFlagSet(app, "serve")
	engine := fs.String("engine", server.DefaultEngine, "Web engine: "+strings.Join(server.Engines(), ", "))
	addr := fs.String("addr", server.DefaultAddr, "Listen address")
	rest, err := parseFlags(fs, args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return expectArgs("serve", rest, 0, 0)
	}
	if err := utils.ValidateListenAddr("addr")(*addr); err != nil {
		return genieerrors.NewUsageError("%v", err)
	}
	if err := utils.IsOneOf("engine", server.Engines()...)(*engine); err != nil {
		return genieerrors.NewUsageError("%v", err)
	}

	srv, err := server.New(*engine, app.analyzer, app.diagnostics)
	if err != nil {
		return err
	}
	app.diagnostics.ToolHeader(fmt.Sprintf("serving on %s (%s)", *addr, *engine))
	app.diagnostics.RootPath(app.analyzer.Project().Root())
	return srv.Run(ctx, *addr)
}
