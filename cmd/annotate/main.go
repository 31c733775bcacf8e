package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogenie/annotate/internal/cli"
	genieerrors "github.com/gogenie/annotate/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line args and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		rootFlag      = fs.String("root", ".", "Any directory inside the project (the enclosing go.mod decides the root)")
		verboseFlag   = fs.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag     = fs.Bool("quiet", false, "Only show errors and results")
		jsonFlag      = fs.Bool("json", false, "Print results as JSON")
		scanLimitFlag = fs.Int("scan-limit", 0, "Maximum files scanned per project index (0 for the default, negative for no limit)")
		helpFlag      = fs.Bool("help", false, "Show help information")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: annotate [options] <command> [arguments]\n\n")
		fmt.Fprintf(stderr, "gogenie annotation resolver\n")
		fmt.Fprintf(stderr, "Resolves gogenie comment annotations in Go sources and follows them into generated code.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nCommands:\n")
		for _, command := range cli.Commands() {
			fmt.Fprintf(stderr, "  %-46s %s\n", command.Usage, command.Summary)
		}
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  annotate annotations ./internal/user/handler.go   # List annotations of a file\n")
		fmt.Fprintf(stderr, "  annotate --json enum ./internal/user/keys.go 120  # Resolve the enum reference at byte 120\n")
		fmt.Fprintf(stderr, "  annotate routes --deep ./internal/user/api.go     # Find route registrations anywhere in the router output\n")
		fmt.Fprintf(stderr, "  annotate lint ./internal                          # Check annotation arguments below a directory\n")
		fmt.Fprintf(stderr, "  annotate serve --engine gin --addr :9090          # Serve the resolvers over HTTP\n")
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *helpFlag {
		fs.Usage()
		return 0
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintf(stderr, "Error: a command is required\n\n")
		fs.Usage()
		return 2
	}

	reporter := cli.NewDiagnosticReporterTo(*verboseFlag, stderr)
	app, err := cli.NewApp(cli.Config{
		Root:      *rootFlag,
		Verbose:   *verboseFlag,
		Quiet:     *quietFlag,
		JSON:      *jsonFlag,
		ScanLimit: *scanLimitFlag,
		Stdout:    stdout,
		Stderr:    stderr,
	})
	if err != nil {
		reporter.ReportError(err)
		return 1
	}

	if err := app.Run(ctx, rest); err != nil {
		app.Reporter().ReportError(err)
		if genieerrors.IsCode(err, genieerrors.UsageErrorCode) {
			return 2
		}
		return 1
	}
	return 0
}
