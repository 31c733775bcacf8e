package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	genieerrors "github.com/gogenie/annotate/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return NewDiagnosticReporterTo(verbose, os.Stderr)
}

// NewDiagnosticReporterTo creates a reporter writing to out
func NewDiagnosticReporterTo(verbose bool, out io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{verbose: verbose, out: out}
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints err with whatever context its GenieError carries
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	var multi *genieerrors.MultipleErrors
	if stderrors.As(err, &multi) && len(multi.Errors) > 1 {
		for _, inner := range multi.Errors {
			r.ReportError(inner)
		}
		return
	}

	var genieErr genieerrors.GenieError
	if !stderrors.As(err, &genieErr) {
		fmt.Fprintf(r.out, "\nERROR: %s\n\n", err.Error())
		return
	}

	r.printErrorHeader(genieErr.ErrorCode())
	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	if loc := genieErr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc.String())
	}
	if context := genieErr.Context(); len(context) > 0 {
		r.printContext(context)
	}
	if suggestions := genieErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}
	if r.verbose {
		r.printErrorChain(err)
	}
}

func (r *DiagnosticReporter) printErrorHeader(code genieerrors.ErrorCode) {
	var title string
	switch code {
	case genieerrors.ConfigurationErrorCode:
		title = "Configuration Error"
	case genieerrors.FileSystemErrorCode:
		title = "File System Error"
	case genieerrors.SyntaxErrorCode:
		title = "Annotation Syntax Error"
	case genieerrors.IndexErrorCode:
		title = "Project Index Error"
	case genieerrors.ServerErrorCode:
		title = "Server Error"
	case genieerrors.UsageErrorCode:
		title = "Usage Error"
	default:
		title = "Error"
	}

	red := color.New(color.FgRed, color.Bold)
	fmt.Fprintln(r.out)
	red.Fprintf(r.out, "ERROR: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+7))
}

func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
	fmt.Fprintln(r.out)
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}
	fmt.Fprintln(r.out)
}

func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "Error Chain:\n")
	for level := 1; err != nil; level++ {
		fmt.Fprintf(r.out, "   %d. %s\n", level, err.Error())
		err = stderrors.Unwrap(err)
	}
	fmt.Fprintln(r.out)
}
