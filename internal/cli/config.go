package cli

import (
	"io"
	"os"
)

// Config holds the global command line settings
type Config struct {
	// Root is any directory inside the project; the enclosing go.mod decides the root
	Root string

	// Verbose enables detailed logging and error chains
	Verbose bool

	// Quiet only shows errors and results
	Quiet bool

	// JSON prints results as JSON instead of text
	JSON bool

	// ScanLimit bounds project scans, 0 for the default
	ScanLimit int

	Stdout io.Writer
	Stderr io.Writer
}

func (c Config) withDefaults() Config {
	if c.Root == "" {
		c.Root = "."
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}
	return c
}
