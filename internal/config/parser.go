package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogenie/annotate/internal/errors"
)

// Format identifies the syntax of a config file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from the file extension; anything unknown is read as YAML
func FormatFor(path string) Format {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// ParseEntries decodes content and flattens it into dotted key paths
func ParseEntries(format Format, content []byte) (Entries, error) {
	var document map[string]any
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(content, &document)
	default:
		err = yaml.Unmarshal(content, &document)
	}
	if err != nil {
		return nil, err
	}

	entries := make(Entries)
	flatten(entries, "", document)
	return entries, nil
}

// ParseContent builds a Dynamic from already loaded file content
func ParseContent(path string, content []byte) (Dynamic, error) {
	entries, err := ParseEntries(FormatFor(path), content)
	if err != nil {
		return Defaults(path), errors.WrapConfigurationError(path, "parse", err).
			WithSuggestion("Check the file for indentation or quoting mistakes")
	}
	return FromEntries(entries, path), nil
}

// Parse reads and parses the config file at path. It never fails: on any read or
// syntax problem the defaults are returned with ParseError describing what happened.
func Parse(path string) Dynamic {
	content, err := os.ReadFile(path)
	if err != nil {
		d := Defaults(path)
		d.ParseError = errors.WrapFileSystemError("read", path, err).Error()
		return d
	}

	d, err := ParseContent(path, content)
	if err != nil {
		d.ParseError = err.Error()
	}
	return d
}

// Load locates the project config under root and parses it, or returns the defaults
// when the project has none.
func Load(root string) Dynamic {
	path, ok := Locate(root)
	if !ok {
		return Defaults("")
	}
	return Parse(path)
}
