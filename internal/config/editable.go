package config

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	"github.com/gogenie/annotate/internal/errors"
)

// Editable is the subset of the project config the tool can rewrite
type Editable struct {
	HTTPIndent           string
	HTTPAPIOutputPath    string
	HTTPRouterOutputPath string
	HTTPClientOutputPath string
	EnumIndent           string
	EnumOutputPath       string
	MountName            string
	ImplServiceNames     []string
}

// EditableFrom copies the editable values out of a Dynamic. Impl names are ordered
// with the built-in names first, then the rest alphabetically.
func EditableFrom(d Dynamic) Editable {
	return Editable{
		HTTPIndent:           d.HTTPIndent,
		HTTPAPIOutputPath:    d.HTTPAPIOutputPath,
		HTTPRouterOutputPath: d.HTTPRouterOutputPath,
		HTTPClientOutputPath: d.HTTPClientOutputPath,
		EnumIndent:           d.EnumIndent,
		EnumOutputPath:       d.EnumOutputPath,
		MountName:            d.MountName,
		ImplServiceNames:     sortImplServices(d.ImplServiceNames),
	}
}

func sortImplServices(values []string) []string {
	normalized := uniqueNonBlank(values)
	present := make(map[string]bool, len(normalized))
	for _, value := range normalized {
		present[value] = true
	}

	var result []string
	builtin := make(map[string]bool)
	for _, name := range DefaultImplServiceNames() {
		builtin[name] = true
		if present[name] {
			result = append(result, name)
		}
	}
	var rest []string
	for _, value := range normalized {
		if !builtin[value] {
			rest = append(rest, value)
		}
	}
	sort.Strings(rest)
	result = append(result, rest...)

	if len(result) == 0 {
		return DefaultImplServiceNames()
	}
	return result
}

// ToYAML renders the config with every scalar double-quoted
func (e Editable) ToYAML() (string, error) {
	services := uniqueNonBlank(e.ImplServiceNames)
	if len(services) == 0 {
		services = DefaultImplServiceNames()
	}
	indents := &yaml.Node{Kind: yaml.SequenceNode}
	for _, service := range services {
		indents.Content = append(indents.Content, mapping("service", quoted(service)))
	}

	root := mapping("commands", mapping(
		"http", mapping(
			"indent", quoted(e.HTTPIndent),
			"api", mapping("output_path", quoted(e.HTTPAPIOutputPath)),
			"router", mapping("output_path", quoted(e.HTTPRouterOutputPath)),
			"client", mapping("output_path", quoted(e.HTTPClientOutputPath)),
		),
		"enum", mapping(
			"indent", quoted(e.EnumIndent),
			"output_path", quoted(e.EnumOutputPath),
		),
		"mount", mapping("name", quoted(e.MountName)),
		"impl", mapping("indents", indents),
	))

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return "", errors.WrapWithOperation("encode", "editable config", err)
	}
	if err := encoder.Close(); err != nil {
		return "", errors.WrapWithOperation("encode", "editable config", err)
	}
	return buf.String(), nil
}

// Diff returns a unified diff between the current file content and the proposed one.
// An empty string means the contents are identical.
func Diff(path, current, proposed string) (string, error) {
	if current == proposed {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(current),
		B:        difflib.SplitLines(proposed),
		FromFile: path,
		ToFile:   path + " (proposed)",
		Context:  3,
	})
}

// Write renders e to path, creating parent directories as needed
func (e Editable) Write(path string) error {
	content, err := e.ToYAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapFileSystemError("create directory for", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.WrapFileSystemError("write", path, err)
	}
	return nil
}

// mapping builds a mapping node from alternating keys and value nodes
func mapping(pairs ...any) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(pairs); i += 2 {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: strings.TrimSpace(pairs[i].(string))}
		node.Content = append(node.Content, key, pairs[i+1].(*yaml.Node))
	}
	return node
}

func quoted(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: value}
}
