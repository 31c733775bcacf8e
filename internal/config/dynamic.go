package config

import "strings"

// Defaults used when the project config is missing, malformed or silent on a key
const (
	DefaultHTTPIndent           = "service"
	DefaultEnumIndent           = "enum"
	DefaultEnumOutputPath       = "./internal/enum"
	DefaultMountName            = "mount"
	DefaultHTTPAPIOutputPath    = "./apis"
	DefaultHTTPRouterOutputPath = "./apis"
	DefaultHTTPClientOutputPath = "./clients"
)

// Dotted config keys read from the flattened project config
const (
	KeyHTTPIndent           = "commands.http.indent"
	KeyHTTPAPIOutputPath    = "commands.http.api.output_path"
	KeyHTTPRouterOutputPath = "commands.http.router.output_path"
	KeyHTTPClientOutputPath = "commands.http.client.output_path"
	KeyEnumIndent           = "commands.enum.indent"
	KeyEnumOutputPath       = "commands.enum.output_path"
	KeyMountName            = "commands.mount.name"
	KeyImplServices         = "commands.impl.indents.service"
)

// DefaultImplServiceNames returns the annotation names that receive generated implementations by default
func DefaultImplServiceNames() []string {
	return []string{"service", "dao", "grpc"}
}

// Dynamic is the project-specific part of the annotation vocabulary together with the
// output paths of the generated code.
type Dynamic struct {
	HTTPIndent           string   `json:"httpIndent"`
	EnumIndent           string   `json:"enumIndent"`
	EnumOutputPath       string   `json:"enumOutputPath"`
	MountName            string   `json:"mountName"`
	ImplServiceNames     []string `json:"implServiceNames"`
	HTTPAPIOutputPath    string   `json:"httpApiOutputPath"`
	HTTPRouterOutputPath string   `json:"httpRouterOutputPath"`
	HTTPClientOutputPath string   `json:"httpClientOutputPath"`

	// ConfigPath is the file the values were read from, empty for pure defaults
	ConfigPath string `json:"configPath,omitempty"`
	// ParseError is set when ConfigPath could not be read; all values are then defaults
	ParseError string `json:"parseError,omitempty"`
}

// Defaults returns the built-in configuration, remembering configPath if one was located
func Defaults(configPath string) Dynamic {
	return Dynamic{
		HTTPIndent:           DefaultHTTPIndent,
		EnumIndent:           DefaultEnumIndent,
		EnumOutputPath:       DefaultEnumOutputPath,
		MountName:            DefaultMountName,
		ImplServiceNames:     DefaultImplServiceNames(),
		HTTPAPIOutputPath:    DefaultHTTPAPIOutputPath,
		HTTPRouterOutputPath: DefaultHTTPRouterOutputPath,
		HTTPClientOutputPath: DefaultHTTPClientOutputPath,
		ConfigPath:           configPath,
	}
}

// FromEntries builds a Dynamic from flattened config entries, falling back to
// defaults key by key.
func FromEntries(entries Entries, configPath string) Dynamic {
	d := Defaults(configPath)
	d.HTTPIndent = entries.FirstOr(KeyHTTPIndent, d.HTTPIndent)
	d.HTTPAPIOutputPath = entries.FirstOr(KeyHTTPAPIOutputPath, d.HTTPAPIOutputPath)
	d.HTTPRouterOutputPath = entries.FirstOr(KeyHTTPRouterOutputPath, d.HTTPRouterOutputPath)
	d.HTTPClientOutputPath = entries.FirstOr(KeyHTTPClientOutputPath, d.HTTPClientOutputPath)
	d.EnumIndent = entries.FirstOr(KeyEnumIndent, d.EnumIndent)
	d.EnumOutputPath = entries.FirstOr(KeyEnumOutputPath, d.EnumOutputPath)
	d.MountName = entries.FirstOr(KeyMountName, d.MountName)
	if services := entries.All(KeyImplServices); len(services) > 0 {
		d.ImplServiceNames = services
	}
	return d
}

// ServiceLikeNames returns the impl annotation names plus the http indent, in that
// order, without blanks or duplicates.
func (d Dynamic) ServiceLikeNames() []string {
	return uniqueNonBlank(append(append([]string{}, d.ImplServiceNames...), d.HTTPIndent))
}

func uniqueNonBlank(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		result = append(result, value)
	}
	return result
}
