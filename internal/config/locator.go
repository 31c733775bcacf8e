package config

import (
	"os"
	"path/filepath"
)

// Candidates lists the project-relative config locations in lookup priority order
var Candidates = []string{
	".gogenie/config.yaml",
	".gogenie/config.yml",
	".gogenie/config.toml",
	".gogenie.yaml",
	".gogenie.yml",
	".gogenie.toml",
}

// Locate returns the first candidate config file that exists under root
func Locate(root string) (string, bool) {
	if root == "" {
		return "", false
	}
	for _, candidate := range Candidates {
		path := filepath.Join(root, filepath.FromSlash(candidate))
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// WritePath returns the file an edited config should be written to. A located YAML
// file is rewritten in place; otherwise .gogenie/config.yaml is used, which takes
// priority over any TOML or root-level file at the next lookup.
func WritePath(root, located string) string {
	if located != "" && FormatFor(located) == FormatYAML {
		return located
	}
	return filepath.Join(root, ".gogenie", "config.yaml")
}
