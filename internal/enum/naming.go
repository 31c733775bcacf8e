package enum

import (
	"regexp"
	"strings"
)

var (
	lowerUpperPattern = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	acronymPattern    = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	separatorPattern  = regexp.MustCompile(`[\s\-]+`)
)

// SnakeCase converts an enum name to the base name of its generated file,
// e.g. "HTTPStatusCode" -> "http_status_code".
func SnakeCase(name string) string {
	name = lowerUpperPattern.ReplaceAllString(name, "${1}_${2}")
	name = acronymPattern.ReplaceAllString(name, "${1}_${2}")
	name = separatorPattern.ReplaceAllString(name, "_")
	return strings.ToLower(name)
}

// FileName returns the generated file name for an enum
func FileName(name string) string {
	return SnakeCase(name) + ".go"
}

// TypePattern matches the generated type declaration of an enum
func TypePattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*type\s+(` + regexp.QuoteMeta(name) + `)\b`)
}

// ConstPatterns returns the patterns locating a constant in the generated file,
// the typed declaration first and any assignment as fallback.
func ConstPatterns(enumName, constName string) []*regexp.Regexp {
	c := regexp.QuoteMeta(constName)
	return []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*(` + c + `)\s+` + regexp.QuoteMeta(enumName) + `\s*=`),
		regexp.MustCompile(`(?m)^\s*(` + c + `)\b.*=`),
	}
}
