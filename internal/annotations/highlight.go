package annotations

import "strings"

// Highlight classes assigned to annotation names
const (
	ClassService  = "service"
	ClassDAO      = "dao"
	ClassGRPC     = "grpc"
	ClassHTTP     = "http"
	ClassAutowire = "autowire"
	ClassRule     = "rule"
	ClassEnum     = "enum"
	ClassMount    = "mount"
	ClassSwagger  = "swagger"
	ClassOption   = "option"
	ClassDynamic  = "dynamic"
)

var swaggerClassNames = map[string]bool{
	"title": true, "version": true, "description": true, "basepath": true,
	"summary": true, "tags": true, "accept": true, "produce": true, "param": true,
	"success": true, "failure": true, "router": true,
}

// HighlightClass classifies an annotation name for coloring. The classes follow the
// default vocabulary; configured or aliased names fall back to ClassDynamic.
func HighlightClass(name string) string {
	lower := strings.ToLower(name)
	switch {
	case lower == "service":
		return ClassService
	case lower == "dao":
		return ClassDAO
	case lower == "grpc" || lower == "grpc_server":
		return ClassGRPC
	case lower == "http" || strings.HasPrefix(lower, "http.") || strings.HasPrefix(lower, "http:"):
		return ClassHTTP
	case lower == "autowire" || strings.HasPrefix(lower, "autowire."):
		return ClassAutowire
	case lower == "rule" || lower == "rule-hash" || strings.HasPrefix(lower, "rule."):
		return ClassRule
	case lower == "enum":
		return ClassEnum
	case lower == "mount":
		return ClassMount
	case swaggerClassNames[lower]:
		return ClassSwagger
	default:
		return ClassDynamic
	}
}

// Highlight is a classified span in a comment
type Highlight struct {
	Class string `json:"class"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Highlights returns name and option highlights for every recognized annotation in comment
func Highlights(comment string, profile *Profile) []Highlight {
	var highlights []Highlight
	for _, match := range ExtractAnnotations(comment, profile) {
		if !match.Recognized {
			continue
		}
		highlights = append(highlights, Highlight{
			Class: HighlightClass(match.Name),
			Start: match.NameSpan.Start,
			End:   match.NameSpan.End,
		})
		for _, option := range match.Options {
			highlights = append(highlights, Highlight{Class: ClassOption, Start: option.Span.Start, End: option.Span.End})
		}
	}
	return highlights
}
