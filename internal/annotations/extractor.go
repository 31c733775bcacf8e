package annotations

import (
	"regexp"
	"strings"

	"github.com/gogenie/annotate/internal/lexical"
)

var optionKeyPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*=`)

// OptionMatch is an option key highlighted inside a recognized annotation
type OptionMatch struct {
	Key  string       `json:"key"`
	Span lexical.Span `json:"span"`
}

// Match is one annotation occurrence found in a comment
type Match struct {
	Name          string        `json:"name"`
	Recognized    bool          `json:"recognized"`
	CommandFamily string        `json:"commandFamily,omitempty"` // set iff Recognized
	NameSpan      lexical.Span  `json:"nameSpan"`
	Options       []OptionMatch `json:"options"`
}

// ExtractAnnotations scans comment text for annotations in source order. Every
// occurrence is reported; only recognized ones carry a command family and options.
func ExtractAnnotations(comment string, profile *Profile) []Match {
	var matches []Match
	for _, occ := range lexical.ScanAnnotations(comment) {
		spec, recognized := profile.FindSpec(occ.Name)
		match := Match{
			Name:       occ.Name,
			Recognized: recognized,
			NameSpan:   occ.NameSpan,
			Options:    []OptionMatch{},
		}
		if recognized {
			match.CommandFamily = spec.CommandFamily
			if occ.HasArgs && strings.TrimSpace(occ.Args) != "" {
				match.Options = optionMatches(occ, spec)
			}
		}
		matches = append(matches, match)
	}
	return matches
}

func optionMatches(occ lexical.Occurrence, spec Spec) []OptionMatch {
	options := []OptionMatch{}
	for _, m := range optionKeyPattern.FindAllStringSubmatchIndex(occ.Args, -1) {
		key := occ.Args[m[2]:m[3]]
		if !spec.AcceptsOption(key) {
			continue
		}
		start := occ.ArgsStart + m[2]
		options = append(options, OptionMatch{
			Key:  key,
			Span: lexical.Span{Start: start, End: start + len(key)},
		})
	}
	return options
}
