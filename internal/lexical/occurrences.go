package lexical

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// annotationPattern matches "@name" optionally followed by a non-nested "(args)".
// Names may contain letters, digits, '_', '.', '-' and a single ':' qualifier.
var annotationPattern = regexp.MustCompile(`@([A-Za-z][A-Za-z0-9_.-]*(?::[A-Za-z0-9_.-]+)?)(\(([^)]*)\))?`)

// Occurrence is one raw "@name(args)" match inside a text buffer
type Occurrence struct {
	At        int    // offset of '@'
	Name      string // annotation name as written
	NameSpan  Span
	HasArgs   bool   // true when a parenthesized list follows the name
	Args      string // text between the parentheses
	ArgsStart int    // offset of Args, -1 when HasArgs is false
	End       int    // offset just past the occurrence
}

// Arguments parses the occurrence's argument list in the buffer's coordinate space
func (o Occurrence) Arguments() Arguments {
	if !o.HasArgs {
		return nil
	}
	return ParseArguments(o.Args, o.ArgsStart)
}

// LowerName returns the lower-cased annotation name
func (o Occurrence) LowerName() string {
	return strings.ToLower(o.Name)
}

// ScanAnnotations returns every annotation-looking occurrence in text in source order,
// skipping those that look like part of an e-mail address.
func ScanAnnotations(text string) []Occurrence {
	var occurrences []Occurrence
	for _, m := range annotationPattern.FindAllStringSubmatchIndex(text, -1) {
		if IsLikelyEmail(text, m[0]) {
			continue
		}
		occ := Occurrence{
			At:        m[0],
			Name:      text[m[2]:m[3]],
			NameSpan:  Span{Start: m[2], End: m[3]},
			ArgsStart: -1,
			End:       m[1],
		}
		if m[6] >= 0 {
			occ.HasArgs = true
			occ.Args = text[m[6]:m[7]]
			occ.ArgsStart = m[6]
		}
		occurrences = append(occurrences, occ)
	}
	return occurrences
}

// IsLikelyEmail reports whether the '@' at atIndex looks like the middle of an e-mail
// address: the byte before it is alphanumeric or one of "._%+-" and the byte after it
// is alphanumeric. Real annotations follow whitespace, punctuation or line start.
func IsLikelyEmail(text string, atIndex int) bool {
	if atIndex <= 0 || atIndex >= len(text) {
		return false
	}
	before, _ := utf8.DecodeLastRuneInString(text[:atIndex])
	if !isLetterOrDigit(before) && !strings.ContainsRune("._%+-", before) {
		return false
	}
	if atIndex+1 >= len(text) {
		return false
	}
	after, _ := utf8.DecodeRuneInString(text[atIndex+1:])
	return isLetterOrDigit(after)
}

func isLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
