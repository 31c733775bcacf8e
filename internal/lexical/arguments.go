package lexical

import "strings"

// Argument is one entry of an annotation argument list, either key=value or positional.
type Argument struct {
	Key   string // empty for positional arguments
	Value string // trimmed and unquoted
	Span  Span   // span of Value in the caller's coordinate space
}

// IsPositional reports whether the argument has no key
func (a Argument) IsPositional() bool {
	return a.Key == ""
}

// Arguments is an ordered argument list
type Arguments []Argument

// ParseArguments splits raw (the text between an annotation's parentheses) into
// arguments. rawStart is the offset of raw inside the caller's buffer and is added
// to every span. Empty segments and empty values are skipped.
func ParseArguments(raw string, rawStart int) Arguments {
	var args Arguments
	for _, seg := range SplitTopLevel(raw, ',') {
		if seg.End <= seg.Start {
			continue
		}
		segText := seg.Text(raw)
		left := len(segText) - len(strings.TrimLeftFunc(segText, isSpace))
		right := len(strings.TrimRightFunc(segText, isSpace))
		if right <= left {
			continue
		}

		trimStart := seg.Start + left
		trimEnd := seg.Start + right
		trimmed := raw[trimStart:trimEnd]

		var key string
		valueStart, valueEnd := trimStart, trimEnd
		if eq, ok := FindTopLevelEquals(trimmed); ok {
			key = strings.TrimSpace(trimmed[:eq])
			valueRaw := trimmed[eq+1:]
			valueLeft := len(valueRaw) - len(strings.TrimLeftFunc(valueRaw, isSpace))
			valueRight := len(strings.TrimRightFunc(valueRaw, isSpace))
			if valueRight <= valueLeft {
				continue
			}
			valueStart = trimStart + eq + 1 + valueLeft
			valueEnd = trimStart + eq + 1 + valueRight
		}

		valueStart, valueEnd = UnquoteBounds(raw, valueStart, valueEnd)
		if valueEnd <= valueStart {
			continue
		}
		args = append(args, Argument{
			Key:   key,
			Value: raw[valueStart:valueEnd],
			Span:  Span{Start: rawStart + valueStart, End: rawStart + valueEnd},
		})
	}
	return args
}

// FirstPositional returns the first argument without a key
func (a Arguments) FirstPositional() (Argument, bool) {
	for _, arg := range a {
		if arg.IsPositional() {
			return arg, true
		}
	}
	return Argument{}, false
}

// ByKey returns the first argument whose key matches name case-insensitively
func (a Arguments) ByKey(name string) (Argument, bool) {
	for _, arg := range a {
		if !arg.IsPositional() && strings.EqualFold(arg.Key, name) {
			return arg, true
		}
	}
	return Argument{}, false
}

// Options maps lower-cased keys to quote-trimmed values; the last duplicate wins.
func (a Arguments) Options() map[string]string {
	options := make(map[string]string, len(a))
	for _, arg := range a {
		if arg.IsPositional() {
			continue
		}
		options[strings.ToLower(arg.Key)] = TrimQuotes(arg.Value)
	}
	return options
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}
