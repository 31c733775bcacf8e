package annotations

import "regexp"

var followingInterfacePattern = regexp.MustCompile(`^\s*(?:(?://[^\n]*\n)\s*)*type\s+([A-Za-z_][A-Za-z0-9_]*)\s+interface\b`)

// ResolveImplAnnotation returns the first recognized impl annotation in comment
func ResolveImplAnnotation(comment string, profile *Profile) (string, bool) {
	for _, match := range ExtractAnnotations(comment, profile) {
		if match.Recognized && profile.IsImplAnnotation(match.Name) {
			return match.Name, true
		}
	}
	return "", false
}

// ResolveFollowingInterfaceName returns the name of the interface declared right
// after commentEnd, allowing only whitespace and "//" lines in between.
func ResolveFollowingInterfaceName(text string, commentEnd int) (string, bool) {
	if commentEnd < 0 || commentEnd > len(text) {
		return "", false
	}
	m := followingInterfacePattern.FindStringSubmatch(text[commentEnd:])
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// ImplTarget pairs an impl annotation with the interface it decorates
type ImplTarget struct {
	Annotation string `json:"annotation"`
	Interface  string `json:"interface"`
}

// ResolveImplTarget combines ResolveImplAnnotation and ResolveFollowingInterfaceName
// for the comment occupying text[commentStart:commentEnd].
func ResolveImplTarget(text string, commentStart, commentEnd int, profile *Profile) (ImplTarget, bool) {
	if commentStart < 0 || commentStart > commentEnd || commentEnd > len(text) {
		return ImplTarget{}, false
	}
	annotation, ok := ResolveImplAnnotation(text[commentStart:commentEnd], profile)
	if !ok {
		return ImplTarget{}, false
	}
	iface, ok := ResolveFollowingInterfaceName(text, commentEnd)
	if !ok {
		return ImplTarget{}, false
	}
	return ImplTarget{Annotation: annotation, Interface: iface}, true
}
