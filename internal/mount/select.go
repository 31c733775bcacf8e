package mount

import (
	"path/filepath"
	"sort"
)

// LocatedBinding is a binding found in a file of the project
type LocatedBinding struct {
	Binding
	Path string `json:"path"`
}

// Target is the declaration a mount value refers to
type Target struct {
	Path       string `json:"path"`
	Offset     int    `json:"offset"`
	StructName string `json:"structName"`
	FieldName  string `json:"fieldName,omitempty"` // empty when the struct itself matched
}

// SelectBinding resolves value against the bindings of one alias. Bindings in the
// directory of contextPath are tried first; within that order a field match beats a
// struct name match. Ties keep input order.
func SelectBinding(bindings []LocatedBinding, value, contextPath string) (Target, bool) {
	if value == "" || len(bindings) == 0 {
		return Target{}, false
	}
	ordered := prioritize(bindings, contextPath)

	for _, b := range ordered {
		if f, ok := b.LookupField(value); ok {
			return Target{Path: b.Path, Offset: f.Offset, StructName: b.StructName, FieldName: f.Name}, true
		}
	}
	for _, b := range ordered {
		if b.StructName == value {
			return Target{Path: b.Path, Offset: b.StructNameOffset, StructName: b.StructName}, true
		}
	}
	return Target{}, false
}

func prioritize(bindings []LocatedBinding, contextPath string) []LocatedBinding {
	ordered := append([]LocatedBinding(nil), bindings...)
	if contextPath == "" {
		return ordered
	}
	dir := filepath.Dir(contextPath)
	sort.SliceStable(ordered, func(i, j int) bool {
		return filepath.Dir(ordered[i].Path) == dir && filepath.Dir(ordered[j].Path) != dir
	})
	return ordered
}
