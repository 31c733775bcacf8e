package annotations

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// Profile is an immutable catalog of recognized annotations for one configuration
// snapshot. Name lookups are case-insensitive. A nil *Profile recognizes nothing.
type Profile struct {
	specs     []Spec
	byName    map[string]int
	implNames map[string]bool
	implOrder []string

	EnumOutputPath       string
	HTTPAPIOutputPath    string
	HTTPRouterOutputPath string
	HTTPClientOutputPath string
	ConfigPath           string
	ParseError           string
}

// NewProfile creates a profile from specs in registration order. The first spec
// registered for a lower-cased name wins; later duplicates are dropped.
func NewProfile(specs []Spec, implNames []string) *Profile {
	p := &Profile{
		byName:    make(map[string]int, len(specs)),
		implNames: make(map[string]bool, len(implNames)),
	}
	for _, spec := range specs {
		p.register(spec)
	}
	for _, name := range implNames {
		lower := strings.ToLower(strings.TrimSpace(name))
		if lower == "" || p.implNames[lower] {
			continue
		}
		p.implNames[lower] = true
		p.implOrder = append(p.implOrder, name)
	}
	return p
}

// register appends spec unless its lower-cased name is already taken
func (p *Profile) register(spec Spec) bool {
	lower := strings.ToLower(spec.Name)
	if lower == "" {
		return false
	}
	if _, exists := p.byName[lower]; exists {
		return false
	}
	p.byName[lower] = len(p.specs)
	p.specs = append(p.specs, spec.clone())
	return true
}

// FindSpec looks a name up case-insensitively
func (p *Profile) FindSpec(name string) (Spec, bool) {
	if p == nil {
		return Spec{}, false
	}
	idx, ok := p.byName[strings.ToLower(name)]
	if !ok {
		return Spec{}, false
	}
	return p.specs[idx].clone(), true
}

// IsImplAnnotation reports whether name decorates interfaces that receive a generated implementation
func (p *Profile) IsImplAnnotation(name string) bool {
	if p == nil {
		return false
	}
	return p.implNames[strings.ToLower(name)]
}

// ImplNames returns the impl annotation names in configuration order
func (p *Profile) ImplNames() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.implOrder...)
}

// Specs returns the specs in registration order
func (p *Profile) Specs() []Spec {
	if p == nil {
		return nil
	}
	specs := make([]Spec, len(p.specs))
	for i, spec := range p.specs {
		specs[i] = spec.clone()
	}
	return specs
}

// Len returns the number of registered specs
func (p *Profile) Len() int {
	if p == nil {
		return 0
	}
	return len(p.specs)
}

// SortedNames returns the specs ordered lexicographically by name, the order used for completion
func (p *Profile) SortedNames() []Spec {
	specs := p.Specs()
	sort.SliceStable(specs, func(i, j int) bool {
		return specs[i].Name < specs[j].Name
	})
	return specs
}

// OptionSpecsFor returns the declared options of name, or nil when it is not recognized
func (p *Profile) OptionSpecsFor(name string) []OptionSpec {
	spec, ok := p.FindSpec(name)
	if !ok {
		return nil
	}
	return spec.Options
}

// WithAugmentedAliases returns a profile extended with one mount alias spec per alias
// not already present. The receiver is returned unchanged when nothing is new.
func (p *Profile) WithAugmentedAliases(aliases []string) *Profile {
	if p == nil {
		p = NewProfile(nil, nil)
	}

	var fresh []Spec
	seen := make(map[string]bool)
	for _, alias := range aliases {
		lower := strings.ToLower(alias)
		if lower == "" || seen[lower] {
			continue
		}
		seen[lower] = true
		if _, exists := p.byName[lower]; exists {
			continue
		}
		fresh = append(fresh, Spec{
			Name:           alias,
			CommandFamily:  MountAliasFamilyPrefix + alias,
			AllowAnyOption: true,
			Snippet:        fmt.Sprintf("@%s(...)", alias),
		})
	}
	if len(fresh) == 0 {
		return p
	}

	augmented := NewProfile(append(p.Specs(), fresh...), p.implOrder)
	augmented.EnumOutputPath = p.EnumOutputPath
	augmented.HTTPAPIOutputPath = p.HTTPAPIOutputPath
	augmented.HTTPRouterOutputPath = p.HTTPRouterOutputPath
	augmented.HTTPClientOutputPath = p.HTTPClientOutputPath
	augmented.ConfigPath = p.ConfigPath
	augmented.ParseError = p.ParseError
	return augmented
}

// Signature returns a stable fingerprint of the registered names, families and impl
// names. Profiles with equal vocabularies share a signature, which makes it usable
// as cache key material.
func (p *Profile) Signature() string {
	lines := make([]string, 0, p.Len())
	for _, spec := range p.Specs() {
		lines = append(lines, fmt.Sprintf("%s\x00%s\x00%t", strings.ToLower(spec.Name), spec.CommandFamily, spec.AllowAnyOption))
	}
	sort.Strings(lines)

	h := fnv.New64a()
	for _, line := range lines {
		fmt.Fprintln(h, line)
	}
	impl := p.ImplNames()
	for i := range impl {
		impl[i] = strings.ToLower(impl[i])
	}
	sort.Strings(impl)
	fmt.Fprintf(h, "impl:%s", strings.Join(impl, ","))
	return fmt.Sprintf("%016x", h.Sum64())
}
