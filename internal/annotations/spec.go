package annotations

import "strings"

// Command families group annotations by the generator command that consumes them
const (
	FamilyAutowire = "autowire"
	FamilyHTTP     = "http"
	FamilyEnum     = "enum"
	FamilyMount    = "mount"
	FamilyImplHTTP = "impl/http"
	FamilyGRPC     = "grpc"
	FamilyRule     = "rule"
	FamilySwagger  = "swagger"

	// MountAliasFamilyPrefix prefixes the family of aliases introduced by a mount annotation
	MountAliasFamilyPrefix = "mount/"
)

// OptionSpec describes one recognized option key
type OptionSpec struct {
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
}

// Spec describes a recognized annotation name
type Spec struct {
	Name           string       `json:"name"`
	CommandFamily  string       `json:"commandFamily"`
	Options        []OptionSpec `json:"options,omitempty"`
	AllowAnyOption bool         `json:"allowAnyOption,omitempty"`
	Snippet        string       `json:"snippet,omitempty"`
}

// HasOption reports whether key is declared, compared case-sensitively
func (s Spec) HasOption(key string) bool {
	for _, option := range s.Options {
		if option.Key == key {
			return true
		}
	}
	return false
}

// AcceptsOption reports whether key may be highlighted as an option of this annotation.
// Specs that allow any option or declare no options accept every key.
func (s Spec) AcceptsOption(key string) bool {
	return s.AllowAnyOption || len(s.Options) == 0 || s.HasOption(key)
}

// InFamily compares the command family case-insensitively
func (s Spec) InFamily(family string) bool {
	return strings.EqualFold(s.CommandFamily, family)
}

// MountAlias returns the alias name when the spec was synthesized from a mount annotation
func (s Spec) MountAlias() (string, bool) {
	family := strings.ToLower(s.CommandFamily)
	if !strings.HasPrefix(family, MountAliasFamilyPrefix) {
		return "", false
	}
	alias := s.CommandFamily[len(MountAliasFamilyPrefix):]
	return alias, alias != ""
}

func (s Spec) clone() Spec {
	if s.Options != nil {
		s.Options = append([]OptionSpec(nil), s.Options...)
	}
	return s
}
