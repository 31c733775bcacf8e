package annotations

import "strings"

// ScopeTarget selects what path, if any, is passed with a command's scope flag
type ScopeTarget int

const (
	ScopeNone ScopeTarget = iota
	ScopeFile
	ScopeDir
)

// QuickCommand is a generator invocation suggested for an annotation
type QuickCommand struct {
	Label       string      `json:"label"`
	Args        []string    `json:"args"`
	ScopeFlag   string      `json:"scopeFlag,omitempty"`
	ScopeTarget ScopeTarget `json:"scopeTarget"`
}

// Argv renders the full command line. scopePath is only used when the command
// takes a scope and is ignored when empty.
func (c QuickCommand) Argv(executable, scopePath string) []string {
	argv := append([]string{executable}, c.Args...)
	if c.ScopeFlag != "" && c.ScopeTarget != ScopeNone && scopePath != "" {
		argv = append(argv, c.ScopeFlag, scopePath)
	}
	return argv
}

// String renders the command the way it would be typed, without the executable
func (c QuickCommand) String() string {
	return strings.Join(c.Argv("gogenie", ""), " ")
}

// ResolveQuickCommands maps an annotation to the generator commands that consume it.
// Unknown names and families without a generator yield nil.
func ResolveQuickCommands(name string, profile *Profile) []QuickCommand {
	spec, ok := profile.FindSpec(name)
	if !ok {
		return nil
	}

	family := strings.ToLower(spec.CommandFamily)
	if alias, ok := spec.MountAlias(); ok {
		return []QuickCommand{{Label: "mount " + alias, Args: []string{"mount", alias}}}
	}

	switch {
	case family == FamilyAutowire:
		return []QuickCommand{{Label: "autowire", Args: []string{"autowire"}}}
	case family == FamilyEnum:
		return []QuickCommand{{Label: "enum", Args: []string{"enum"}}}
	case family == FamilyMount:
		return []QuickCommand{{Label: "mount", Args: []string{"mount"}}}
	case family == FamilyRule:
		return []QuickCommand{{Label: "rule", Args: []string{"rule"}, ScopeFlag: "--scope", ScopeTarget: ScopeFile}}
	case family == FamilySwagger:
		return []QuickCommand{{Label: "http swagger", Args: []string{"http", "swagger"}}}
	case family == FamilyHTTP:
		return []QuickCommand{
			{Label: "http api", Args: []string{"http", "api"}},
			{Label: "http client", Args: []string{"http", "client"}},
		}
	case family == FamilyImplHTTP && !profile.IsImplAnnotation(name):
		return []QuickCommand{{Label: "http router", Args: []string{"http", "router"}}}
	case family == FamilyGRPC && !profile.IsImplAnnotation(name):
		return []QuickCommand{{Label: "impl grpc", Args: []string{"impl", "grpc"}, ScopeFlag: "--scope", ScopeTarget: ScopeFile}}
	}
	return nil
}
