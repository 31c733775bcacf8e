package index

import (
	"path/filepath"

	"github.com/gogenie/annotate/internal/annotations"
	"github.com/gogenie/annotate/internal/config"
	"github.com/gogenie/annotate/internal/enum"
	"github.com/gogenie/annotate/internal/httproute"
	"github.com/gogenie/annotate/internal/utils"
)

// DeepSearchLimit caps the files read per output root when a route is not in its
// expected file
const DeepSearchLimit = 500

// outputDir resolves a configured output path against root
func outputDir(root, output, fallback string) string {
	if output == "" {
		output = fallback
	}
	if filepath.IsAbs(output) {
		return filepath.Clean(output)
	}
	return filepath.Join(root, filepath.FromSlash(output))
}

// EnumNavigator finds enum types and constants in generated enum files
type EnumNavigator struct {
	root   string
	reader *utils.FileReader
}

// NewEnumNavigator creates a navigator for the project at root
func NewEnumNavigator(root string, reader *utils.FileReader) *EnumNavigator {
	return &EnumNavigator{root: root, reader: reader}
}

// GeneratedFile returns the path of the file generated for enumName
func (n *EnumNavigator) GeneratedFile(profile *annotations.Profile, enumName string) string {
	output := ""
	if profile != nil {
		output = profile.EnumOutputPath
	}
	return filepath.Join(outputDir(n.root, output, config.DefaultEnumOutputPath), enum.FileName(enumName))
}

// Find locates target in the generated code: the constant when ConstName is set,
// otherwise the enum type.
func (n *EnumNavigator) Find(profile *annotations.Profile, target enum.Target) (Location, bool) {
	if target.EnumName == "" {
		return Location{}, false
	}
	path := n.GeneratedFile(profile, target.EnumName)
	text, err := n.reader.ReadFile(path)
	if err != nil {
		return Location{}, false
	}

	if target.ConstName != "" {
		for _, pattern := range enum.ConstPatterns(target.EnumName, target.ConstName) {
			if m := pattern.FindStringSubmatchIndex(text); m != nil {
				return LocationOf(path, text, m[2]), true
			}
		}
		return Location{}, false
	}

	if m := enum.TypePattern(target.EnumName).FindStringSubmatchIndex(text); m != nil {
		return LocationOf(path, text, m[2]), true
	}
	return Location{}, false
}

// RouteNavigator finds route registrations in generated router and api files
type RouteNavigator struct {
	root      string
	processor *utils.FileProcessor
}

// NewRouteNavigator creates a navigator for the project at root
func NewRouteNavigator(root string, processor *utils.FileProcessor) *RouteNavigator {
	return &RouteNavigator{root: root, processor: processor}
}

// OutputRoots returns the router and api output directories, without duplicates
func (n *RouteNavigator) OutputRoots(profile *annotations.Profile) []string {
	router, api := "", ""
	if profile != nil {
		router, api = profile.HTTPRouterOutputPath, profile.HTTPAPIOutputPath
	}

	var roots []string
	seen := make(map[string]bool)
	for _, output := range []string{router, api} {
		dir := outputDir(n.root, output, config.DefaultHTTPAPIOutputPath)
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	return roots
}

// Find locates the registration of ctx. The expected file <root>/<group>/<filename>.go
// of each output root is tried first; with deep set, every Go file below the output
// roots is searched, up to DeepSearchLimit files per root.
func (n *RouteNavigator) Find(profile *annotations.Profile, ctx httproute.Context, deep bool) (Location, bool) {
	if ctx.FullRoute == "" {
		return Location{}, false
	}
	roots := n.OutputRoots(profile)

	for _, dir := range roots {
		path := filepath.Join(dir, filepath.FromSlash(ctx.Group), ctx.Filename+".go")
		if loc, ok := n.findInFile(path, ctx); ok {
			return loc, true
		}
	}
	if !deep {
		return Location{}, false
	}

	reader := n.processor.GetFileReader()
	for _, dir := range roots {
		walked, err := n.processor.WalkGoFiles(dir, DeepSearchLimit)
		if err != nil {
			continue
		}
		for _, path := range walked.Files {
			text, err := reader.ReadFile(path)
			if err != nil || !httproute.ContainsRoute(text, ctx) {
				continue
			}
			if span, ok := httproute.FindRouteInText(text, ctx); ok {
				return LocationOf(path, text, span.Start), true
			}
		}
	}
	return Location{}, false
}

func (n *RouteNavigator) findInFile(path string, ctx httproute.Context) (Location, bool) {
	text, err := n.processor.GetFileReader().ReadFile(path)
	if err != nil {
		return Location{}, false
	}
	span, ok := httproute.FindRouteInText(text, ctx)
	if !ok {
		return Location{}, false
	}
	return LocationOf(path, text, span.Start), true
}
