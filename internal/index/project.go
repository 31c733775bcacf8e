// Package index keeps project-wide state for the resolvers: the annotation profile
// of the current config, the mount aliases and bindings declared across the
// project's Go files, and navigation into generated enum and http code.
package index

import (
	"os"
	"path/filepath"

	"github.com/gogenie/annotate/internal/annotations"
	genieerrors "github.com/gogenie/annotate/internal/errors"
	"github.com/gogenie/annotate/internal/utils"
)

// DefaultScanLimit bounds the number of Go files a project scan reads
const DefaultScanLimit = 5000

// Location is a position inside a project file
type Location struct {
	Path   string `json:"path"`
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// LocationOf converts offset into text of the file at path into a Location
func LocationOf(path, text string, offset int) Location {
	loc := genieerrors.LocationAt(path, text, offset)
	return Location{Path: path, Offset: offset, Line: loc.Line, Column: loc.Column}
}

// LineOf returns the 1-based line of offset in text
func LineOf(text string, offset int) int {
	return genieerrors.LocationAt("", text, offset).Line
}

// Options configures a Project
type Options struct {
	ScanLimit int // 0 uses DefaultScanLimit, negative disables the limit
}

// Project bundles every index of one project root. All methods are safe for
// concurrent use.
type Project struct {
	root      string
	module    string
	processor *utils.FileProcessor

	Profiles *ProfileStore
	Aliases  *AliasIndex
	Bindings *BindingIndex
	Enums    *EnumNavigator
	Routes   *RouteNavigator
}

// ResolveRoot returns the directory holding the go.mod enclosing start together
// with its module path. Without a go.mod, start itself is the root.
func ResolveRoot(start string) (string, string, error) {
	if start == "" {
		start = "."
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", "", genieerrors.WrapFileSystemError("resolve", start, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", "", genieerrors.WrapFileSystemError("stat", abs, err)
	}
	if !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	parser := utils.NewGoModParser(utils.NewFileReader())
	module, err := parser.FindModule(abs)
	if err != nil {
		return abs, "", nil
	}
	return module.Root, module.Path, nil
}

// Open prepares the indexes for the project enclosing start. Nothing is scanned
// until an index is first queried.
func Open(start string, opts Options) (*Project, error) {
	root, module, err := ResolveRoot(start)
	if err != nil {
		return nil, err
	}

	limit := opts.ScanLimit
	switch {
	case limit == 0:
		limit = DefaultScanLimit
	case limit < 0:
		limit = 0
	}

	processor := utils.NewFileProcessor()
	p := &Project{
		root:      root,
		module:    module,
		processor: processor,
		Profiles:  NewProfileStore(root),
	}
	p.Aliases = NewAliasIndex(root, processor, limit)
	p.Bindings = NewBindingIndex(root, processor, limit)
	p.Enums = NewEnumNavigator(root, processor.GetFileReader())
	p.Routes = NewRouteNavigator(root, processor)
	return p, nil
}

// Root returns the project root directory
func (p *Project) Root() string {
	return p.root
}

// Module returns the module path declared in go.mod, empty without one
func (p *Project) Module() string {
	return p.module
}

// Reader returns the file reader shared by the indexes
func (p *Project) Reader() *utils.FileReader {
	return p.processor.GetFileReader()
}

// Profile returns the current profile augmented with every mount alias declared
// in the project.
func (p *Project) Profile() (*annotations.Profile, error) {
	base := p.Profiles.Profile()
	aliases, err := p.Aliases.Aliases(base)
	if err != nil {
		return base, err
	}
	return base.WithAugmentedAliases(aliases), nil
}
