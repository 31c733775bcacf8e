// Package analysis runs the annotation resolvers over whole Go files of a project,
// translating comment-relative results into file offsets and following them into
// generated code through the project indexes.
package analysis

import (
	"path/filepath"

	"github.com/gogenie/annotate/internal/annotations"
	genieerrors "github.com/gogenie/annotate/internal/errors"
	"github.com/gogenie/annotate/internal/index"
	"github.com/gogenie/annotate/internal/mount"
)

// Document is the text of one Go file. Text may differ from the file on disk.
type Document struct {
	Path string `json:"path"`
	Text string `json:"text"`
}

// Analyzer answers file-level queries for one project
type Analyzer struct {
	project *index.Project
}

// New creates an analyzer over project
func New(project *index.Project) *Analyzer {
	return &Analyzer{project: project}
}

// Project returns the underlying project
func (a *Analyzer) Project() *index.Project {
	return a.project
}

// Path resolves path against the project root
func (a *Analyzer) Path(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.project.Root(), path)
}

// Load reads the document at path, relative paths being taken from the project root
func (a *Analyzer) Load(path string) (Document, error) {
	if path == "" {
		return Document{}, genieerrors.NewUsageError("a file path is required")
	}
	full := a.Path(path)
	text, err := a.project.Reader().ReadFile(full)
	if err != nil {
		return Document{}, err
	}
	return Document{Path: full, Text: text}, nil
}

// Profile returns the profile in effect for doc: the project profile extended with
// every mount alias declared in the project and in doc itself.
func (a *Analyzer) Profile(doc Document) (*annotations.Profile, error) {
	base, err := a.project.Profile()
	if err != nil {
		return nil, err
	}
	return mount.AugmentProfile(base, doc.Text), nil
}
