package utils

import (
	"io/fs"
	"path/filepath"
	"strings"

	genieerrors "github.com/gogenie/annotate/internal/errors"
)

// FileProcessor walks project trees looking for annotated sources
type FileProcessor struct {
	fileReader *FileReader
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileReader: NewFileReader(),
	}
}

// NewFileProcessorWithReader creates a file processor sharing an existing FileReader
func NewFileProcessorWithReader(reader *FileReader) *FileProcessor {
	return &FileProcessor{
		fileReader: reader,
	}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be descended into
type DirectoryFilter func(path string, info fs.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
	Limit           int // maximum number of matched files, 0 for no limit
}

// WalkResult lists the matched files in lexical walk order
type WalkResult struct {
	Files     []string
	Truncated bool // the walk stopped at Limit
}

// DefaultGoFileFilter matches every .go file, tests included
func DefaultGoFileFilter() FileFilter {
	return func(path string, info fs.DirEntry) bool {
		return !info.IsDir() && strings.EqualFold(filepath.Ext(info.Name()), ".go")
	}
}

// SourceGoFileFilter matches .go files other than tests
func SourceGoFileFilter() FileFilter {
	return func(path string, info fs.DirEntry) bool {
		return DefaultGoFileFilter()(path, info) && !strings.HasSuffix(info.Name(), "_test.go")
	}
}

// DefaultDirectoryFilter skips hidden, vendored and build output directories
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":       true,
		"node_modules": true,
		"testdata":     true,
		"build":        true,
		"dist":         true,
		"target":       true,
	}

	return func(path string, info fs.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}
		return !skipDirs[name]
	}
}

// WalkFiles walks rootDir with filtering. The root itself is never filtered out.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) (WalkResult, error) {
	var result WalkResult

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				if entry != nil && entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return err
		}

		if entry.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter != nil && !options.FileFilter(path, entry) {
			return nil
		}
		if options.Limit > 0 && len(result.Files) >= options.Limit {
			result.Truncated = true
			return filepath.SkipAll
		}
		result.Files = append(result.Files, path)
		return nil
	})
	if err != nil {
		return result, genieerrors.WrapFileSystemError("walk", rootDir, err)
	}
	return result, nil
}

// WalkGoFiles lists the Go files below rootDir with the default filters
func (fp *FileProcessor) WalkGoFiles(rootDir string, limit int) (WalkResult, error) {
	return fp.WalkFiles(rootDir, FileWalkOptions{
		FileFilter:      DefaultGoFileFilter(),
		DirectoryFilter: DefaultDirectoryFilter(),
		SkipErrors:      true,
		Limit:           limit,
	})
}

// GetFileReader returns the underlying FileReader
func (fp *FileProcessor) GetFileReader() *FileReader {
	return fp.fileReader
}
