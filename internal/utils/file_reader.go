package utils

import (
	"os"
	"path/filepath"

	genieerrors "github.com/gogenie/annotate/internal/errors"
)

// FileReader reads source files, caching contents until the file changes on disk
type FileReader struct {
	contentCache *Cache[string, string]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		contentCache: NewCache[string, string](),
	}
}

// ReadFile returns the contents of filePath, served from cache while its stamp is unchanged
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	content, _, err := fr.ReadFileStamped(filePath)
	return content, err
}

// ReadFileStamped is ReadFile that also returns the stamp the content belongs to
func (fr *FileReader) ReadFileStamped(filePath string) (string, Stamp, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return "", Stamp{}, err
	}

	stamp, err := StampOf(cleanPath)
	if err != nil {
		fr.contentCache.Delete(cleanPath)
		return "", Stamp{}, genieerrors.WrapFileSystemError("stat", cleanPath, err)
	}
	if cached, ok := fr.contentCache.GetFresh(cleanPath, stamp); ok {
		return cached, stamp, nil
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", Stamp{}, genieerrors.WrapFileSystemError("read", cleanPath, err)
	}

	text := string(content)
	fr.contentCache.Put(cleanPath, text, stamp)
	return text, stamp, nil
}

// InvalidateFile removes a specific file from the cache
func (fr *FileReader) InvalidateFile(filePath string) {
	fr.contentCache.Delete(filepath.Clean(filePath))
}

// ClearCache clears all cached files
func (fr *FileReader) ClearCache() {
	fr.contentCache.Clear()
}

// CachedFiles returns the number of cached files
func (fr *FileReader) CachedFiles() int {
	return fr.contentCache.Size()
}

func (fr *FileReader) validateAndCleanPath(filePath string) (string, error) {
	if err := NotEmpty("filePath")(filePath); err != nil {
		return "", err
	}
	return filepath.Clean(filePath), nil
}
