package index

import (
	"sync"

	"github.com/google/uuid"

	genieerrors "github.com/gogenie/annotate/internal/errors"
	"github.com/gogenie/annotate/internal/mount"
	"github.com/gogenie/annotate/internal/utils"
)

// Generation describes one build of a project scan
type Generation struct {
	ID        string `json:"id"`
	Signature string `json:"signature"`
	Files     int    `json:"files"`
	Truncated bool   `json:"truncated"`
}

type fileKey struct {
	path      string
	signature string
}

type fileResult[T any] struct {
	path  string
	items []T
}

// fileScanner extracts items from every Go file of a project. Per-file results are
// cached by path, stamp and mount root signature, so a rescan only reads files
// that changed. A new generation ID is issued whenever any result changes.
type fileScanner[T any] struct {
	name      string
	root      string
	limit     int
	processor *utils.FileProcessor
	extract   func(text string, roots mount.Roots) []T
	cache     *utils.Cache[fileKey, []T]

	mu         sync.RWMutex
	generation Generation
	results    []fileResult[T]
}

func newFileScanner[T any](name, root string, processor *utils.FileProcessor, limit int, extract func(string, mount.Roots) []T) *fileScanner[T] {
	return &fileScanner[T]{
		name:      name,
		root:      root,
		limit:     limit,
		processor: processor,
		extract:   extract,
		cache:     utils.NewCache[fileKey, []T](),
	}
}

func (s *fileScanner[T]) scan(roots mount.Roots) ([]fileResult[T], Generation, error) {
	signature := roots.Signature()
	if len(roots) == 0 {
		return nil, Generation{Signature: signature}, nil
	}

	walked, err := s.processor.WalkGoFiles(s.root, s.limit)
	if err != nil {
		return nil, Generation{}, genieerrors.WrapIndexError(s.name, s.root, err)
	}

	reader := s.processor.GetFileReader()
	changed := false
	results := make([]fileResult[T], 0, len(walked.Files))
	seen := make(map[fileKey]bool, len(walked.Files))

	for _, path := range walked.Files {
		key := fileKey{path: path, signature: signature}
		seen[key] = true

		stamp, err := utils.StampOf(path)
		if err != nil {
			continue
		}
		items, ok := s.cache.GetFresh(key, stamp)
		if !ok {
			text, textStamp, err := reader.ReadFileStamped(path)
			if err != nil {
				continue
			}
			items = s.extract(text, roots)
			s.cache.Put(key, items, textStamp)
			changed = true
		}
		if len(items) > 0 {
			results = append(results, fileResult[T]{path: path, items: items})
		}
	}

	if s.cache.Retain(func(key fileKey) bool { return seen[key] }) > 0 {
		changed = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if changed || s.generation.ID == "" || s.generation.Signature != signature {
		s.generation = Generation{
			ID:        uuid.NewString(),
			Signature: signature,
			Files:     len(walked.Files),
			Truncated: walked.Truncated,
		}
		s.results = results
	}
	return s.results, s.generation, nil
}

// lastGeneration returns the last completed generation
func (s *fileScanner[T]) lastGeneration() Generation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
