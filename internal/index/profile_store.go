package index

import (
	"sync"

	"github.com/gogenie/annotate/internal/annotations"
	"github.com/gogenie/annotate/internal/config"
	"github.com/gogenie/annotate/internal/utils"
)

type profileKey struct {
	path  string
	stamp utils.Stamp
}

func (k profileKey) equal(other profileKey) bool {
	return k.path == other.path && k.stamp.Equal(other.stamp)
}

// ProfileStore serves the profile of the project config, rebuilding it when the
// located config file changes, appears or disappears.
type ProfileStore struct {
	root string

	mu      sync.RWMutex
	loaded  bool
	key     profileKey
	dynamic config.Dynamic
	profile *annotations.Profile
}

// NewProfileStore creates a store for the project at root
func NewProfileStore(root string) *ProfileStore {
	return &ProfileStore{root: root}
}

// Profile returns the profile for the current state of the config file
func (s *ProfileStore) Profile() *annotations.Profile {
	_, profile := s.current()
	return profile
}

// Config returns the configuration the current profile was built from
func (s *ProfileStore) Config() config.Dynamic {
	dynamic, _ := s.current()
	return dynamic
}

func (s *ProfileStore) current() (config.Dynamic, *annotations.Profile) {
	key := s.currentKey()

	s.mu.RLock()
	if s.loaded && s.key.equal(key) {
		dynamic, profile := s.dynamic, s.profile
		s.mu.RUnlock()
		return dynamic, profile
	}
	s.mu.RUnlock()

	dynamic := config.Defaults("")
	if key.path != "" {
		dynamic = config.Parse(key.path)
	}
	profile := annotations.Build(dynamic)

	s.mu.Lock()
	s.loaded = true
	s.key = key
	s.dynamic = dynamic
	s.profile = profile
	s.mu.Unlock()
	return dynamic, profile
}

func (s *ProfileStore) currentKey() profileKey {
	path, ok := config.Locate(s.root)
	if !ok {
		return profileKey{}
	}
	stamp, err := utils.StampOf(path)
	if err != nil {
		return profileKey{}
	}
	return profileKey{path: path, stamp: stamp}
}

// Invalidate forces the next call to re-read the config
func (s *ProfileStore) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
}
