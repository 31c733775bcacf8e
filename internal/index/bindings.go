package index

import (
	"strings"

	"github.com/gogenie/annotate/internal/annotations"
	"github.com/gogenie/annotate/internal/mount"
	"github.com/gogenie/annotate/internal/utils"
)

// BindingIndex maps mount aliases to the structs their annotations decorate
type BindingIndex struct {
	scanner *fileScanner[mount.Binding]
}

// NewBindingIndex creates a binding index over the Go files below root
func NewBindingIndex(root string, processor *utils.FileProcessor, limit int) *BindingIndex {
	return &BindingIndex{
		scanner: newFileScanner("mount binding", root, processor, limit, mount.CollectMountBindingsFromFile),
	}
}

// Bindings returns every binding in the project grouped by lower-cased alias,
// each group in walk order.
func (x *BindingIndex) Bindings(profile *annotations.Profile) (map[string][]mount.LocatedBinding, error) {
	results, _, err := x.scanner.scan(mount.MountRootNames(profile))
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]mount.LocatedBinding)
	for _, result := range results {
		for _, binding := range result.items {
			alias := strings.ToLower(binding.Alias)
			grouped[alias] = append(grouped[alias], mount.LocatedBinding{Binding: binding, Path: result.path})
		}
	}
	return grouped, nil
}

// Resolve finds the declaration value refers to in an annotation named alias,
// preferring bindings next to contextPath.
func (x *BindingIndex) Resolve(profile *annotations.Profile, alias, value, contextPath string) (mount.Target, bool, error) {
	if strings.TrimSpace(value) == "" {
		return mount.Target{}, false, nil
	}
	grouped, err := x.Bindings(profile)
	if err != nil {
		return mount.Target{}, false, err
	}
	target, ok := mount.SelectBinding(grouped[strings.ToLower(alias)], value, contextPath)
	return target, ok, nil
}

// Generation describes the last scan
func (x *BindingIndex) Generation() Generation {
	return x.scanner.lastGeneration()
}
