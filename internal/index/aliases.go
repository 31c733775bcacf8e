package index

import (
	"github.com/gogenie/annotate/internal/annotations"
	"github.com/gogenie/annotate/internal/mount"
	"github.com/gogenie/annotate/internal/utils"
)

// AliasIndex collects the mount aliases declared anywhere in the project
type AliasIndex struct {
	scanner *fileScanner[string]
}

// NewAliasIndex creates an alias index over the Go files below root
func NewAliasIndex(root string, processor *utils.FileProcessor, limit int) *AliasIndex {
	return &AliasIndex{
		scanner: newFileScanner("mount alias", root, processor, limit, mount.CollectAliasesFromText),
	}
}

// Aliases returns the declared aliases in walk order without duplicates
func (x *AliasIndex) Aliases(profile *annotations.Profile) ([]string, error) {
	results, _, err := x.scanner.scan(mount.MountRootNames(profile))
	if err != nil {
		return nil, err
	}

	var aliases []string
	seen := make(map[string]bool)
	for _, result := range results {
		for _, alias := range result.items {
			if !seen[alias] {
				seen[alias] = true
				aliases = append(aliases, alias)
			}
		}
	}
	return aliases, nil
}

// Generation describes the last scan
func (x *AliasIndex) Generation() Generation {
	return x.scanner.lastGeneration()
}
