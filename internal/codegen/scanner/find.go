package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultSearchDepth bounds descriptor discovery below the search root.
const DefaultSearchDepth = 8

var skippedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	".git":         true,
	"build":        true,
}

// IsDescriptorFile reports whether name carries a binary descriptor set
// extension. JSON sets are loadable but never discovered.
func IsDescriptorFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext != ".json" && containsExt(ext)
}

func containsExt(ext string) bool {
	for _, e := range DescriptorExts {
		if e == ext {
			return true
		}
	}
	return false
}

// FindDescriptors walks root up to maxDepth directories deep and returns the
// descriptor sets it finds, relative to root and sorted. Unreadable
// directories are skipped.
func FindDescriptors(root string, maxDepth int) []string {
	var found []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if skippedDirs[d.Name()] || strings.Count(filepath.ToSlash(rel), "/")+1 > maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if IsDescriptorFile(d.Name()) {
			found = append(found, rel)
		}
		return nil
	})
	sort.Strings(found)
	return found
}
