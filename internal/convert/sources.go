// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/rug/pkg/types"
)

// DefaultPattern matches every rug file below the source root.
const DefaultPattern = "**/*.rug"

// FindSources walks root and returns the files whose slash-separated path
// relative to root matches pattern. Hidden files and directories are skipped.
func FindSources(root, pattern string) ([]types.SourceFile, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid source pattern %q", pattern)
	}

	var sources []types.SourceFile
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !Matches(pattern, rel) {
			return nil
		}
		sources = append(sources, types.SourceFile{ID: sourceID(rel), Path: path})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return sources, nil
}

// Matches reports whether rel, a path relative to the source root, matches
// pattern.
func Matches(pattern, rel string) bool {
	ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

// SourcesFromPaths builds SourceFile records for explicit paths. Paths below
// root keep their relative directory in the ID; others use the base name.
func SourcesFromPaths(root string, paths []string) []types.SourceFile {
	sources := make([]types.SourceFile, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			rel = filepath.Base(p)
		}
		sources[i] = types.SourceFile{ID: sourceID(rel), Path: p}
	}
	return sources
}

func sourceID(rel string) string {
	rel = filepath.ToSlash(rel)
	return strings.TrimSuffix(rel, filepath.Ext(rel))
}
