package engine

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks root and returns the source files below it, sorted. Hidden
// directories and paths matching an exclude glob are skipped. A root that is
// itself a source file is returned as is.
func (e *Engine) Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || e.excluded(rel, d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}
		if !e.extensions[strings.ToLower(filepath.Ext(path))] || e.excluded(rel, d.Name()) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering sources in %s: %w", root, err)
	}

	sort.Strings(files)
	e.logger.Debug("discovered sources", "root", root, "files", len(files))
	return files, nil
}

// excluded reports whether the slash-separated relative path or the base name
// matches one of the exclude globs.
func (e *Engine) excluded(rel, name string) bool {
	for _, pattern := range e.excludes {
		pattern = strings.TrimSuffix(filepath.ToSlash(strings.TrimSpace(pattern)), "/")
		if pattern == "" {
			continue
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
