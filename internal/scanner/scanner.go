// Package scanner lists the shared libraries that sit next to each other in
// a library directory.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Result holds the output of scanning a directory.
type Result struct {
	LibraryPaths []string
	SkippedCount int
}

// Scan walks dir (non-recursive) and returns the files whose extension
// matches ext, compared case-insensitively, sorted by name. Other files are
// only counted.
func Scan(dir, ext string) (*Result, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}

	ext = strings.ToLower(ext)
	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if strings.ToLower(filepath.Ext(entry.Name())) == ext {
			result.LibraryPaths = append(result.LibraryPaths, filepath.Join(dir, entry.Name()))
		} else {
			result.SkippedCount++
		}
	}
	sort.Strings(result.LibraryPaths)

	return result, nil
}
