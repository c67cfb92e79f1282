package searchpath

import (
	"path/filepath"

	"github.com/bagtoad/visionml/internal/platform"
)

const (
	// Path is the executable and DLL search path.
	Path = "PATH"
	// LDLibraryPath is the Linux shared library search path.
	LDLibraryPath = "LD_LIBRARY_PATH"
	// AppDir is set to the bundle root when running from an AppImage.
	AppDir = "APPDIR"

	appDirLibSubdir = "usr/lib"
)

// Entry is one variable to augment and the directories to prepend to it.
type Entry struct {
	Variable string
	Dirs     []string
}

// Locations are the directories a policy can draw from.
type Locations struct {
	LibDir string
	ExeDir string
	// AppDir is the root of a portable bundle (AppImage), empty when not
	// running from one.
	AppDir string
}

type rule struct {
	variable string
	dirs     func(Locations) []string
}

var policies = map[platform.Platform][]rule{
	platform.Windows: {
		{Path, func(l Locations) []string { return []string{l.LibDir, l.ExeDir} }},
	},
	platform.Linux: {
		{LDLibraryPath, func(l Locations) []string {
			dirs := []string{l.LibDir}
			if l.AppDir != "" {
				dirs = append(dirs, filepath.Join(l.AppDir, appDirLibSubdir))
			}
			return dirs
		}},
		{Path, func(Locations) []string { return nil }},
	},
	platform.MacOS: {
		{Path, func(Locations) []string { return nil }},
	},
}

// Policy returns the variables to augment on p, in order. Empty directory
// strings are dropped.
func Policy(p platform.Platform, loc Locations) []Entry {
	rules := policies[p]
	entries := make([]Entry, 0, len(rules))
	for _, r := range rules {
		var dirs []string
		for _, d := range r.dirs(loc) {
			if d != "" {
				dirs = append(dirs, d)
			}
		}
		entries = append(entries, Entry{Variable: r.variable, Dirs: dirs})
	}
	return entries
}

// Dirs flattens the directories of entries, keeping the first occurrence of
// each.
func Dirs(entries []Entry) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, e := range entries {
		for _, d := range e.Dirs {
			if !seen[d] {
				seen[d] = true
				dirs = append(dirs, d)
			}
		}
	}
	return dirs
}
