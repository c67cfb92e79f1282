// Package searchpath temporarily prepends directories to path-list
// environment variables such as PATH and LD_LIBRARY_PATH.
//
// The variables are process global. Nothing here is safe to use from more
// than one goroutine while a Scope is open.
package searchpath

import (
	"os"
	"strings"
)

// Augment prepends dirs to the environment variable name and returns the
// value it had before. An unset variable is treated as empty. With no dirs
// the variable is left alone.
func Augment(name string, dirs []string) string {
	previous := os.Getenv(name)
	if len(dirs) == 0 {
		return previous
	}

	value := strings.Join(dirs, string(os.PathListSeparator))
	if previous != "" {
		value += string(os.PathListSeparator) + previous
	}
	os.Setenv(name, value)
	return previous
}

// Restore sets name back to a value returned by Augment. An empty previous
// value cannot be told apart from an unset variable, so the variable is left
// set to the empty string in that case.
func Restore(name, previous string) {
	os.Setenv(name, previous)
}

type saved struct {
	name     string
	previous string
}

// Scope records every variable it mutates so that Release can put them back.
//
//	scope := searchpath.NewScope()
//	defer scope.Release()
//	scope.Augment("PATH", dirs)
type Scope struct {
	saved    []saved
	released bool
}

// NewScope returns an empty Scope.
func NewScope() *Scope {
	return &Scope{}
}

// Augment prepends dirs to name and remembers the previous value. It
// returns the previous value like the package level Augment.
func (s *Scope) Augment(name string, dirs []string) string {
	previous := Augment(name, dirs)
	if len(dirs) > 0 {
		s.saved = append(s.saved, saved{name: name, previous: previous})
	}
	return previous
}

// Apply augments every entry of a policy.
func (s *Scope) Apply(entries []Entry) {
	for _, e := range entries {
		s.Augment(e.Variable, e.Dirs)
	}
}

// Release restores the mutated variables in reverse order. Calling it more
// than once has no effect.
func (s *Scope) Release() {
	if s.released {
		return
	}
	s.released = true
	for i := len(s.saved) - 1; i >= 0; i-- {
		Restore(s.saved[i].name, s.saved[i].previous)
	}
	s.saved = nil
}
