// Package dynlib opens native shared libraries at runtime and calls their
// exported functions without cgo.
package dynlib

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned on operating systems without a loader.
var ErrUnsupported = errors.New("dynamic loading not supported on this platform")

// OpenError reports a shared library that could not be loaded.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot load %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// SymbolError reports an export missing from a loaded library.
type SymbolError struct {
	Path   string
	Symbol string
	Err    error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("symbol %s not found in %s: %v", e.Symbol, e.Path, e.Err)
}

func (e *SymbolError) Unwrap() error { return e.Err }

// SearchDirError reports a search directory the loader refused to use.
type SearchDirError struct {
	Dir string
	Err error
}

func (e *SearchDirError) Error() string {
	return fmt.Sprintf("search directory %s rejected: %v", e.Dir, e.Err)
}

func (e *SearchDirError) Unwrap() error { return e.Err }

// Library is a loaded shared library.
type Library struct {
	path   string
	handle uintptr
}

// Path returns the path the library was opened from.
func (l *Library) Path() string { return l.path }

// Handle returns the native module handle.
func (l *Library) Handle() uintptr { return l.handle }

// Lookup returns the address of an exported symbol.
func (l *Library) Lookup(symbol string) (uintptr, error) {
	addr, err := lookupSymbol(l.handle, symbol)
	if err == nil && addr == 0 {
		err = errors.New("nil address")
	}
	if err != nil {
		return 0, &SymbolError{Path: l.path, Symbol: symbol, Err: err}
	}
	return addr, nil
}

// Call resolves symbol and invokes it as a function taking no arguments.
// Whatever the function returns is discarded.
func (l *Library) Call(symbol string) error {
	addr, err := l.Lookup(symbol)
	if err != nil {
		return err
	}
	callSymbol(addr)
	return nil
}

// Close unloads the library.
func (l *Library) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := closeLibrary(l.handle)
	l.handle = 0
	return err
}

// System loads libraries through the operating system's dynamic loader.
type System struct{}

// ScopedSearch reports whether Open honours its searchDirs argument. When
// it does not, dependencies are only found through the process environment
// (LD_LIBRARY_PATH, PATH) or the library's own rpath.
func (System) ScopedSearch() bool { return scopedSearch }

// Open loads the shared library at path. On loaders with scoped search the
// dependencies of the library are also looked up in searchDirs, without
// touching the process environment.
func (System) Open(path string, searchDirs []string) (*Library, error) {
	handle, err := openLibrary(path, searchDirs)
	if err == nil && handle == 0 {
		err = errors.New("nil handle")
	}
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return &Library{path: path, handle: handle}, nil
}
