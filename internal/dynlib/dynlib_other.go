//go:build !darwin && !linux && !windows

package dynlib

const scopedSearch = false

func openLibrary(string, []string) (uintptr, error) { return 0, ErrUnsupported }

func lookupSymbol(uintptr, string) (uintptr, error) { return 0, ErrUnsupported }

func callSymbol(uintptr) {}

func closeLibrary(uintptr) error { return ErrUnsupported }
