//go:build darwin || linux

package dynlib

import "github.com/ebitengine/purego"

// dlopen has no per-handle search path.
const scopedSearch = false

func openLibrary(path string, _ []string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func callSymbol(addr uintptr) {
	purego.SyscallN(addr)
}

func closeLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}
