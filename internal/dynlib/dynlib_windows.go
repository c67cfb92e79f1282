//go:build windows

package dynlib

import (
	"errors"
	"fmt"
	"syscall"

	"golang.org/x/sys/windows"
)

const scopedSearch = true

const searchFlags = windows.LOAD_LIBRARY_SEARCH_DLL_LOAD_DIR |
	windows.LOAD_LIBRARY_SEARCH_DEFAULT_DIRS |
	windows.LOAD_LIBRARY_SEARCH_USER_DIRS

// openLibrary registers searchDirs with AddDllDirectory for the duration of
// the load so dependent DLLs resolve from there instead of PATH.
func openLibrary(path string, searchDirs []string) (uintptr, error) {
	var cookies []uintptr
	defer func() {
		for _, c := range cookies {
			windows.RemoveDllDirectory(c)
		}
	}()

	// A rejected directory is only reported if the load fails, the DLL may
	// not need it.
	var rejected []error
	for _, dir := range searchDirs {
		p, err := windows.UTF16PtrFromString(dir)
		if err != nil {
			return 0, fmt.Errorf("search dir %q: %w", dir, err)
		}
		cookie, err := windows.AddDllDirectory(p)
		if err != nil {
			rejected = append(rejected, &SearchDirError{Dir: dir, Err: err})
			continue
		}
		cookies = append(cookies, cookie)
	}

	h, err := windows.LoadLibraryEx(path, 0, searchFlags)
	if err != nil {
		return 0, errors.Join(append([]error{err}, rejected...)...)
	}
	return uintptr(h), nil
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}

func callSymbol(addr uintptr) {
	syscall.SyscallN(addr)
}

func closeLibrary(handle uintptr) error {
	return windows.FreeLibrary(windows.Handle(handle))
}
