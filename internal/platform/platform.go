// Package platform maps the running operating system to the shared library
// conventions the VisionML native plugin is built with.
package platform

import (
	"fmt"
	"runtime"
)

// Platform identifies one of the supported operating systems.
type Platform int

// Supported platforms. The zero value is not a valid Platform.
const (
	Windows Platform = iota + 1 // .dll
	Linux                       // .so
	MacOS                       // .dylib
)

var names = map[Platform]string{
	Windows: "windows",
	Linux:   "linux",
	MacOS:   "macos",
}

var extensions = map[Platform]string{
	Windows: ".dll",
	Linux:   ".so",
	MacOS:   ".dylib",
}

// identifiers accepted by Resolve. runtime.GOOS reports "darwin" for macOS.
var identifiers = map[string]Platform{
	"windows": Windows,
	"linux":   Linux,
	"darwin":  MacOS,
	"macos":   MacOS,
}

// UnsupportedPlatformError is returned for an operating system identifier
// that has no shared library convention.
type UnsupportedPlatformError struct {
	ID string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s", e.ID)
}

// Resolve maps an operating system identifier to a Platform.
func Resolve(id string) (Platform, error) {
	p, ok := identifiers[id]
	if !ok {
		return 0, &UnsupportedPlatformError{ID: id}
	}
	return p, nil
}

// Current returns the Platform of the running process.
func Current() (Platform, error) {
	return Resolve(runtime.GOOS)
}

func (p Platform) String() string {
	if name, ok := names[p]; ok {
		return name
	}
	return fmt.Sprintf("platform(%d)", int(p))
}

// Extension returns the shared library file extension, including the dot.
func (p Platform) Extension() string {
	return extensions[p]
}

// LibraryFile returns the shared library filename for base, e.g.
// "kritavisionml" becomes "kritavisionml.so" on Linux.
func (p Platform) LibraryFile(base string) string {
	return base + p.Extension()
}
