// Package onnxlib locates the ONNX Runtime shared library shipped in the
// VisionML library directory and checks that it initializes. The native
// plugin runs its models on it, so a broken runtime is the usual reason the
// plugin fails to load.
package onnxlib

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bagtoad/visionml/internal/platform"
	ort "github.com/yalue/onnxruntime_go"
)

var libraryNames = map[platform.Platform]string{
	platform.Windows: "onnxruntime.dll",
	platform.Linux:   "libonnxruntime.so",
	platform.MacOS:   "libonnxruntime.dylib",
}

// versioned file names, e.g. libonnxruntime.so.1.20.0 or
// libonnxruntime.1.20.0.dylib
var versionedPatterns = map[platform.Platform]string{
	platform.Linux: "libonnxruntime.so.*",
	platform.MacOS: "libonnxruntime.*.dylib",
}

// LibraryName returns the unversioned ONNX Runtime filename on p.
func LibraryName(p platform.Platform) string {
	return libraryNames[p]
}

// Find returns the path of the ONNX Runtime library in libDir. The
// unversioned name wins; otherwise the highest versioned file is used.
func Find(libDir string, p platform.Platform) (string, error) {
	name := LibraryName(p)
	if name == "" {
		return "", fmt.Errorf("no ONNX Runtime library name for %s", p)
	}

	path := filepath.Join(libDir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if pattern, ok := versionedPatterns[p]; ok {
		matches, err := filepath.Glob(filepath.Join(libDir, pattern))
		if err == nil && len(matches) > 0 {
			sort.Strings(matches)
			return matches[len(matches)-1], nil
		}
	}

	return "", fmt.Errorf("ONNX Runtime library not found: %s", path)
}

// Probe loads the ONNX Runtime library at path, initializes an environment
// and returns the runtime version. The environment is destroyed again.
func Probe(path string) (string, error) {
	if ort.IsInitialized() {
		return ort.GetVersion(), nil
	}

	ort.SetSharedLibraryPath(path)
	if err := ort.InitializeEnvironment(); err != nil {
		return "", fmt.Errorf("cannot initialize ONNX Runtime: %w", err)
	}
	defer ort.DestroyEnvironment()

	return ort.GetVersion(), nil
}
