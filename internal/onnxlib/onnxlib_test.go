package onnxlib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bagtoad/visionml/internal/platform"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("fake"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLibraryName(t *testing.T) {
	tests := map[platform.Platform]string{
		platform.Windows: "onnxruntime.dll",
		platform.Linux:   "libonnxruntime.so",
		platform.MacOS:   "libonnxruntime.dylib",
	}
	for p, want := range tests {
		if got := LibraryName(p); got != want {
			t.Errorf("LibraryName(%s) = %s, want %s", p, got, want)
		}
	}
}

func TestFindUnversioned(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "libonnxruntime.so", "libonnxruntime.so.1.20.0")

	path, err := Find(dir, platform.Linux)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "libonnxruntime.so"); path != want {
		t.Errorf("got %s, want %s", path, want)
	}
}

func TestFindVersioned(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "libonnxruntime.1.19.2.dylib", "libonnxruntime.1.20.0.dylib", "kritavisionml.dylib")

	path, err := Find(dir, platform.MacOS)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "libonnxruntime.1.20.0.dylib"); path != want {
		t.Errorf("got %s, want %s", path, want)
	}
}

func TestFindMissing(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "kritavisionml.dll")

	if _, err := Find(dir, platform.Windows); err == nil {
		t.Error("expected error when ONNX Runtime is missing")
	}
}
