// Package host defines the lifecycle hooks a host application drives on its
// extensions, and the VisionML extension that only exists to load the native
// plugin.
package host

import (
	"github.com/bagtoad/visionml/internal/bootstrap"
)

// Window is the host's main window handle, opaque to extensions.
type Window any

// Extension is a plugin registered with a host application.
type Extension interface {
	// Setup runs once after the extension is registered.
	Setup()
	// Shutdown runs once when the host exits.
	Shutdown()
	// CreateActions runs for every window the host opens.
	CreateActions(w Window)
}

// Host accepts extensions.
type Host interface {
	AddExtension(ext Extension)
}

// NopExtension implements every hook as a no-op. Embed it to implement only
// the hooks you need.
type NopExtension struct{}

func (NopExtension) Setup()               {}
func (NopExtension) Shutdown()            {}
func (NopExtension) CreateActions(Window) {}

// Bootstrapper loads a native library.
type Bootstrapper interface {
	Bootstrap() (bootstrap.Library, error)
}

// VisionMLExtension loads the native VisionML library when it is created.
// The native side registers its tools with the host itself, so all hooks are
// no-ops.
type VisionMLExtension struct {
	NopExtension
	lib bootstrap.Library
}

// NewVisionMLExtension bootstraps the native library. On failure the error
// is meant for the host to display; the host itself keeps running.
func NewVisionMLExtension(b Bootstrapper) (*VisionMLExtension, error) {
	lib, err := b.Bootstrap()
	if err != nil {
		return nil, err
	}
	return &VisionMLExtension{lib: lib}, nil
}

// Library returns the loaded native library.
func (e *VisionMLExtension) Library() bootstrap.Library { return e.lib }

// Register creates the VisionML extension and adds it to h.
func Register(h Host, b Bootstrapper) (*VisionMLExtension, error) {
	ext, err := NewVisionMLExtension(b)
	if err != nil {
		return nil, err
	}
	h.AddExtension(ext)
	return ext, nil
}
