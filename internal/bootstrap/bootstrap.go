// Package bootstrap loads the VisionML native library and calls its plugin
// entry point.
//
// The library lives in a lib directory next to the installation together
// with the libraries it depends on. Dependencies are made visible to the
// native loader either through the loader itself (Windows) or by prepending
// the directories to PATH / LD_LIBRARY_PATH for the duration of the load.
// When loading fails, every sibling library is loaded on its own to find
// out which dependency is broken.
package bootstrap

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/bagtoad/visionml/internal/dynlib"
	"github.com/bagtoad/visionml/internal/platform"
	"github.com/bagtoad/visionml/internal/searchpath"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultLibrary is the library base name, without extension.
	DefaultLibrary = "kritavisionml"
	// DefaultEntryPoint is the export called once the library is loaded.
	DefaultEntryPoint = "load_vision_ml_plugin"
	// LibSubdir is the library directory relative to the installation.
	LibSubdir = "lib"
)

// Library is a loaded shared library.
type Library interface {
	Call(symbol string) error
	Close() error
}

// Opener loads shared libraries. ScopedSearch reports whether Open resolves
// dependencies from searchDirs; if not, the search directories are exported
// through the environment instead.
type Opener interface {
	Open(path string, searchDirs []string) (Library, error)
	ScopedSearch() bool
}

type systemOpener struct {
	dynlib.System
}

func (o systemOpener) Open(path string, searchDirs []string) (Library, error) {
	lib, err := o.System.Open(path, searchDirs)
	if err != nil {
		return nil, err
	}
	return lib, nil
}

// SystemOpener returns the Opener backed by the operating system loader.
func SystemOpener() Opener {
	return systemOpener{}
}

// Bootstrapper loads the native library once. It is not safe for concurrent
// use; it mutates process environment variables while loading.
type Bootstrapper struct {
	platformID string
	libDir     string
	exeDir     string
	library    string
	entryPoint string
	extraDirs  []string
	opener     Opener
	lookupEnv  func(string) (string, bool)
	log        logrus.FieldLogger
}

// Option configures a Bootstrapper.
type Option func(*Bootstrapper)

// WithPlatform overrides the operating system identifier, mostly for tests.
func WithPlatform(id string) Option {
	return func(b *Bootstrapper) { b.platformID = id }
}

// WithLibDir sets the directory holding the library and its dependencies.
func WithLibDir(dir string) Option {
	return func(b *Bootstrapper) { b.libDir = dir }
}

// WithExecutableDir sets the host executable directory added to PATH on
// Windows.
func WithExecutableDir(dir string) Option {
	return func(b *Bootstrapper) { b.exeDir = dir }
}

// WithLibrary sets the library base name, without extension.
func WithLibrary(name string) Option {
	return func(b *Bootstrapper) { b.library = name }
}

// WithEntryPoint sets the exported function called after loading.
func WithEntryPoint(symbol string) Option {
	return func(b *Bootstrapper) { b.entryPoint = symbol }
}

// WithExtraDirs appends directories to the platform's primary search
// variable, after the library directory. They are ignored on macOS, where
// dyld does not search PATH.
func WithExtraDirs(dirs ...string) Option {
	return func(b *Bootstrapper) { b.extraDirs = append(b.extraDirs, dirs...) }
}

// WithOpener replaces the system loader.
func WithOpener(o Opener) Option {
	return func(b *Bootstrapper) { b.opener = o }
}

// WithLookupEnv replaces os.LookupEnv for reading APPDIR.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(b *Bootstrapper) { b.lookupEnv = fn }
}

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(b *Bootstrapper) { b.log = log }
}

// New returns a Bootstrapper. By default the library directory is lib/ next
// to the running executable.
func New(opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		platformID: runtime.GOOS,
		library:    DefaultLibrary,
		entryPoint: DefaultEntryPoint,
		opener:     SystemOpener(),
		lookupEnv:  os.LookupEnv,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.exeDir == "" {
		b.exeDir = ExecutableDir()
	}
	if b.libDir == "" {
		b.libDir = filepath.Join(b.exeDir, LibSubdir)
	}
	if abs, err := filepath.Abs(b.libDir); err == nil {
		b.libDir = abs
	}
	b.log = b.log.WithField("component", "VisionML")
	return b
}

// ExecutableDir returns the directory of the running executable, or the
// empty string if it cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// Platform resolves the configured operating system.
func (b *Bootstrapper) Platform() (platform.Platform, error) {
	return platform.Resolve(b.platformID)
}

// LibDir returns the absolute library directory.
func (b *Bootstrapper) LibDir() string { return b.libDir }

// LibraryPath returns the absolute path of the library on p.
func (b *Bootstrapper) LibraryPath(p platform.Platform) string {
	return filepath.Join(b.libDir, p.LibraryFile(b.library))
}

func (b *Bootstrapper) policy(p platform.Platform) []searchpath.Entry {
	appDir, _ := b.lookupEnv(searchpath.AppDir)
	entries := searchpath.Policy(p, searchpath.Locations{
		LibDir: b.libDir,
		ExeDir: b.exeDir,
		AppDir: appDir,
	})
	switch {
	case len(b.extraDirs) == 0 || len(entries) == 0:
	case p == platform.MacOS:
		b.log.WithField("dirs", b.extraDirs).Warn("Extra search directories have no effect on macOS")
	default:
		entries[0].Dirs = append(entries[0].Dirs, b.extraDirs...)
	}
	return entries
}

// searchDirs makes the policy directories visible to the loader. It returns
// the directories to hand to Opener.Open and a release func that must run
// once loading is over.
func (b *Bootstrapper) searchDirs(entries []searchpath.Entry) ([]string, func()) {
	for _, dir := range searchpath.Dirs(entries) {
		if _, err := os.Stat(dir); err != nil {
			b.log.WithError(err).WithField("dir", dir).Debug("Search directory not usable")
		}
	}
	if b.opener.ScopedSearch() {
		dirs := searchpath.Dirs(entries)
		b.log.WithField("dirs", dirs).Debug("Using loader search directories")
		return dirs, func() {}
	}
	scope := searchpath.NewScope()
	for _, e := range entries {
		if len(e.Dirs) == 0 {
			continue
		}
		b.log.WithFields(logrus.Fields{"variable": e.Variable, "dirs": e.Dirs}).Debug("Augmenting search path")
	}
	scope.Apply(entries)
	return nil, scope.Release
}

// Bootstrap loads the library and calls its entry point. The returned
// Library stays loaded for the remaining lifetime of the process. Search
// path variables are restored before Bootstrap returns.
func (b *Bootstrapper) Bootstrap() (Library, error) {
	p, err := b.Platform()
	if err != nil {
		return nil, err
	}
	libPath := b.LibraryPath(p)
	b.log.WithFields(logrus.Fields{"platform": p, "library": libPath}).Debug("Loading VisionML library")

	dirs, release := b.searchDirs(b.policy(p))
	defer release()

	lib, err := b.load(libPath, dirs)
	if err != nil {
		b.log.WithError(err).Debug("Failed to load VisionML library, probing dependencies")
		return nil, &BootstrapError{
			Library:      libPath,
			Cause:        err,
			Dependencies: b.failedDependencies(p, dirs),
		}
	}
	b.log.WithField("entry_point", b.entryPoint).Info("VisionML plugin loaded")
	return lib, nil
}

func (b *Bootstrapper) load(path string, dirs []string) (Library, error) {
	lib, err := b.opener.Open(path, dirs)
	if err != nil {
		return nil, err
	}
	if err := lib.Call(b.entryPoint); err != nil {
		b.closeLibrary(lib, path)
		return nil, err
	}
	return lib, nil
}

func (b *Bootstrapper) closeLibrary(lib Library, path string) {
	if err := lib.Close(); err != nil {
		b.log.WithError(err).WithField("library", path).Debug("Cannot close library")
	}
}
