package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bagtoad/visionml/internal/dynlib"
)

// DependencyFailure is a sibling library that failed to load on its own.
type DependencyFailure struct {
	Path string
	Err  error
}

// BootstrapError is returned when the VisionML library could not be loaded
// or initialized. Dependencies lists the sibling libraries that failed an
// isolated load, which usually points at the missing piece.
type BootstrapError struct {
	Library      string
	Cause        error
	Dependencies []DependencyFailure
}

func (e *BootstrapError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Failed to load VisionML library from %s: %s", e.Library, reason(e.Cause))
	for _, d := range e.Dependencies {
		fmt.Fprintf(&b, "\nFailed to load dependency %s: %s", d.Path, reason(d.Err))
	}
	return b.String()
}

func (e *BootstrapError) Unwrap() error { return e.Cause }

// reason strips the path an OpenError repeats.
func reason(err error) string {
	if err == nil {
		return "unknown error"
	}
	var oe *dynlib.OpenError
	if errors.As(err, &oe) && oe.Err != nil {
		return oe.Err.Error()
	}
	return err.Error()
}
