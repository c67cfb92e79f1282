// Package report prints the result of checking a VisionML library directory.
package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/bagtoad/visionml/internal/bootstrap"
)

// Check collects what the doctor command found.
type Check struct {
	Platform string
	LibDir   string
	Library  string
	Results  []bootstrap.ProbeResult

	// ONNX Runtime, left empty when it was not looked for.
	ORTPath    string
	ORTVersion string
	ORTErr     error
}

// Failed returns the number of libraries that did not load.
func (c *Check) Failed() int {
	n := 0
	for _, r := range c.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// OK reports whether every library loaded and ONNX Runtime, if checked,
// initialized.
func (c *Check) OK() bool {
	return c.Failed() == 0 && c.ORTErr == nil
}

// Print writes a summary report to the given writer.
func Print(w io.Writer, c *Check) {
	failed := c.Failed()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Library Check ===")
	fmt.Fprintf(w, "Platform:            %s\n", c.Platform)
	fmt.Fprintf(w, "Library directory:   %s\n", c.LibDir)
	fmt.Fprintf(w, "Plugin library:      %s\n", c.Library)
	fmt.Fprintf(w, "Libraries found:     %d\n", len(c.Results))
	fmt.Fprintf(w, "Libraries loaded:    %d\n", len(c.Results)-failed)
	fmt.Fprintf(w, "Libraries failed:    %d\n", failed)

	switch {
	case c.ORTErr != nil:
		fmt.Fprintf(w, "ONNX Runtime:        error: %v\n", c.ORTErr)
	case c.ORTVersion != "":
		fmt.Fprintf(w, "ONNX Runtime:        %s (%s)\n", c.ORTVersion, filepath.Base(c.ORTPath))
	}

	if len(c.Results) == 0 {
		fmt.Fprintln(w, "\nNo libraries to check.")
		return
	}

	fmt.Fprintln(w)
	for _, r := range c.Results {
		if r.Err != nil {
			fmt.Fprintf(w, "  FAILED  %s\n          %v\n", filepath.Base(r.Path), r.Err)
		} else {
			fmt.Fprintf(w, "  ok      %s\n", filepath.Base(r.Path))
		}
	}
	fmt.Fprintln(w)
}
