package bootstrap

import (
	"github.com/bagtoad/visionml/internal/platform"
	"github.com/bagtoad/visionml/internal/scanner"
)

// ProbeResult is the outcome of loading one library on its own. Err is nil
// when it loaded.
type ProbeResult struct {
	Path string
	Err  error
}

// Probe loads every library in the library directory in isolation, without
// calling any entry point, with the same search paths Bootstrap uses.
func (b *Bootstrapper) Probe() ([]ProbeResult, error) {
	p, err := b.Platform()
	if err != nil {
		return nil, err
	}
	dirs, release := b.searchDirs(b.policy(p))
	defer release()

	return b.probe(p, dirs)
}

func (b *Bootstrapper) probe(p platform.Platform, dirs []string) ([]ProbeResult, error) {
	scan, err := scanner.Scan(b.libDir, p.Extension())
	if err != nil {
		return nil, err
	}

	results := make([]ProbeResult, 0, len(scan.LibraryPaths))
	for _, path := range scan.LibraryPaths {
		lib, err := b.opener.Open(path, dirs)
		if err == nil {
			b.closeLibrary(lib, path)
		}
		results = append(results, ProbeResult{Path: path, Err: err})
	}
	return results, nil
}

// failedDependencies probes the siblings and keeps only the failures. A
// library directory that cannot be read yields no dependencies.
func (b *Bootstrapper) failedDependencies(p platform.Platform, dirs []string) []DependencyFailure {
	results, err := b.probe(p, dirs)
	if err != nil {
		b.log.WithError(err).Debug("Cannot scan library directory")
		return nil
	}

	var failures []DependencyFailure
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		b.log.WithError(r.Err).WithField("dependency", r.Path).Warn("Failed to load dependency")
		failures = append(failures, DependencyFailure{Path: r.Path, Err: r.Err})
	}
	return failures
}
