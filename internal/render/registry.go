package render

import (
	"fmt"
	"os"
)

// Registry tracks temp files created during one generation run. It is owned
// by the orchestrator and mutated from a single goroutine; every registered
// path is removed at the end of the run regardless of outcome.
type Registry struct {
	paths []string
}

// Add records a path for end-of-run removal.
func (r *Registry) Add(path string) {
	r.paths = append(r.paths, path)
}

// Paths returns a copy of the registered paths.
func (r *Registry) Paths() []string {
	return append([]string(nil), r.paths...)
}

// CleanupAll removes every registered path. Removal is best effort: missing
// files are fine, and failures are collected rather than aborting the sweep.
func (r *Registry) CleanupAll() []error {
	var errs []error
	for _, path := range r.paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
		}
	}
	r.paths = nil
	return errs
}
