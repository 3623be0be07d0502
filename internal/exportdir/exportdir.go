// Package exportdir owns the per-run temporary directory that receives
// the exported tree. The directory is private to a single run and is
// removed at most once, on every exit path.
package exportdir

import (
	"os"
	"sync"
)

// Dir is a scoped temporary directory. Cleanup may be called from any
// number of paths; only the first call removes anything.
type Dir struct {
	path      string
	once      sync.Once
	removeErr error
}

// New creates a uniquely named directory under root. An empty root
// selects the operating system default temporary directory.
func New(root string) (*Dir, error) {
	path, err := os.MkdirTemp(root, "shipit-")
	if err != nil {
		return nil, err
	}
	return &Dir{path: path}, nil
}

// Path returns the directory location.
func (d *Dir) Path() string {
	return d.path
}

// Release disarms cleanup so the directory outlives the run, and
// returns its path.
func (d *Dir) Release() string {
	d.once.Do(func() {})
	return d.path
}

// Cleanup removes the directory tree. Repeated calls are no-ops and
// report the outcome of the first call.
func (d *Dir) Cleanup() error {
	d.once.Do(func() {
		d.removeErr = os.RemoveAll(d.path)
	})
	return d.removeErr
}
