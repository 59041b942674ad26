// Package atomicfile replaces files without exposing partially written content.
package atomicfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write replaces path with data. Readers see either the old file or the new one.
func Write(path string, data []byte, perm os.FileMode) error {
	return WriteFunc(path, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err //nolint:wrapcheck // wrapped by WriteFunc
	})
}

// WriteFunc streams content into a temp file next to path, then renames it into place.
// The temp file is removed on any failure.
func WriteFunc(path string, perm os.FileMode, write func(w io.Writer) error) error {
	p, err := Stage(path, perm, write)
	if err != nil {
		return err
	}
	return p.Commit()
}

// Pending is fully written content waiting to replace its target.
type Pending struct {
	tmp  string
	path string
	dir  string
	done bool
}

// Stage writes content to a synced temp file next to path without touching path.
// Commit moves it into place; Discard removes it.
func Stage(path string, perm os.FileMode, write func(w io.Writer) error) (_ *Pending, err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return nil, fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return nil, fmt.Errorf("chmod %s: %w", path, err)
	}
	return &Pending{tmp: tmp.Name(), path: path, dir: dir}, nil
}

// Commit renames the staged file over its target. On failure the temp file is removed
// and the target is unchanged.
func (p *Pending) Commit() error {
	if p.done {
		return fmt.Errorf("commit %s: already finished", p.path)
	}
	p.done = true

	if err := os.Rename(p.tmp, p.path); err != nil {
		_ = os.Remove(p.tmp)
		return fmt.Errorf("rename %s: %w", p.path, err)
	}

	// Best-effort: fsync directory
	if d, derr := os.Open(p.dir); derr == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// Discard removes the staged file. It is a no-op after Commit.
func (p *Pending) Discard() {
	if p == nil || p.done {
		return
	}
	p.done = true
	_ = os.Remove(p.tmp)
}
