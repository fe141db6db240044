// Package fs provides file system adapters for listing scripts, walking
// companion trees and reading file times.
package fs

import (
	"errors"
	"io/fs"
	"iter"
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all regular files below root. Directories named in
// skipDirs are not entered; the root itself is never skipped. Errors are
// yielded with the path they occurred at, and the walk continues past them.
func (w *Walker) WalkFiles(root string, skipDirs ...string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root && errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				if !yield(path, zerr.With(zerr.Wrap(err, "failed to walk directory"), "path", path)) {
					return filepath.SkipAll
				}
				return nil
			}

			if d.IsDir() {
				if path != root && slices.Contains(skipDirs, d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
