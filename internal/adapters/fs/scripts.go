package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// ScriptLister lists executable scripts and plugins in a directory.
type ScriptLister struct{}

// NewScriptLister creates a new ScriptLister.
func NewScriptLister() *ScriptLister {
	return &ScriptLister{}
}

// ListScripts returns the absolute paths of the executable regular files
// directly under dir, sorted by name. Hidden files and editor backups
// ending in ~ are ignored. A missing directory yields no scripts.
func (l *ScriptLister) ListScripts(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve scripts directory"), "path", dir)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to list scripts"), "path", abs)
	}

	var scripts []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") || entry.IsDir() {
			continue
		}

		path := filepath.Join(abs, name)
		// Stat follows symlinks so linked scripts count.
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0 {
			scripts = append(scripts, path)
		}
	}

	return scripts, nil
}
