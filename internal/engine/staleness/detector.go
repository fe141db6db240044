// Package staleness decides whether a persisted definitions layer still
// matches the plugins and scripts on disk.
package staleness

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/core/ports"
)

// Detector compares a layer's recorded definitions against the file system.
type Detector struct {
	scripts ports.ScriptLister
	times   ports.FileTimes
	walker  ports.FileWalker
}

// NewDetector creates a new Detector.
func NewDetector(scripts ports.ScriptLister, times ports.FileTimes, walker ports.FileWalker) *Detector {
	return &Detector{
		scripts: scripts,
		times:   times,
		walker:  walker,
	}
}

// IsStale reports whether the layer in layerDir must be rebuilt, and why.
// Any error while inspecting the layer makes it stale.
func (d *Detector) IsStale(ctx context.Context, layerDir string, cache *domain.Cache) (bool, string) {
	if cache == nil {
		return true, "no definitions recorded"
	}
	reason, err := d.check(ctx, layerDir, cache)
	if err != nil {
		return true, "staleness check failed: " + err.Error()
	}
	return reason != "", reason
}

// IsBuiltInStale reports whether the built-in layer must be rebuilt. The
// layer records the fingerprint of the table it was built from in stored.
// A zero executable time skips the binary age check.
func (d *Detector) IsBuiltInStale(cache *domain.Cache, stored string, executable time.Time, fingerprint string) (bool, string) {
	if cache == nil {
		return true, "no definitions recorded"
	}
	oldest, ok := cache.Oldest()
	if !ok {
		return true, "no definitions recorded"
	}
	if !executable.IsZero() && executable.Truncate(time.Second).After(oldest) {
		return true, "executable is newer than its definitions"
	}
	if stored != fingerprint {
		return true, "built-in commands changed"
	}
	return false, ""
}

func (d *Detector) check(ctx context.Context, layerDir string, cache *domain.Cache) (string, error) {
	scripts, err := d.scripts.ListScripts(domain.ScriptsPath(layerDir))
	if err != nil {
		return "", err
	}
	if reason := compareSets("script", scripts, cache.LocationsOf(domain.KindScript)); reason != "" {
		return reason, nil
	}
	for _, script := range scripts {
		if reason, err := d.isUpdated(ctx, script, cache); reason != "" || err != nil {
			return reason, err
		}
	}

	languages, err := d.scripts.ListScripts(domain.LanguagesPath(layerDir))
	if err != nil {
		return "", err
	}
	if reason := compareSets("language", languages, cache.LocationsOf(domain.KindLanguage)); reason != "" {
		return reason, nil
	}

	languageScripts := cache.LocationsOf(domain.KindLanguageScript)
	for _, language := range languages {
		if reason, err := d.isUpdated(ctx, language, cache); reason != "" || err != nil {
			return reason, err
		}

		dir := domain.LanguageScriptsPath(language)
		current, err := d.scripts.ListScripts(dir)
		if err != nil {
			return "", err
		}
		recorded := under(languageScripts, dir)
		if reason := compareSets("language script", current, recorded); reason != "" {
			return reason, nil
		}
		for _, script := range current {
			if reason, err := d.isUpdated(ctx, script, cache); reason != "" || err != nil {
				return reason, err
			}
		}
	}

	return "", nil
}

// isUpdated reports whether path, or any file in its companion directory
// outside of state directories, is newer than the definitions recorded for it.
func (d *Detector) isUpdated(ctx context.Context, path string, cache *domain.Cache) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	recorded, ok := cache.OldestUpdate(path)
	if !ok {
		return "no definitions recorded for " + path, nil
	}

	modified, err := d.times.FileTime(path)
	if err != nil {
		return "", err
	}
	if modified.After(recorded) {
		return path + " changed", nil
	}

	for file, err := range d.walker.WalkFiles(domain.CompanionDir(path), domain.StateDirName) {
		if err != nil {
			return "", err
		}
		modified, err := d.times.FileTime(file)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", err
		}
		if modified.After(recorded) {
			return file + " changed", nil
		}
	}
	return "", nil
}

// compareSets reports the first path present in only one of current and
// recorded.
func compareSets(what string, current, recorded []string) string {
	for _, p := range current {
		if !slices.Contains(recorded, p) {
			return what + " added: " + p
		}
	}
	for _, p := range recorded {
		if !slices.Contains(current, p) {
			return what + " removed: " + p
		}
	}
	return ""
}

func under(paths []string, dir string) []string {
	prefix := dir + string(filepath.Separator)
	var out []string
	for _, p := range paths {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}
