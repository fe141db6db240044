// Package profile resolves the layer directories definitions are read from.
//
// There are two roots: the global root, and a local one found by walking up
// from the working directory to the nearest .oi directory. Each root may
// select a profile by name in its active.profile file, in which case the
// layer is the profile's directory below the root.
package profile

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/oi/internal/core/domain"
)

// Locator implements ports.ProfileLocator. Paths are resolved once, when the
// locator is created.
type Locator struct {
	appRoot    string
	globalName string
	localName  string
	paths      []string
}

// NewLocator resolves the layers visible from cfg.WorkingDirectory.
func NewLocator(cfg domain.Config) *Locator {
	l := &Locator{appRoot: cfg.AppRoot}

	var globalLayer, localLayer string
	if cfg.AppRoot != "" {
		l.globalName = readActiveProfile(cfg.AppRoot)
		globalLayer = layerDir(cfg.AppRoot, l.globalName)
	}
	if localRoot := FindLocalRoot(cfg.WorkingDirectory, cfg.AppRoot); localRoot != "" {
		l.localName = readActiveProfile(localRoot)
		localLayer = layerDir(localRoot, l.localName)
	}

	for _, dir := range []string{localLayer, globalLayer} {
		if dir == "" || !isDir(dir) {
			continue
		}
		if len(l.paths) > 0 && l.paths[len(l.paths)-1] == dir {
			continue
		}
		l.paths = append(l.paths, dir)
	}

	return l
}

// OrderedPaths returns the existing layer directories, nearest first.
func (l *Locator) OrderedPaths() []string {
	return append([]string(nil), l.paths...)
}

// GlobalProfileName returns the profile selected in the global root.
func (l *Locator) GlobalProfileName() string {
	return l.globalName
}

// LocalProfileName returns the profile selected in the local root.
func (l *Locator) LocalProfileName() string {
	return l.localName
}

// AppRoot returns the global root.
func (l *Locator) AppRoot() string {
	return l.appRoot
}

// FindLocalRoot walks up from cwd to the nearest .oi directory. The global
// root is never reported as a local one.
func FindLocalRoot(cwd, appRoot string) string {
	if cwd == "" {
		return ""
	}

	currentDir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(currentDir, domain.ProfileDirName)
		if isDir(candidate) {
			if appRoot != "" && filepath.Clean(appRoot) == candidate {
				return ""
			}
			return candidate
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

func readActiveProfile(root string) string {
	//nolint:gosec // root is a profile directory
	data, err := os.ReadFile(filepath.Join(root, domain.ActiveProfileFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func layerDir(root, name string) string {
	if name == "" || name == domain.DefaultProfileName {
		return root
	}
	return filepath.Join(root, domain.ProfilesDirName, name)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
