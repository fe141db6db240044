// Package config loads the oi.yaml settings files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader reading from the local file system.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(logger, NewOSFS())
}

// NewLoaderWithFS creates a new Loader reading through fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Load reads the global settings in appRoot and then the settings of the
// nearest profile directory above cwd. Values from the nearer file win.
func (l *Loader) Load(cwd, appRoot string) (domain.Config, error) {
	cfg := domain.Config{
		WorkingDirectory: cwd,
		AppRoot:          appRoot,
	}

	paths := []string{}
	if appRoot != "" {
		paths = append(paths, filepath.Join(appRoot, domain.SettingsFileName))
	}
	if local := l.findLocalRoot(cwd, appRoot); local != "" {
		paths = append(paths, filepath.Join(local, domain.SettingsFileName))
	}

	for _, path := range paths {
		settings, err := l.readSettings(path)
		if err != nil {
			return domain.Config{}, err
		}
		if settings == nil {
			continue
		}
		if err := l.apply(&cfg, settings, path); err != nil {
			return domain.Config{}, err
		}
	}

	return cfg, nil
}

// findLocalRoot walks up from cwd to the nearest profile directory. The
// global root is never reported as a local one.
func (l *Loader) findLocalRoot(cwd, appRoot string) string {
	if cwd == "" {
		return ""
	}

	currentDir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(currentDir, domain.ProfileDirName)
		if isDir, err := l.FS.IsDir(candidate); err == nil && isDir {
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

func (l *Loader) readSettings(path string) (*Settings, error) {
	data, err := l.FS.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}
	return &settings, nil
}

func (l *Loader) apply(cfg *domain.Config, s *Settings, path string) error {
	if s.DefaultLanguage != "" {
		cfg.DefaultLanguage = s.DefaultLanguage
	}
	if s.Token != "" {
		cfg.Token = s.Token
	}
	if s.ScriptTimeout != "" {
		timeout, err := time.ParseDuration(s.ScriptTimeout)
		if err != nil || timeout <= 0 {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidTimeout, "parse settings"), "value", s.ScriptTimeout)
			return zerr.With(err, "path", path)
		}
		cfg.ScriptTimeout = timeout
	}
	switch {
	case s.Workers > 0:
		cfg.Workers = s.Workers
	case s.Workers < 0:
		l.Logger.Warn(fmt.Sprintf("ignoring negative workers setting in %s", path))
	}
	return nil
}
