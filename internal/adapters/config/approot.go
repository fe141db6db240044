package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/zerr"
)

// ResolveAppRoot returns the global configuration root. An explicit value
// wins, then the OI_APP_ROOT environment variable, then the user
// configuration directory.
func ResolveAppRoot(explicit string) (string, error) {
	root := explicit
	if root == "" {
		root = os.Getenv(domain.AppRootEnv)
	}
	if root == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", zerr.Wrap(domain.ErrAppRoot, err.Error())
		}
		root = filepath.Join(base, "oi")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrAppRoot, err.Error()), "path", root)
	}
	return abs, nil
}
