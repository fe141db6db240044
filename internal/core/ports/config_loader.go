package ports

import "go.trai.ch/oi/internal/core/domain"

// ConfigLoader defines the interface for loading settings files.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the settings visible from cwd, falling back to those in
	// appRoot. Fields not set by any file are left zero.
	Load(cwd, appRoot string) (domain.Config, error)
}
