package ports

import "go.trai.ch/oi/internal/core/domain"

// DefinitionStore defines the interface for persisting one layer of definitions.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DefinitionStore interface {
	// Load reads the definitions file at path together with the fingerprint
	// it was saved with. A missing or malformed file returns a nil cache and
	// no error.
	Load(path string) (*domain.Cache, string, error)

	// Save writes cache to path atomically.
	Save(path string, cache *domain.Cache, fingerprint string) error

	// Remove deletes the definitions file at path. A missing file is not an error.
	Remove(path string) error
}
