package ports

import (
	"context"

	"go.trai.ch/oi/internal/core/domain"
)

// ScriptLister defines the interface for enumerating scripts in a directory.
//
//go:generate mockgen -source=enumerator.go -destination=mocks/mock_enumerator.go -package=mocks
type ScriptLister interface {
	// ListScripts returns the absolute paths of executable files directly
	// under dir. A missing directory yields no scripts and no error.
	ListScripts(dir string) ([]string, error)
}

// LanguageLister defines the interface for enumerating installed language plugins.
type LanguageLister interface {
	// ListLanguages returns the plugins installed in dir, each with the
	// usages it declares.
	ListLanguages(ctx context.Context, dir string) ([]domain.Language, error)
}
