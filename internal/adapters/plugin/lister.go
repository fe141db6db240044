// Package plugin enumerates installed language plugins and the commands they
// declare.
package plugin

import (
	"context"
	"fmt"

	"go.trai.ch/oi/internal/adapters/usage"
	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Lister implements ports.LanguageLister.
type Lister struct {
	runner  ports.ScriptRunner
	scripts ports.ScriptLister
	logger  ports.Logger
	cfg     domain.Config
}

// NewLister creates a Lister querying plugins with the settings in cfg.
func NewLister(runner ports.ScriptRunner, scripts ports.ScriptLister, logger ports.Logger, cfg domain.Config) *Lister {
	return &Lister{
		runner:  runner,
		scripts: scripts,
		logger:  logger,
		cfg:     cfg.WithDefaults(),
	}
}

// ListLanguages returns the plugins in dir in name order. Plugins are
// queried in parallel; one that cannot describe itself is listed without
// usages.
func (l *Lister) ListLanguages(ctx context.Context, dir string) ([]domain.Language, error) {
	paths, err := l.scripts.ListScripts(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list languages")
	}

	languages := make([]domain.Language, len(paths))
	var g errgroup.Group
	g.SetLimit(l.cfg.Workers)

	for i, path := range paths {
		languages[i] = domain.Language{Name: domain.BaseName(path), Path: path}
		g.Go(func() error {
			usages, err := l.describe(ctx, path)
			if err != nil {
				l.logger.Warn(fmt.Sprintf("language %s declares no commands: %v", languages[i].Name, err))
				return nil
			}
			languages[i].Usages = usages
			return nil
		})
	}
	_ = g.Wait()

	return languages, nil
}

func (l *Lister) describe(ctx context.Context, path string) ([]*domain.Item, error) {
	response, err := l.runner.Query(ctx, l.cfg.Invocation(path, domain.Profiles{}))
	if err != nil {
		return nil, err
	}
	_, params, err := usage.ParseResponse(response)
	if err != nil {
		return nil, err
	}
	return params, nil
}
