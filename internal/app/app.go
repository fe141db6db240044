// Package app implements the application layer for oi.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/oi/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/oi/internal/adapters/plugin"  //nolint:depguard // Wired in app layer
	"go.trai.ch/oi/internal/adapters/profile" //nolint:depguard // Wired in app layer
	"go.trai.ch/oi/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/core/ports"
	"go.trai.ch/oi/internal/engine/definitions"
	"go.trai.ch/oi/internal/engine/scheduler"
	"go.trai.ch/oi/internal/engine/staleness"
	"go.trai.ch/zerr"
)

// Settings are values given on the command line. Zero fields fall back to
// the settings files.
type Settings struct {
	WorkingDirectory string
	AppRoot          string
	DefaultLanguage  string
	ScriptTimeout    time.Duration
	Workers          int
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       ports.ScriptRunner
	store        ports.DefinitionStore
	scripts      ports.ScriptLister
	times        ports.FileTimes
	walker       ports.FileWalker
	builtIn      ports.BuiltInProvider
	newWatcher   watcher.Factory
	logger       ports.Logger

	cfg      domain.Config
	debounce time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	runner ports.ScriptRunner,
	store ports.DefinitionStore,
	scripts ports.ScriptLister,
	times ports.FileTimes,
	walker ports.FileWalker,
	builtIn ports.BuiltInProvider,
	newWatcher watcher.Factory,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		runner:       runner,
		store:        store,
		scripts:      scripts,
		times:        times,
		walker:       walker,
		builtIn:      builtIn,
		newWatcher:   newWatcher,
		logger:       log,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithDebounce sets the window used to coalesce changes while watching.
func (a *App) WithDebounce(window time.Duration) *App {
	a.debounce = window
	return a
}

// Configure resolves the run configuration from the settings files and the
// command line. It must be called before any other method.
func (a *App) Configure(s Settings) error {
	cwd := s.WorkingDirectory
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return zerr.Wrap(domain.ErrWorkingDirectory, err.Error())
		}
		cwd = wd
	}
	cwd, err := filepath.Abs(cwd)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWorkingDirectory, err.Error()), "path", cwd)
	}

	appRoot, err := config.ResolveAppRoot(s.AppRoot)
	if err != nil {
		return err
	}

	cfg, err := a.configLoader.Load(cwd, appRoot)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	cfg.WorkingDirectory = cwd
	cfg.AppRoot = appRoot
	if s.DefaultLanguage != "" {
		cfg.DefaultLanguage = s.DefaultLanguage
	}
	if s.ScriptTimeout > 0 {
		cfg.ScriptTimeout = s.ScriptTimeout
	}
	if s.Workers > 0 {
		cfg.Workers = s.Workers
	}
	if exe, err := os.Executable(); err == nil {
		cfg.ExecutablePath = exe
	}

	a.cfg = cfg.WithDefaults()
	a.logger.Debug(fmt.Sprintf("working directory %s, app root %s", a.cfg.WorkingDirectory, a.cfg.AppRoot))
	return nil
}

// Config returns the resolved run configuration.
func (a *App) Config() domain.Config {
	return a.cfg
}

func (a *App) locator() *profile.Locator {
	return profile.NewLocator(a.cfg)
}

func (a *App) builder(locator ports.ProfileLocator) *definitions.Builder {
	return definitions.NewBuilder(
		a.cfg,
		locator,
		a.builtIn,
		a.store,
		plugin.NewLister(a.runner, a.scripts, a.logger, a.cfg),
		a.scripts,
		a.times,
		staleness.NewDetector(a.scripts, a.times, a.walker),
		scheduler.NewPool(a.runner, a.cfg.Workers),
		a.logger,
	)
}

// Definitions returns the merged catalog, refreshing stale layers.
func (a *App) Definitions(ctx context.Context) (*domain.Cache, error) {
	return a.builder(a.locator()).Build(ctx)
}

// Rebuild refreshes stale layers. With force, every layer file is removed
// and rebuilt.
func (a *App) Rebuild(ctx context.Context, force bool) (*definitions.Report, error) {
	locator := a.locator()

	if force {
		paths := []string{domain.BuiltInDefinitionsPath(locator.AppRoot())}
		for _, dir := range locator.OrderedPaths() {
			paths = append(paths, domain.DefinitionsPath(dir))
		}
		for _, path := range paths {
			if err := a.store.Remove(path); err != nil {
				return nil, err
			}
		}
	}

	_, report, err := a.builder(locator).BuildWithReport(ctx, force)
	if err != nil {
		return nil, err
	}
	a.logReport(report)
	return report, nil
}

func (a *App) logReport(report *definitions.Report) {
	for _, l := range report.Layers {
		if !l.Rebuilt {
			continue
		}
		msg := fmt.Sprintf("rebuilt %s (%s, %d queries)", l.Path, l.Reason, l.Queries)
		if l.Skipped > 0 {
			msg += fmt.Sprintf(", skipped %d", l.Skipped)
		}
		a.logger.Info(msg)
	}
}

// Show returns the definition at path, e.g. ["conf", "read"].
func (a *App) Show(ctx context.Context, path []string) (*domain.Item, error) {
	cache, err := a.Definitions(ctx)
	if err != nil {
		return nil, err
	}
	item := cache.Get(path...)
	if item == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrDefinitionNotFound, "show definition"), "path", strings.Join(path, " "))
	}
	return item, nil
}

// Complete returns the candidates for the word after words. When the last
// word does not resolve, it is completed as a prefix among its siblings.
func (a *App) Complete(ctx context.Context, words []string) ([]string, error) {
	cache, err := a.Definitions(ctx)
	if err != nil {
		return nil, err
	}

	if len(words) == 0 {
		return names(cache.Roots(), ""), nil
	}
	if item := cache.Get(words...); item != nil {
		return names(item.Children, ""), nil
	}

	parent, prefix := words[:len(words)-1], words[len(words)-1]
	if len(parent) == 0 {
		return names(cache.Roots(), prefix), nil
	}
	if item := cache.Get(parent...); item != nil {
		return names(item.Children, prefix), nil
	}
	return nil, nil
}

func names(items []*domain.Item, prefix string) []string {
	var out []string
	for _, it := range items {
		if strings.HasPrefix(it.Name, prefix) && !slices.Contains(out, it.Name) {
			out = append(out, it.Name)
		}
	}
	return out
}

// Query streams the raw self-description of a script. script is either a
// path or the name of a plugin or script in the catalog.
func (a *App) Query(ctx context.Context, script string) (<-chan domain.Line, error) {
	path, err := a.resolveScript(ctx, script)
	if err != nil {
		return nil, err
	}

	locator := a.locator()
	inv := a.cfg.Invocation(path, domain.Profiles{
		Global: locator.GlobalProfileName(),
		Local:  locator.LocalProfileName(),
	})
	inv.Arguments = "{run-location} " + domain.DefinitionsQuery
	inv.Raw = true
	return a.runner.Stream(ctx, inv)
}

func (a *App) resolveScript(ctx context.Context, script string) (string, error) {
	if strings.ContainsRune(script, filepath.Separator) {
		if filepath.IsAbs(script) {
			return script, nil
		}
		return filepath.Join(a.cfg.WorkingDirectory, script), nil
	}

	cache, err := a.Definitions(ctx)
	if err != nil {
		return "", err
	}
	if item := cache.Get(script); item != nil && item.Kind != domain.KindBuiltIn && item.Location != "" {
		return item.Location, nil
	}
	return "", zerr.With(zerr.Wrap(domain.ErrDefinitionNotFound, "resolve script"), "script", script)
}

// Watch rebuilds the catalog whenever a layer directory changes, until ctx
// is done. onRebuild, if set, receives the report of every rebuild.
func (a *App) Watch(ctx context.Context, onRebuild func(*definitions.Report)) error {
	locator := a.locator()

	var mu sync.Mutex
	rebuild := func() {
		mu.Lock()
		defer mu.Unlock()

		_, report, err := a.builder(locator).BuildWithReport(ctx, false)
		if err != nil {
			if ctx.Err() == nil {
				a.logger.Error(err)
			}
			return
		}
		a.logReport(report)
		if onRebuild != nil {
			onRebuild(report)
		}
	}

	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	defer func() {
		_ = w.Stop()
	}()

	roots := locator.OrderedPaths()
	if err := w.Start(ctx, roots...); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("watching %s", strings.Join(roots, ", ")))

	rebuild()

	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		a.logger.Debug(fmt.Sprintf("changed: %s", strings.Join(paths, ", ")))
		rebuild()
	})
	defer debouncer.Stop()

	for event := range w.Events() {
		debouncer.Add(event.Path)
	}
	return nil
}
