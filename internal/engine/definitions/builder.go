// Package definitions assembles the command definition catalog from the
// built-in table and every active profile layer.
package definitions

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.trai.ch/oi/internal/adapters/usage"
	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/core/ports"
	"go.trai.ch/oi/internal/engine/scheduler"
	"go.trai.ch/oi/internal/engine/staleness"
	"go.trai.ch/zerr"
)

// LayerReport describes what happened to one layer during a build.
type LayerReport struct {
	// Path is the definitions file of the layer.
	Path string
	// Rebuilt is set when the layer was rediscovered instead of loaded.
	Rebuilt bool
	// Reason explains why the layer was rebuilt.
	Reason string
	// Queries counts the self-description queries issued.
	Queries int
	// Skipped counts plugins and scripts left out after a failed query.
	Skipped int
	// PersistErr is set when the rebuilt layer could not be saved.
	PersistErr error
}

// Report describes a build, built-in layer first, then profile layers from
// the farthest to the nearest.
type Report struct {
	Layers []LayerReport
}

// Queries returns the total number of queries issued.
func (r *Report) Queries() int {
	total := 0
	for _, l := range r.Layers {
		total += l.Queries
	}
	return total
}

// Builder loads, refreshes and merges definition layers.
type Builder struct {
	cfg       domain.Config
	profiles  ports.ProfileLocator
	builtIn   ports.BuiltInProvider
	store     ports.DefinitionStore
	languages ports.LanguageLister
	scripts   ports.ScriptLister
	times     ports.FileTimes
	detector  *staleness.Detector
	pool      *scheduler.Pool
	logger    ports.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(
	cfg domain.Config,
	profiles ports.ProfileLocator,
	builtIn ports.BuiltInProvider,
	store ports.DefinitionStore,
	languages ports.LanguageLister,
	scripts ports.ScriptLister,
	times ports.FileTimes,
	detector *staleness.Detector,
	pool *scheduler.Pool,
	logger ports.Logger,
) *Builder {
	return &Builder{
		cfg:       cfg.WithDefaults(),
		profiles:  profiles,
		builtIn:   builtIn,
		store:     store,
		languages: languages,
		scripts:   scripts,
		times:     times,
		detector:  detector,
		pool:      pool,
		logger:    logger,
	}
}

// Build returns the merged catalog, rebuilding stale layers on the way.
func (b *Builder) Build(ctx context.Context) (*domain.Cache, error) {
	cache, _, err := b.BuildWithReport(ctx, false)
	return cache, err
}

// BuildWithReport is Build with a per-layer account of the work done. With
// force set every layer is rebuilt regardless of its state.
//
// Discovery failures and persistence failures are logged and never fail the
// build; only a canceled context does.
func (b *Builder) BuildWithReport(ctx context.Context, force bool) (*domain.Cache, *Report, error) {
	report := &Report{}
	aggregate := domain.NewCache()

	merge := func(layer *domain.Cache, lr LayerReport) {
		report.Layers = append(report.Layers, lr)
		if layer == nil {
			return
		}
		for _, root := range layer.Roots() {
			aggregate.Add(root)
		}
	}

	merge(b.builtInLayer(force))

	paths := b.profiles.OrderedPaths()
	for _, dir := range slices.Backward(paths) {
		if err := ctx.Err(); err != nil {
			return nil, report, zerr.Wrap(err, "definitions build canceled")
		}
		layer, lr := b.profileLayer(ctx, dir, force)
		merge(layer, lr)
	}

	if err := ctx.Err(); err != nil {
		return nil, report, zerr.Wrap(err, "definitions build canceled")
	}
	b.addAliases(aggregate)
	return aggregate, report, nil
}

func (b *Builder) builtInLayer(force bool) (*domain.Cache, LayerReport) {
	appRoot := b.profiles.AppRoot()
	fingerprint := b.builtIn.Fingerprint()

	var path string
	var cache *domain.Cache
	var stored string
	if appRoot != "" {
		path = domain.BuiltInDefinitionsPath(appRoot)
		cache, stored = b.load(path)
	}
	lr := LayerReport{Path: path}

	stale, reason := true, "rebuild forced"
	if !force {
		stale, reason = b.detector.IsBuiltInStale(cache, stored, b.executableTime(), fingerprint)
	}
	if !stale {
		return cache, lr
	}

	lr.Rebuilt, lr.Reason = true, reason
	b.logger.Debug(fmt.Sprintf("rebuilding built-in definitions: %s", reason))

	now := b.times.Now()
	cache = domain.NewCache()
	for _, cmd := range b.builtIn.Commands() {
		cmd.Stamp(domain.KindBuiltIn, "", now)
		cache.Add(cmd)
	}

	if path != "" {
		lr.PersistErr = b.persist(path, cache, fingerprint)
	}
	return cache, lr
}

func (b *Builder) profileLayer(ctx context.Context, dir string, force bool) (*domain.Cache, LayerReport) {
	path := domain.DefinitionsPath(dir)
	lr := LayerReport{Path: path}

	cache, _ := b.load(path)
	stale, reason := true, "rebuild forced"
	if !force {
		stale, reason = b.detector.IsStale(ctx, dir, cache)
	}
	if !stale {
		return cache, lr
	}

	lr.Rebuilt, lr.Reason = true, reason
	b.logger.Debug(fmt.Sprintf("rebuilding definitions in %s: %s", dir, reason))

	cache = b.rebuild(ctx, dir, &lr)
	if ctx.Err() != nil {
		return nil, lr
	}
	lr.PersistErr = b.persist(path, cache, "")
	return cache, lr
}

// rebuild discovers every plugin and script in the layer directory dir.
func (b *Builder) rebuild(ctx context.Context, dir string, lr *LayerReport) *domain.Cache {
	now := b.times.Now()

	languages, err := b.languages.ListLanguages(ctx, domain.LanguagesPath(dir))
	if err != nil {
		b.logger.Warn(fmt.Sprintf("skipping languages in %s: %v", dir, err))
	}
	lr.Queries += len(languages)

	// Language scripts first, then top-level scripts, in one query batch.
	var invs []domain.Invocation
	var owners []int
	for li, lang := range languages {
		for _, script := range b.listScripts(domain.LanguageScriptsPath(lang.Path)) {
			invs = append(invs, b.cfg.Invocation(script, b.activeProfiles()))
			owners = append(owners, li)
		}
	}
	languageScripts := len(invs)
	for _, script := range b.listScripts(domain.ScriptsPath(dir)) {
		invs = append(invs, b.cfg.Invocation(script, b.activeProfiles()))
	}

	results := b.pool.QueryAll(ctx, invs)
	lr.Queries += len(invs)

	nodes := make([]*domain.Item, len(languages))
	var hoisted [][]*domain.Item
	for li, lang := range languages {
		node, overrides := languageNode(lang, now)
		nodes[li] = node
		hoisted = append(hoisted, overrides)
	}
	for i, res := range results[:languageScripts] {
		item, ok := b.scriptItem(res, domain.KindLanguageScript, now)
		if !ok {
			lr.Skipped++
			continue
		}
		nodes[owners[i]].Children = append(nodes[owners[i]].Children, item)
	}

	cache := domain.NewCache()
	for li, node := range nodes {
		cache.Add(node)
		for _, o := range hoisted[li] {
			cache.Add(o)
		}
	}

	for _, res := range results[languageScripts:] {
		item, ok := b.scriptItem(res, domain.KindScript, now)
		if !ok {
			lr.Skipped++
			continue
		}
		cache.Add(item)
	}

	return cache
}

// addAliases makes the commands of the default language available as roots.
// Aliases are resolved against the merged catalog, so any root of the same
// name from any layer wins. With the language installed in several layers the
// nearest one is aliased first.
func (b *Builder) addAliases(aggregate *domain.Cache) {
	if b.cfg.DefaultLanguage == "" {
		return
	}

	var languages []*domain.Item
	for _, root := range aggregate.Roots() {
		if root.Kind == domain.KindLanguage && root.Name == b.cfg.DefaultLanguage {
			languages = append(languages, root)
		}
	}

	for _, lang := range slices.Backward(languages) {
		for _, child := range lang.Children {
			if aggregate.Get(child.Name) != nil {
				continue
			}
			alias := child.Clone()
			alias.Override = false
			alias.Required = true
			aggregate.Add(alias)
		}
	}
}

// languageNode builds the root of a language plugin. Declared commands marked
// as overriding are returned separately to become roots of their own.
func languageNode(lang domain.Language, now time.Time) (*domain.Item, []*domain.Item) {
	node := &domain.Item{
		Name:        lang.Name,
		Description: fmt.Sprintf("Commands for the %s plugin", lang.Name),
		Required:    true,
	}
	node.Stamp(domain.KindLanguage, lang.Path, now)

	var overrides []*domain.Item
	for _, u := range lang.Usages {
		if u.Override {
			o := u.Clone()
			o.Stamp(domain.KindLanguage, lang.Path, now)
			overrides = append(overrides, o)
			continue
		}
		node.Add(u.Clone())
	}
	return node, overrides
}

func (b *Builder) scriptItem(res scheduler.Result, kind domain.Kind, now time.Time) (*domain.Item, bool) {
	switch res.Status {
	case scheduler.StatusCompleted:
	case scheduler.StatusCanceled:
		b.logger.Debug(fmt.Sprintf("query of %s canceled", res.Script))
		return nil, false
	default:
		b.logger.Warn(fmt.Sprintf("skipping %s: %v", res.Script, res.Err))
		return nil, false
	}
	description, params, err := usage.ParseResponse(res.Response)
	if err != nil {
		b.logger.Warn(fmt.Sprintf("skipping %s: %v", res.Script, err))
		return nil, false
	}

	item := &domain.Item{
		Name:        domain.BaseName(res.Script),
		Description: description,
		Required:    true,
		Children:    params,
	}
	item.Stamp(kind, res.Script, now)
	return item, true
}

func (b *Builder) listScripts(dir string) []string {
	scripts, err := b.scripts.ListScripts(dir)
	if err != nil {
		b.logger.Warn(fmt.Sprintf("skipping scripts in %s: %v", dir, err))
		return nil
	}
	return scripts
}

func (b *Builder) activeProfiles() domain.Profiles {
	return domain.Profiles{
		Global: b.profiles.GlobalProfileName(),
		Local:  b.profiles.LocalProfileName(),
	}
}

// load reads a layer file. Anything that cannot be read is treated as absent.
func (b *Builder) load(path string) (*domain.Cache, string) {
	cache, fingerprint, err := b.store.Load(path)
	if err != nil {
		b.logger.Warn(fmt.Sprintf("ignoring definitions in %s: %v", path, err))
		return nil, ""
	}
	return cache, fingerprint
}

func (b *Builder) persist(path string, cache *domain.Cache, fingerprint string) error {
	if err := b.store.Save(path, cache, fingerprint); err != nil {
		err = zerr.With(zerr.Wrap(err, "failed to persist definitions"), "layer", path)
		b.logger.Error(err)
		return err
	}
	return nil
}

func (b *Builder) executableTime() time.Time {
	if b.cfg.ExecutablePath == "" {
		return time.Time{}
	}
	t, err := b.times.FileTime(b.cfg.ExecutablePath)
	if err != nil {
		b.logger.Debug(fmt.Sprintf("cannot read executable time: %v", err))
		return time.Time{}
	}
	return t
}
