package definitions_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/oi/internal/adapters/fs"
	"go.trai.ch/oi/internal/adapters/plugin"
	"go.trai.ch/oi/internal/adapters/store"
	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/core/ports/mocks"
	"go.trai.ch/oi/internal/engine/definitions"
	"go.trai.ch/oi/internal/engine/scheduler"
	"go.trai.ch/oi/internal/engine/staleness"
	"go.uber.org/mock/gomock"
)

var base = time.Now().Truncate(time.Second)

// fixture is a global and a local layer with scripted plugin responses.
type fixture struct {
	t       *testing.T
	appRoot string
	global  string
	local   string
	cfg     domain.Config

	// responses maps a script path to its self-description. Scripts without
	// an entry fail their query.
	responses map[string]string
	calls     atomic.Int32
	now       time.Time

	logger  *mocks.MockLogger
	builtIn *mocks.MockBuiltInProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		t:         t,
		appRoot:   filepath.Join(root, "app"),
		global:    filepath.Join(root, "app"),
		local:     filepath.Join(root, "project", ".oi"),
		responses: make(map[string]string),
		now:       base,
	}
	f.cfg = domain.Config{WorkingDirectory: filepath.Join(root, "project"), Workers: 2}
	require.NoError(t, os.MkdirAll(f.global, domain.DirPerm))
	require.NoError(t, os.MkdirAll(f.local, domain.DirPerm))

	ctrl := gomock.NewController(t)
	f.logger = mocks.NewMockLogger(ctrl)
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	f.builtIn = mocks.NewMockBuiltInProvider(ctrl)
	f.builtIn.EXPECT().Fingerprint().Return("table-v1").AnyTimes()
	return f
}

func (f *fixture) expectBuiltIns(times int) {
	f.builtIn.EXPECT().Commands().DoAndReturn(func() []*domain.Item {
		return []*domain.Item{
			{Name: "foo", Description: "built-in foo", Required: true},
			{Name: "version", Description: "Print version information", Required: true},
		}
	}).Times(times)
}

// script installs an executable under dir and registers its response.
func (f *fixture) script(dir, rel, response string) string {
	f.t.Helper()
	path := filepath.Join(dir, rel)
	f.file(path)
	require.NoError(f.t, os.Chmod(path, 0o700)) //nolint:gosec // scripts must be executable
	if response != "" {
		f.responses[path] = response
	}
	return path
}

func (f *fixture) file(path string) {
	f.t.Helper()
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(f.t, os.WriteFile(path, []byte("#!/bin/sh\n"), domain.FilePerm))
	f.touch(path, base.Add(-time.Hour))
}

func (f *fixture) touch(path string, at time.Time) {
	f.t.Helper()
	require.NoError(f.t, os.Chtimes(path, at, at))
}

// advance moves the clock forward and returns a time between the previous
// build and the new now.
func (f *fixture) advance() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now.Add(-30 * time.Second)
}

func (f *fixture) builder() *definitions.Builder {
	f.t.Helper()
	ctrl := gomock.NewController(f.t)

	runner := mocks.NewMockScriptRunner(ctrl)
	runner.EXPECT().Query(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, inv domain.Invocation) (string, error) {
			f.calls.Add(1)
			resp, ok := f.responses[inv.Script]
			if !ok {
				return "", domain.ErrScriptQueryFailed
			}
			return resp, nil
		}).AnyTimes()

	profiles := mocks.NewMockProfileLocator(ctrl)
	profiles.EXPECT().OrderedPaths().Return([]string{f.local, f.global}).AnyTimes()
	profiles.EXPECT().GlobalProfileName().Return("default").AnyTimes()
	profiles.EXPECT().LocalProfileName().Return("default").AnyTimes()
	profiles.EXPECT().AppRoot().Return(f.appRoot).AnyTimes()

	lister := fs.NewScriptLister()
	times := fs.NewFileTimesWithClock(func() time.Time { return f.now })

	return definitions.NewBuilder(
		f.cfg,
		profiles,
		f.builtIn,
		store.NewStore(f.logger),
		plugin.NewLister(runner, lister, f.logger, f.cfg),
		lister,
		times,
		staleness.NewDetector(lister, times, fs.NewWalker()),
		scheduler.NewPool(runner, f.cfg.Workers),
		f.logger,
	)
}

func (f *fixture) build() (*domain.Cache, *definitions.Report) {
	f.t.Helper()
	cache, report, err := f.builder().BuildWithReport(context.Background(), false)
	require.NoError(f.t, err)
	return cache, report
}

func rootsNamed(c *domain.Cache, name string) []*domain.Item {
	var out []*domain.Item
	for _, r := range c.Roots() {
		if r.Name == name {
			out = append(out, r)
		}
	}
	return out
}

func TestBuilder_Build_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.expectBuiltIns(1)
	f.script(f.local, "languages/go", `"Go" | test "Run tests" [-race] end end`)
	f.script(f.local, "languages/go-files/scripts/fmt", `"Formats code"`)
	f.script(f.global, "scripts/deploy.sh", `"Deploys" | env end`)

	first, report := f.build()
	assert.Equal(t, int32(3), f.calls.Load())
	assert.Equal(t, 3, report.Queries())
	for _, l := range report.Layers {
		assert.True(t, l.Rebuilt, l.Path)
		assert.NoError(t, l.PersistErr)
	}
	assert.FileExists(t, domain.BuiltInDefinitionsPath(f.appRoot))
	assert.FileExists(t, domain.DefinitionsPath(f.global))
	assert.FileExists(t, domain.DefinitionsPath(f.local))

	second, report := f.build()
	assert.Equal(t, int32(3), f.calls.Load(), "second build must not query any script")
	assert.Zero(t, report.Queries())
	for _, l := range report.Layers {
		assert.False(t, l.Rebuilt, "%s: %s", l.Path, l.Reason)
	}

	want, err := json.Marshal(first)
	require.NoError(t, err)
	got, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}

func TestBuilder_Build_Catalog(t *testing.T) {
	f := newFixture(t)
	f.expectBuiltIns(1)
	golang := f.script(f.local, "languages/go", `"Go" | test "Run tests" [-race] end end`)
	fmtScript := f.script(f.local, "languages/go-files/scripts/fmt", `"Formats code" | [--check] end`)
	deploy := f.script(f.global, "scripts/deploy.sh", `"Deploys" | env end`)

	cache, _ := f.build()

	lang := cache.GetLanguage("go")
	require.NotNil(t, lang)
	assert.Equal(t, "Commands for the go plugin", lang.Description)
	assert.Equal(t, golang, lang.Location)
	assert.Equal(t, base, lang.UpdatedAt)

	test := cache.Get("go", "test", "-race")
	require.NotNil(t, test)
	assert.Equal(t, domain.KindLanguage, test.Kind)
	assert.False(t, test.Required)

	script := cache.GetLanguageScript("fmt")
	require.NotNil(t, script)
	assert.Equal(t, domain.KindLanguageScript, script.Kind)
	assert.Equal(t, fmtScript, script.Location)
	assert.Equal(t, "Formats code", script.Description)
	assert.NotNil(t, cache.Get("go", "fmt", "--check"))

	dep := cache.GetScript("deploy")
	require.NotNil(t, dep)
	assert.Equal(t, deploy, dep.Location)
	assert.Equal(t, "env", dep.Children[0].Name)
	assert.Equal(t, domain.KindScript, dep.Children[0].Kind)

	assert.NotNil(t, cache.GetBuiltIn("version"))
	assert.Nil(t, cache.Get("fmt"), "language scripts are not roots without a default language")
}

func TestBuilder_Build_OverrideReplacesBuiltIn(t *testing.T) {
	f := newFixture(t)
	f.expectBuiltIns(1)
	f.script(f.global, "languages/go", `"Go" | !foo "Go foo" sub end end test end`)

	cache, _ := f.build()

	foos := rootsNamed(cache, "foo")
	require.Len(t, foos, 1)
	assert.Equal(t, domain.KindLanguage, foos[0].Kind)
	assert.Equal(t, "Go foo", foos[0].Description)
	assert.Equal(t, "sub", foos[0].Children[0].Name)
	assert.Nil(t, cache.GetBuiltIn("foo"))
	assert.Nil(t, cache.Get("go", "foo"), "overriding commands are hoisted out of the language")
	assert.NotNil(t, cache.Get("go", "test"))
}

func TestBuilder_Build_DefaultLanguageDoesNotClobber(t *testing.T) {
	f := newFixture(t)
	f.cfg.DefaultLanguage = "go"
	f.expectBuiltIns(1)
	f.script(f.local, "languages/go", `"Go" | test "Run tests" end deploy "Go deploy" end`)
	f.script(f.local, "languages/go-files/scripts/fmt", `"Formats code"`)
	f.script(f.local, "scripts/deploy", `"Script deploy"`)

	cache, _ := f.build()

	alias := cache.Get("test")
	require.NotNil(t, alias)
	assert.Equal(t, domain.KindLanguage, alias.Kind)
	assert.Equal(t, "Run tests", alias.Description)

	deploys := rootsNamed(cache, "deploy")
	require.Len(t, deploys, 1)
	assert.Equal(t, domain.KindScript, deploys[0].Kind)
	assert.Equal(t, "Script deploy", deploys[0].Description)

	fmtAlias := cache.Get("fmt")
	require.NotNil(t, fmtAlias)
	assert.Equal(t, domain.KindLanguageScript, fmtAlias.Kind)
}

func TestBuilder_Build_DefaultLanguageYieldsToBuiltIn(t *testing.T) {
	f := newFixture(t)
	f.cfg.DefaultLanguage = "go"
	f.expectBuiltIns(1)
	f.script(f.global, "languages/go", `"Go" | version "Go version" end test end`)

	cache, _ := f.build()

	versions := rootsNamed(cache, "version")
	require.Len(t, versions, 1)
	assert.Equal(t, domain.KindBuiltIn, versions[0].Kind)
	assert.Equal(t, "Print version information", cache.Get("version").Description)
	assert.NotNil(t, cache.Get("go", "version"))
	assert.Equal(t, domain.KindLanguage, cache.Get("test").Kind)
}

func TestBuilder_Build_DefaultLanguageYieldsToOtherLayers(t *testing.T) {
	f := newFixture(t)
	f.cfg.DefaultLanguage = "go"
	f.expectBuiltIns(1)
	f.script(f.global, "scripts/deploy", `"Global deploy"`)
	f.script(f.local, "languages/go", `"Go" | deploy "Go deploy" end lint end`)

	cache, _ := f.build()

	deploys := rootsNamed(cache, "deploy")
	require.Len(t, deploys, 1)
	assert.Equal(t, domain.KindScript, deploys[0].Kind)
	assert.Equal(t, "Global deploy", cache.Get("deploy").Description)
	assert.NotNil(t, cache.Get("lint"))

	// Aliases depend on every layer, so they are not stored with any of them.
	layer, _, err := store.NewStore(f.logger).Load(domain.DefinitionsPath(f.local))
	require.NoError(t, err)
	require.NotNil(t, layer)
	assert.Nil(t, layer.Get("lint"))
	assert.NotNil(t, layer.Get("go", "lint"))
}

func TestBuilder_Build_DefaultLanguagePrefersNearestLayer(t *testing.T) {
	f := newFixture(t)
	f.cfg.DefaultLanguage = "go"
	f.expectBuiltIns(1)
	f.script(f.global, "languages/go", `"Go" | test "Global tests" end vet end`)
	f.script(f.local, "languages/go", `"Go" | test "Local tests" end`)

	cache, _ := f.build()

	tests := rootsNamed(cache, "test")
	require.Len(t, tests, 1)
	assert.Equal(t, "Local tests", tests[0].Description)
	assert.NotNil(t, cache.Get("vet"), "commands only the farther layer declares are still aliased")
}

func TestBuilder_Build_NearerLayerWins(t *testing.T) {
	f := newFixture(t)
	f.expectBuiltIns(1)
	f.script(f.global, "scripts/deploy", `"Global deploy"`)
	f.script(f.local, "scripts/deploy", `"Local deploy"`)

	cache, report := f.build()

	assert.Equal(t, "Local deploy", cache.Get("deploy").Description)
	assert.Equal(t, "Global deploy", cache.GetOriginal("deploy").Description)

	require.Len(t, report.Layers, 3)
	assert.Equal(t, domain.BuiltInDefinitionsPath(f.appRoot), report.Layers[0].Path)
	assert.Equal(t, domain.DefinitionsPath(f.global), report.Layers[1].Path)
	assert.Equal(t, domain.DefinitionsPath(f.local), report.Layers[2].Path)
}

func TestBuilder_Build_ScriptAdditionRebuildsLayer(t *testing.T) {
	f := newFixture(t)
	f.expectBuiltIns(1)
	f.script(f.local, "scripts/deploy", `"Deploys"`)
	f.build()
	require.Equal(t, int32(1), f.calls.Load())

	f.advance()
	f.script(f.local, "scripts/release", `"Releases"`)

	cache, report := f.build()
	assert.Equal(t, int32(3), f.calls.Load(), "the whole layer is rebuilt")
	assert.NotNil(t, cache.Get("release"))
	assert.NotNil(t, cache.Get("deploy"))
	assert.True(t, report.Layers[2].Rebuilt)
	assert.Contains(t, report.Layers[2].Reason, "script added")
	assert.False(t, report.Layers[1].Rebuilt)
}

func TestBuilder_Build_CompanionChanges(t *testing.T) {
	f := newFixture(t)
	f.expectBuiltIns(1)
	f.script(f.local, "scripts/deploy", `"Deploys"`)
	state := filepath.Join(f.local, "scripts", "deploy-files", "state", "last-run")
	nested := filepath.Join(f.local, "scripts", "deploy-files", "templates", "app.yaml")
	f.file(state)
	f.file(nested)
	f.build()
	require.Equal(t, int32(1), f.calls.Load())

	f.touch(state, f.advance())
	f.build()
	assert.Equal(t, int32(1), f.calls.Load(), "changes under state must not rebuild")

	f.touch(nested, f.advance())
	f.build()
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestBuilder_Build_BrokenScriptIsSkipped(t *testing.T) {
	f := newFixture(t)
	f.expectBuiltIns(1)
	f.script(f.local, "scripts/good", `"Works"`)
	f.script(f.local, "scripts/broken", "")
	f.script(f.local, "scripts/garbled", `"Bad" | end`)
	f.script(f.local, "languages/mute", "")

	cache, report := f.build()

	assert.NotNil(t, cache.Get("good"))
	assert.Nil(t, cache.Get("broken"))
	assert.Nil(t, cache.Get("garbled"))
	mute := cache.GetLanguage("mute")
	require.NotNil(t, mute, "a language that cannot describe itself is still listed")
	assert.Empty(t, mute.Children)
	assert.Equal(t, 2, report.Layers[2].Skipped)
}

func TestBuilder_Build_BuiltInFingerprintChange(t *testing.T) {
	f := newFixture(t)
	f.expectBuiltIns(1)
	f.build()

	ctrl := gomock.NewController(t)
	changed := mocks.NewMockBuiltInProvider(ctrl)
	changed.EXPECT().Fingerprint().Return("table-v2").AnyTimes()
	changed.EXPECT().Commands().Return([]*domain.Item{{Name: "version", Required: true}}).Times(1)
	f.builtIn = changed

	cache, report := f.build()
	assert.True(t, report.Layers[0].Rebuilt)
	assert.Contains(t, report.Layers[0].Reason, "built-in commands changed")
	assert.Nil(t, cache.Get("foo"))
}

func TestBuilder_Build_PersistFailureKeepsCatalog(t *testing.T) {
	f := newFixture(t)
	f.expectBuiltIns(1)
	f.script(f.local, "scripts/deploy", `"Deploys"`)
	require.NoError(t, os.Mkdir(domain.DefinitionsPath(f.local), domain.DirPerm))
	f.logger.EXPECT().Error(gomock.Any()).Times(1)

	cache, report := f.build()
	assert.NotNil(t, cache.Get("deploy"))
	assert.Error(t, report.Layers[2].PersistErr)
}

func TestBuilder_BuildWithReport_Force(t *testing.T) {
	f := newFixture(t)
	f.expectBuiltIns(2)
	f.script(f.local, "scripts/deploy", `"Deploys"`)
	f.build()

	_, report, err := f.builder().BuildWithReport(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.calls.Load())
	for _, l := range report.Layers {
		assert.True(t, l.Rebuilt)
		assert.Equal(t, "rebuild forced", l.Reason)
	}
}

func TestBuilder_Build_Canceled(t *testing.T) {
	f := newFixture(t)
	f.expectBuiltIns(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.builder().Build(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, domain.DefinitionsPath(f.local))
}
