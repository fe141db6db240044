package staleness_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/oi/internal/adapters/fs"
	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/core/ports/mocks"
	"go.trai.ch/oi/internal/engine/staleness"
	"go.uber.org/mock/gomock"
)

var (
	recordedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now        = recordedAt.Add(time.Hour)
)

// layer is a profile directory with one script, one language and one
// language script, all last modified before recordedAt.
type layer struct {
	dir        string
	script     string
	language   string
	langScript string
}

func newLayer(t *testing.T) layer {
	t.Helper()
	dir := t.TempDir()
	l := layer{
		dir:        dir,
		script:     filepath.Join(dir, "scripts", "deploy.sh"),
		language:   filepath.Join(dir, "languages", "go"),
		langScript: filepath.Join(dir, "languages", "go-files", "scripts", "fmt"),
	}
	writeExec(t, l.script)
	writeFile(t, filepath.Join(dir, "scripts", "deploy-files", "nested", "config.txt"))
	writeFile(t, filepath.Join(dir, "scripts", "deploy-files", "state", "last-run"))
	writeExec(t, l.language)
	writeExec(t, l.langScript)
	return l
}

func (l layer) cache() *domain.Cache {
	script := &domain.Item{Name: "deploy", Required: true}
	script.Add(&domain.Item{Name: "env", Required: true})
	script.Stamp(domain.KindScript, l.script, recordedAt)

	lang := &domain.Item{Name: "go", Description: "Commands for the go plugin", Required: true}
	lang.Add(&domain.Item{Name: "test", Required: true})
	lang.Stamp(domain.KindLanguage, l.language, recordedAt)

	fmtScript := &domain.Item{Name: "fmt", Required: true}
	fmtScript.Stamp(domain.KindLanguageScript, l.langScript, recordedAt)
	lang.Children = append(lang.Children, fmtScript)

	return domain.NewCacheFrom([]*domain.Item{lang, script})
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte("x"), domain.FilePerm))
	touch(t, path, recordedAt.Add(-time.Minute))
}

func writeExec(t *testing.T, path string) {
	t.Helper()
	writeFile(t, path)
	require.NoError(t, os.Chmod(path, 0o700)) //nolint:gosec // scripts must be executable
}

func touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, at, at))
}

func newDetector() *staleness.Detector {
	return staleness.NewDetector(
		fs.NewScriptLister(),
		fs.NewFileTimesWithClock(func() time.Time { return now }),
		fs.NewWalker(),
	)
}

func TestDetector_IsStale_Fresh(t *testing.T) {
	l := newLayer(t)

	stale, reason := newDetector().IsStale(context.Background(), l.dir, l.cache())
	assert.False(t, stale, reason)
	assert.Empty(t, reason)
}

func TestDetector_IsStale_NoCache(t *testing.T) {
	l := newLayer(t)

	stale, _ := newDetector().IsStale(context.Background(), l.dir, nil)
	assert.True(t, stale)
}

func TestDetector_IsStale_Changes(t *testing.T) {
	tests := []struct {
		name   string
		change func(t *testing.T, l layer)
		reason string
	}{
		{
			name: "script added",
			change: func(t *testing.T, l layer) {
				writeExec(t, filepath.Join(l.dir, "scripts", "release"))
			},
			reason: "script added",
		},
		{
			name: "script removed",
			change: func(t *testing.T, l layer) {
				require.NoError(t, os.Remove(l.script))
			},
			reason: "script removed",
		},
		{
			name: "script modified",
			change: func(t *testing.T, l layer) {
				touch(t, l.script, recordedAt.Add(time.Second))
			},
			reason: "deploy.sh changed",
		},
		{
			name: "nested companion file modified",
			change: func(t *testing.T, l layer) {
				touch(t, filepath.Join(l.dir, "scripts", "deploy-files", "nested", "config.txt"), recordedAt.Add(time.Minute))
			},
			reason: "config.txt changed",
		},
		{
			name: "companion file added",
			change: func(t *testing.T, l layer) {
				path := filepath.Join(l.dir, "scripts", "deploy-files", "extra")
				writeFile(t, path)
				touch(t, path, recordedAt.Add(time.Minute))
			},
			reason: "extra changed",
		},
		{
			name: "language added",
			change: func(t *testing.T, l layer) {
				writeExec(t, filepath.Join(l.dir, "languages", "rust"))
			},
			reason: "language added",
		},
		{
			name: "language modified",
			change: func(t *testing.T, l layer) {
				touch(t, l.language, recordedAt.Add(time.Second))
			},
			reason: "go changed",
		},
		{
			name: "language script added",
			change: func(t *testing.T, l layer) {
				writeExec(t, filepath.Join(l.dir, "languages", "go-files", "scripts", "vet"))
			},
			reason: "language script added",
		},
		{
			name: "language script removed",
			change: func(t *testing.T, l layer) {
				require.NoError(t, os.Remove(l.langScript))
			},
			reason: "language script removed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayer(t)
			tt.change(t, l)

			stale, reason := newDetector().IsStale(context.Background(), l.dir, l.cache())
			assert.True(t, stale)
			assert.Contains(t, reason, tt.reason)
		})
	}
}

func TestDetector_IsStale_IgnoresStateDirectory(t *testing.T) {
	l := newLayer(t)
	touch(t, filepath.Join(l.dir, "scripts", "deploy-files", "state", "last-run"), recordedAt.Add(time.Minute))
	writeFile(t, filepath.Join(l.dir, "scripts", "deploy-files", "nested", "state", "deep"))
	touch(t, filepath.Join(l.dir, "scripts", "deploy-files", "nested", "state", "deep"), recordedAt.Add(time.Minute))

	stale, reason := newDetector().IsStale(context.Background(), l.dir, l.cache())
	assert.False(t, stale, reason)
}

func TestDetector_IsStale_SameSecondIsFresh(t *testing.T) {
	l := newLayer(t)
	touch(t, l.script, recordedAt.Add(900*time.Millisecond))

	stale, reason := newDetector().IsStale(context.Background(), l.dir, l.cache())
	assert.False(t, stale, reason)
}

func TestDetector_IsStale_ClampsFutureTimes(t *testing.T) {
	l := newLayer(t)
	future := now.Add(24 * time.Hour)
	touch(t, l.script, future)

	cache := l.cache()
	cache.Get("deploy").Stamp(domain.KindScript, l.script, now)

	stale, reason := newDetector().IsStale(context.Background(), l.dir, cache)
	assert.False(t, stale, reason)

	info, err := os.Stat(l.script)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(now), "mtime %v was not clamped", info.ModTime())
}

func TestDetector_IsStale_ErrorsMeanStale(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockScriptLister(ctrl)
	times := mocks.NewMockFileTimes(ctrl)
	walker := mocks.NewMockFileWalker(ctrl)

	lister.EXPECT().ListScripts("/layer/scripts").Return(nil, errors.New("permission denied"))

	d := staleness.NewDetector(lister, times, walker)
	stale, reason := d.IsStale(context.Background(), "/layer", domain.NewCache())
	assert.True(t, stale)
	assert.Contains(t, reason, "permission denied")
}

func TestDetector_IsStale_CanceledContext(t *testing.T) {
	l := newLayer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stale, reason := newDetector().IsStale(ctx, l.dir, l.cache())
	assert.True(t, stale)
	assert.Contains(t, reason, "canceled")
}

func TestDetector_IsBuiltInStale(t *testing.T) {
	item := &domain.Item{Name: "version", Required: true}
	item.Stamp(domain.KindBuiltIn, "", recordedAt)
	cache := domain.NewCacheFrom([]*domain.Item{item})

	tests := []struct {
		name       string
		cache      *domain.Cache
		stored     string
		executable time.Time
		wantStale  bool
	}{
		{"absent", nil, "abc", recordedAt, true},
		{"empty", domain.NewCache(), "abc", recordedAt, true},
		{"fresh", cache, "abc", recordedAt.Add(-time.Hour), false},
		{"same second", cache, "abc", recordedAt.Add(500 * time.Millisecond), false},
		{"newer executable", cache, "abc", recordedAt.Add(time.Second), true},
		{"unknown executable", cache, "abc", time.Time{}, false},
		{"table changed", cache, "old", recordedAt.Add(-time.Hour), true},
	}

	d := newDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stale, reason := d.IsBuiltInStale(tt.cache, tt.stored, tt.executable, "abc")
			assert.Equal(t, tt.wantStale, stale, reason)
		})
	}
}
