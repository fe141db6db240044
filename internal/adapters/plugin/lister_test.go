package plugin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/oi/internal/adapters/plugin"
	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type listerMocks struct {
	runner  *mocks.MockScriptRunner
	scripts *mocks.MockScriptLister
	logger  *mocks.MockLogger
}

func setupLister(t *testing.T) (*plugin.Lister, listerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := listerMocks{
		runner:  mocks.NewMockScriptRunner(ctrl),
		scripts: mocks.NewMockScriptLister(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}
	cfg := domain.Config{WorkingDirectory: "/work", ScriptTimeout: time.Second, Workers: 2}
	return plugin.NewLister(m.runner, m.scripts, m.logger, cfg), m
}

func TestLister_ListLanguages(t *testing.T) {
	lister, m := setupLister(t)

	m.scripts.EXPECT().ListScripts("/p/.oi/languages").Return([]string{
		"/p/.oi/languages/go.sh",
		"/p/.oi/languages/rust",
	}, nil)
	m.runner.EXPECT().Query(gomock.Any(), domain.Invocation{
		Script:      "/p/.oi/languages/go.sh",
		RunLocation: "/work",
		Timeout:     time.Second,
	}).Return(`"Go tools" | test "Run tests" [-race] end end !build "Build it" end`, nil)
	m.runner.EXPECT().Query(gomock.Any(), gomock.Any()).Return(`"Rust tools"`, nil)

	langs, err := lister.ListLanguages(context.Background(), "/p/.oi/languages")
	require.NoError(t, err)
	require.Len(t, langs, 2)

	assert.Equal(t, "go", langs[0].Name)
	assert.Equal(t, "/p/.oi/languages/go.sh", langs[0].Path)
	require.Len(t, langs[0].Usages, 2)
	assert.Equal(t, "test", langs[0].Usages[0].Name)
	assert.Equal(t, "-race", langs[0].Usages[0].Children[0].Name)
	assert.True(t, langs[0].Usages[1].Override)

	assert.Equal(t, "rust", langs[1].Name)
	assert.Empty(t, langs[1].Usages)
}

func TestLister_ListLanguages_QueryFailureKeepsLanguage(t *testing.T) {
	lister, m := setupLister(t)

	m.scripts.EXPECT().ListScripts(gomock.Any()).Return([]string{"/p/.oi/languages/broken"}, nil)
	m.runner.EXPECT().Query(gomock.Any(), gomock.Any()).Return("", domain.ErrScriptQueryFailed)
	m.logger.EXPECT().Warn(gomock.Any()).Times(1)

	langs, err := lister.ListLanguages(context.Background(), "/p/.oi/languages")
	require.NoError(t, err)
	require.Len(t, langs, 1)
	assert.Equal(t, "broken", langs[0].Name)
	assert.Nil(t, langs[0].Usages)
}

func TestLister_ListLanguages_BadGrammar(t *testing.T) {
	lister, m := setupLister(t)

	m.scripts.EXPECT().ListScripts(gomock.Any()).Return([]string{"/p/.oi/languages/odd"}, nil)
	m.runner.EXPECT().Query(gomock.Any(), gomock.Any()).Return(`"Odd" | end`, nil)
	m.logger.EXPECT().Warn(gomock.Any()).Times(1)

	langs, err := lister.ListLanguages(context.Background(), "/p/.oi/languages")
	require.NoError(t, err)
	require.Len(t, langs, 1)
	assert.Empty(t, langs[0].Usages)
}

func TestLister_ListLanguages_ListError(t *testing.T) {
	lister, m := setupLister(t)
	boom := errors.New("permission denied")

	m.scripts.EXPECT().ListScripts(gomock.Any()).Return(nil, boom)

	_, err := lister.ListLanguages(context.Background(), "/p/.oi/languages")
	require.ErrorIs(t, err, boom)
}
