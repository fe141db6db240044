package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/oi/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Golden(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("rebuilt layer /g/.oi") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("skipping script deploy") },
			goldenName: "warn_basic",
		},
		{
			name: "error chain with metadata",
			log: func(l *logger.Logger) {
				inner := zerr.With(zerr.Wrap(errors.New("exit status 2"), "script query failed"), "script", "deploy")
				l.Error(zerr.Wrap(inner, "failed to rebuild layer"))
			},
			goldenName: "error_chain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Debug(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Debug("hidden")
	assert.Empty(t, buf.String())

	lg.SetVerbose(true)
	lg.Debug("visible")
	assert.Equal(t, "● visible\n", buf.String())

	lg.SetVerbose(false)
	buf.Reset()
	lg.Debug("hidden again")
	assert.Empty(t, buf.String())
}

func TestLogger_ErrorNil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.With(zerr.Wrap(errors.New("boom"), "script query failed"), "script", "deploy"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error":"script query failed: boom"`)
	assert.Contains(t, out, `"script":"deploy"`)
	assert.NotContains(t, out, "✗")

	buf.Reset()
	lg.SetJSON(false)
	lg.Error(errors.New("pretty again"))
	assert.Equal(t, "✗ Error: pretty again\n", buf.String())
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).With("layer", "/g").WithGroup("run")
	lg.Info("rebuilt", "queries", 3)

	assert.Equal(t, "rebuilt layer=/g run.queries=3\n", buf.String())
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lg.Info("info")
			lg.Warn("warn")
			lg.Error(errors.New("error"))
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		lg.SetJSON(true)
		lg.SetVerbose(true)
	}()
	wg.Wait()

	require.NotNil(t, lg)
}
