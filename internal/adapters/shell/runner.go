// Package shell runs plugins and scripts as child processes and tags their
// output with the line protocol.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/core/ports"
	"go.trai.ch/zerr"
	shexpand "mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

const (
	placeholderRunLocation   = "{run-location}"
	placeholderGlobalProfile = "{global-profile}"
	placeholderLocalProfile  = "{local-profile}"

	streamBuffer = 64
	waitDelay    = 2 * time.Second
)

// Runner implements ports.ScriptRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// result describes how a process ended.
type result struct {
	exitCode int
	started  bool
	timedOut bool
}

// Run executes the invocation and collects every line.
func (r *Runner) Run(ctx context.Context, inv domain.Invocation) (*domain.Output, error) {
	args := userArguments(inv)
	out := &domain.Output{}

	res := r.execute(ctx, inv, args, func(l domain.Line) bool {
		out.Lines = append(out.Lines, l)
		return true
	})
	out.ExitCode = res.exitCode

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, zerr.With(zerr.Wrap(ctxErr, "script run canceled"), "script", inv.Script)
	}
	return out, nil
}

// Stream executes the invocation and delivers lines as they arrive.
func (r *Runner) Stream(ctx context.Context, inv domain.Invocation) (<-chan domain.Line, error) {
	lines := make(chan domain.Line, streamBuffer)
	go func() {
		defer close(lines)
		_ = r.execute(ctx, inv, userArguments(inv), func(l domain.Line) bool {
			select {
			case lines <- l:
				return true
			case <-ctx.Done():
				return false
			}
		})
	}()

	return lines, nil
}

// Query asks the script for its command definitions.
func (r *Runner) Query(ctx context.Context, inv domain.Invocation) (string, error) {
	out := &domain.Output{}
	res := r.execute(ctx, inv, placeholderRunLocation+" "+domain.DefinitionsQuery, func(l domain.Line) bool {
		out.Lines = append(out.Lines, l)
		return true
	})

	fail := func(reason string) error {
		e := zerr.With(zerr.Wrap(domain.ErrScriptQueryFailed, reason), "script", inv.Script)
		e = zerr.With(e, "exit_code", res.exitCode)
		if errs := out.Errors(); len(errs) > 0 {
			e = zerr.With(e, "stderr", strings.Join(errs, "\n"))
		}
		return e
	}

	switch {
	case !res.started:
		return "", fail("script could not be started")
	case res.timedOut:
		return "", zerr.With(fail("script timed out"), "timeout", inv.Timeout.String())
	case ctx.Err() != nil:
		return "", zerr.With(zerr.Wrap(ctx.Err(), "script query canceled"), "script", inv.Script)
	}

	// A script that describes itself and then exits non-zero still counts.
	text := strings.TrimSpace(out.Text())
	switch {
	case text == "" && res.exitCode != 0:
		return "", fail("script exited with a non-zero status")
	case text == "":
		return "", zerr.With(zerr.Wrap(domain.ErrEmptyResponse, "query script"), "script", inv.Script)
	case res.exitCode != 0:
		r.logger.Debug(fmt.Sprintf("%s exited with status %d after describing itself", inv.Script, res.exitCode))
	}
	return text, nil
}

// execute prepares the argument string and runs the process. Arguments that
// cannot be prepared are reported like a process that failed to start.
func (r *Runner) execute(
	ctx context.Context,
	inv domain.Invocation,
	args string,
	emit func(domain.Line) bool,
) result {
	expanded, argv, err := prepare(inv, args)
	if err != nil {
		emit(domain.Line{Kind: domain.LineError, Text: err.Error()})
		return result{exitCode: -1}
	}
	return r.spawn(ctx, inv, expanded, argv, emit)
}

// spawn runs the process to completion. Lines are handed to emit one at a
// time; once emit reports false the remaining output is drained and dropped.
func (r *Runner) spawn(
	ctx context.Context,
	inv domain.Invocation,
	expanded string,
	argv []string,
	emit func(domain.Line) bool,
) result {
	runCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	var mu sync.Mutex
	open := true
	send := func(l domain.Line) {
		mu.Lock()
		defer mu.Unlock()
		if open {
			open = emit(l)
		}
	}

	stdout := &lineWriter{send: send}
	stderr := &lineWriter{send: send, fromStderr: true}

	cmd := exec.CommandContext(runCtx, inv.Script, argv...) //nolint:gosec // scripts are user installed
	cmd.Dir = inv.RunLocation
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	r.logger.Debug(fmt.Sprintf("running %s %s", inv.Script, expanded))
	if err := cmd.Start(); err != nil {
		startErr := zerr.With(zerr.Wrap(domain.ErrScriptStartFailed, err.Error()), "script", inv.Script)
		send(domain.Line{Kind: domain.LineError, Text: startErr.Error()})
		return result{exitCode: -1}
	}

	waitErr := cmd.Wait()
	stdout.flush()
	stderr.flush()

	res := result{started: true, exitCode: -1}
	if cmd.ProcessState != nil {
		res.exitCode = cmd.ProcessState.ExitCode()
	}
	if errors.Is(waitErr, exec.ErrWaitDelay) {
		r.logger.Debug(fmt.Sprintf("%s left output open after exiting", inv.Script))
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		res.timedOut = true
		send(domain.Line{Kind: domain.LineError, Text: "script timed out after " + inv.Timeout.String()})
	}

	send(domain.Line{
		Kind: domain.LineEvent,
		Text: fmt.Sprintf("builtin command ran %q %s", domain.BaseName(inv.Script), expanded),
	})
	return res
}

// lineWriter splits a process stream into tagged lines. Each stream has its
// own writer; exec copies every stream from a single goroutine.
type lineWriter struct {
	send       func(domain.Line)
	fromStderr bool
	buf        []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// flush emits a final unterminated line.
func (w *lineWriter) flush() {
	if len(w.buf) > 0 {
		w.emit(w.buf)
		w.buf = nil
	}
}

func (w *lineWriter) emit(line []byte) {
	text := strings.TrimSuffix(string(line), "\r")
	w.send(domain.ParseLine(text, w.fromStderr))
}

// userArguments prefixes the argument string of inv with the placeholders
// every script receives ahead of its own arguments, unless inv is raw.
func userArguments(inv domain.Invocation) string {
	args := inv.Arguments
	if inv.Raw {
		return args
	}
	prefix := placeholderRunLocation + " " + placeholderGlobalProfile + " " + placeholderLocalProfile
	if args = strings.TrimSpace(args); args == "" {
		return prefix
	}
	return prefix + " " + args
}

// prepare expands placeholders and splits the result into argv.
func prepare(inv domain.Invocation, args string) (string, []string, error) {
	expanded, err := expand(args, inv)
	if err != nil {
		return "", nil, err
	}
	argv, err := splitWords(expanded)
	if err != nil {
		return "", nil, zerr.With(zerr.Wrap(domain.ErrInvalidArguments, err.Error()), "arguments", expanded)
	}
	return expanded, argv, nil
}

func expand(args string, inv domain.Invocation) (string, error) {
	values := []struct{ token, value string }{
		{placeholderRunLocation, inv.RunLocation},
		{placeholderGlobalProfile, inv.Profiles.Global},
		{placeholderLocalProfile, inv.Profiles.Local},
	}

	pairs := make([]string, 0, 2*len(values))
	for _, v := range values {
		quoted, err := syntax.Quote(v.value, syntax.LangBash)
		if err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrInvalidArguments, err.Error()), "placeholder", v.token)
		}
		pairs = append(pairs, v.token, quoted)
	}

	return strings.NewReplacer(pairs...).Replace(args), nil
}

// splitWords splits s into fields the way a shell splits a command line,
// honouring quotes and backslashes. Nothing is expanded: parameters, tildes
// and substitutions reach the script exactly as written.
func splitWords(s string) ([]string, error) {
	var argv []string
	for word, err := range syntax.NewParser().WordsSeq(strings.NewReader(s)) {
		if err != nil {
			return nil, err
		}
		var field strings.Builder
		writeParts(&field, s, word.Parts, false)
		argv = append(argv, field.String())
	}
	return argv, nil
}

func writeParts(b *strings.Builder, src string, parts []syntax.WordPart, quoted bool) {
	for _, part := range parts {
		switch p := part.(type) {
		case *syntax.Lit:
			b.WriteString(unescape(p.Value, quoted))
		case *syntax.SglQuoted:
			value := p.Value
			if p.Dollar {
				value, _, _ = shexpand.Format(nil, value, nil)
			}
			b.WriteString(value)
		case *syntax.DblQuoted:
			writeParts(b, src, p.Parts, true)
		default:
			b.WriteString(src[part.Pos().Offset():part.End().Offset()])
		}
	}
}

// unescape removes the backslashes a shell would remove from a literal.
// Within double quotes only \", \\, \$ and \` are escapes.
func unescape(s string, quoted bool) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			next := s[i+1]
			if !quoted || strings.IndexByte("\"\\$`", next) >= 0 {
				i++
				c = next
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
