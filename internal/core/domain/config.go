package domain

import (
	"runtime"
	"time"
)

const (
	// DefaultScriptTimeout bounds a single script invocation.
	DefaultScriptTimeout = 10 * time.Second

	// MaxDefaultWorkers caps the default number of concurrent script queries.
	MaxDefaultWorkers = 8
)

// Config carries the per-run settings every component needs. It is built once
// at startup and passed explicitly.
type Config struct {
	// Token identifies the session of the calling tool, if any.
	Token string
	// WorkingDirectory is the absolute directory the tool was invoked from.
	WorkingDirectory string
	// DefaultLanguage names the language whose commands are aliased as roots.
	DefaultLanguage string
	// AppRoot is the global configuration root and home of the built-in layer.
	AppRoot string
	// ExecutablePath is the running binary, used to invalidate the built-in layer.
	ExecutablePath string
	// ScriptTimeout bounds each script invocation.
	ScriptTimeout time.Duration
	// Workers bounds concurrent script queries within one layer.
	Workers int
}

// WithDefaults returns a copy of c with zero fields filled in.
func (c Config) WithDefaults() Config {
	if c.ScriptTimeout <= 0 {
		c.ScriptTimeout = DefaultScriptTimeout
	}
	if c.Workers <= 0 {
		c.Workers = min(runtime.NumCPU(), MaxDefaultWorkers)
	}
	return c
}

// Profiles names the active global and local profiles passed to scripts.
type Profiles struct {
	Global string
	Local  string
}

// Language is an installed language plugin.
type Language struct {
	// Name is the plugin file name without extension.
	Name string
	// Path is the absolute path of the plugin executable.
	Path string
	// Usages are the top-level commands the plugin declares itself.
	Usages []*Item
}

// Invocation describes one run of a plugin or script.
type Invocation struct {
	// Script is the absolute path of the executable.
	Script string
	// Arguments is the argument string, possibly holding placeholders.
	Arguments string
	// Raw passes Arguments as given, without the leading run location and
	// profile placeholders.
	Raw bool
	// RunLocation replaces {run-location}.
	RunLocation string
	// Profiles replace {global-profile} and {local-profile}.
	Profiles Profiles
	// Timeout bounds the run; zero means no limit beyond the context.
	Timeout time.Duration
}

// Invocation returns an invocation of script bound to this configuration.
func (c Config) Invocation(script string, profiles Profiles) Invocation {
	return Invocation{
		Script:      script,
		RunLocation: c.WorkingDirectory,
		Profiles:    profiles,
		Timeout:     c.ScriptTimeout,
	}
}
