// Package output builds termenv outputs with consistent color handling and
// decides how much decoration a writer can take.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects how catalog listings are drawn.
type Mode int

const (
	// ModeAuto draws a tree on terminals and plain lines elsewhere.
	ModeAuto Mode = iota
	// ModeTree always draws the decorated tree.
	ModeTree
	// ModePlain always prints one command path per line.
	ModePlain
)

// ColorProfile returns Ascii when NO_COLOR is set and the detected terminal
// profile otherwise.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output for w using ColorProfile.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(ColorProfile()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}

// IsTerminal reports whether w is a terminal. Only *os.File writers can be.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ResolveMode applies a user choice to what the writer supports. CI=true or
// CI=1 disables decoration in auto mode.
func ResolveMode(w io.Writer, requested Mode) Mode {
	if requested != ModeAuto {
		return requested
	}
	ci := os.Getenv("CI")
	if ci == "true" || ci == "1" || !IsTerminal(w) {
		return ModePlain
	}
	return ModeTree
}
