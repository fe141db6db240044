// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Sky    = lipgloss.Color("#0EA5E9")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// Tree glyphs.
const (
	Branch = "├── "
	Last   = "└── "
	Pipe   = "│   "
	Space  = "    "
)

// KindColor returns the accent color for a definition kind given by its
// textual form.
func KindColor(kind string) lipgloss.Color {
	switch kind {
	case "built-in":
		return Iris
	case "language":
		return Green
	case "language-script":
		return Sky
	case "script":
		return Yellow
	default:
		return Slate
	}
}
