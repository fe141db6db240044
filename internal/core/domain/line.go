package domain

import "strings"

// Protocol markers prefixed to lines that are not plain output.
const (
	ErrorMarker = "error|"
	EventMarker = "event|"
)

// LineKind tags a line of script output.
type LineKind uint8

const (
	// LineOutput is a plain line written to standard output.
	LineOutput LineKind = iota
	// LineError is a line from standard error, or one carrying the error marker.
	LineError
	// LineEvent is a synthetic or script-emitted event.
	LineEvent
)

// Line is one tagged line of script output. Text never carries the marker.
type Line struct {
	Kind LineKind
	Text string
}

// ParseLine tags a raw line. Lines read from standard error are always error
// lines; an existing error marker is not doubled.
func ParseLine(raw string, fromStderr bool) Line {
	if text, ok := strings.CutPrefix(raw, ErrorMarker); ok {
		return Line{Kind: LineError, Text: text}
	}
	if fromStderr {
		return Line{Kind: LineError, Text: raw}
	}
	if text, ok := strings.CutPrefix(raw, EventMarker); ok {
		return Line{Kind: LineEvent, Text: text}
	}
	return Line{Kind: LineOutput, Text: raw}
}

// String renders the line in its wire form.
func (l Line) String() string {
	switch l.Kind {
	case LineError:
		return ErrorMarker + l.Text
	case LineEvent:
		return EventMarker + l.Text
	default:
		return l.Text
	}
}

// Output is the completed result of running a script.
type Output struct {
	Lines    []Line
	ExitCode int
}

// Text concatenates all plain output lines without separators.
func (o *Output) Text() string {
	var sb strings.Builder
	for _, l := range o.Lines {
		if l.Kind == LineOutput {
			sb.WriteString(l.Text)
		}
	}
	return sb.String()
}

// Errors returns the text of all error lines.
func (o *Output) Errors() []string {
	var out []string
	for _, l := range o.Lines {
		if l.Kind == LineError {
			out = append(out, l.Text)
		}
	}
	return out
}
