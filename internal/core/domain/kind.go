package domain

import "go.trai.ch/zerr"

// Kind is the origin category of a definition. It is set once when a node is
// created and never changes afterwards.
type Kind uint8

const (
	// KindBuiltIn marks commands compiled into the tool.
	KindBuiltIn Kind = iota
	// KindLanguage marks a language plugin and the commands it declares.
	KindLanguage
	// KindLanguageScript marks a script shipped in a language plugin's companion directory.
	KindLanguageScript
	// KindScript marks a user script from a profile's scripts directory.
	KindScript
)

// Kinds lists every kind in merge precedence order, farthest first.
var Kinds = []Kind{KindBuiltIn, KindLanguage, KindLanguageScript, KindScript}

// String returns the textual form of the kind.
func (k Kind) String() string {
	switch k {
	case KindBuiltIn:
		return "built-in"
	case KindLanguage:
		return "language"
	case KindLanguageScript:
		return "language-script"
	case KindScript:
		return "script"
	default:
		return "unknown"
	}
}

// ParseKind converts the textual form produced by String back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "built-in":
		return KindBuiltIn, nil
	case "language":
		return KindLanguage, nil
	case "language-script":
		return KindLanguageScript, nil
	case "script":
		return KindScript, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrUnknownKind, "parse kind"), "kind", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindBuiltIn, KindLanguage, KindLanguageScript, KindScript:
		return []byte(k.String()), nil
	default:
		return nil, zerr.With(zerr.Wrap(ErrUnknownKind, "marshal kind"), "kind", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
