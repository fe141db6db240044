// Package usage parses the self-description a plugin or script prints when
// asked for its command definitions.
//
// A response is one logical line:
//
//	"<description>" | <grammar>
//
// The grammar is a whitespace separated token stream. A name opens a new
// level beneath the innermost open one, an optional quoted string right after
// it is its description, and the keyword end closes the innermost level.
// Levels still open at the end of input are closed implicitly. A name written
// as [name] is optional, and a leading ! marks it as overriding.
package usage

import (
	"strings"
	"unicode"

	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/zerr"
)

const endKeyword = "end"

// ParseResponse splits a response line at its first unescaped pipe into the
// description and the parsed parameter grammar. Without a pipe the whole line
// is the description.
func ParseResponse(line string) (string, []*domain.Item, error) {
	head, tail, found := cutUnescaped(line, '|')

	description := unquote(strings.ReplaceAll(strings.TrimSpace(head), `\|`, "|"))
	if !found {
		return description, nil, nil
	}

	params, err := Parse(tail)
	if err != nil {
		return "", nil, zerr.With(err, "response", line)
	}
	return description, params, nil
}

// Parse turns a usage grammar into an ordered parameter tree.
func Parse(grammar string) ([]*domain.Item, error) {
	toks, err := tokenize(grammar)
	if err != nil {
		return nil, err
	}

	var (
		roots []*domain.Item
		stack []*domain.Item
		last  *domain.Item
	)

	for _, tok := range toks {
		switch {
		case tok.quoted:
			if last == nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrOrphanDescription, "parse usage"), "description", tok.text)
			}
			last.Description = tok.text
			last = nil
		case tok.text == endKeyword:
			if len(stack) == 0 {
				return nil, zerr.Wrap(domain.ErrUnbalancedEnd, "parse usage")
			}
			stack = stack[:len(stack)-1]
			last = nil
		default:
			node := newNode(tok.text)
			if len(stack) == 0 {
				roots = append(roots, node)
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
			last = node
		}
	}

	return roots, nil
}

func newNode(word string) *domain.Item {
	node := &domain.Item{Required: true}
	if rest, ok := strings.CutPrefix(word, "!"); ok && rest != "" {
		node.Override = true
		word = rest
	}
	if len(word) > 2 && strings.HasPrefix(word, "[") && strings.HasSuffix(word, "]") {
		node.Required = false
		word = word[1 : len(word)-1]
	}
	node.Name = word
	return node
}

type token struct {
	text   string
	quoted bool
}

func tokenize(s string) ([]token, error) {
	var toks []token
	r := []rune(s)

	for i := 0; i < len(r); {
		switch {
		case unicode.IsSpace(r[i]):
			i++
		case r[i] == '"':
			var sb strings.Builder
			j := i + 1
			closed := false
			for ; j < len(r); j++ {
				if r[j] == '\\' && j+1 < len(r) && (r[j+1] == '"' || r[j+1] == '\\') {
					j++
					sb.WriteRune(r[j])
					continue
				}
				if r[j] == '"' {
					closed = true
					break
				}
				sb.WriteRune(r[j])
			}
			if !closed {
				return nil, zerr.With(zerr.Wrap(domain.ErrUnterminatedQuote, "parse usage"), "offset", i)
			}
			toks = append(toks, token{text: sb.String(), quoted: true})
			i = j + 1
		default:
			j := i
			for j < len(r) && !unicode.IsSpace(r[j]) {
				j++
			}
			toks = append(toks, token{text: string(r[i:j])})
			i = j
		}
	}

	return toks, nil
}

// cutUnescaped splits s around the first sep not preceded by a backslash.
func cutUnescaped(s string, sep byte) (string, string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
