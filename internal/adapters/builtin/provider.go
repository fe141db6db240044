// Package builtin describes the commands oi itself provides.
package builtin

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/oi/internal/adapters/usage"
	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/zerr"
)

// Command is one row of the built-in table. Usage is written in the usage
// grammar scripts answer queries with.
type Command struct {
	Name        string
	Description string
	Usage       string
}

// Table lists the commands of the oi binary.
var Table = []Command{
	{
		Name:        "definitions",
		Description: "Inspect and rebuild command definitions",
		Usage: `list "List every definition"
			[--kind] "Only list definitions of this kind" end
			[--plain] "Print one path per line" end
			[--tree] "Always draw the tree" end
		end
		show "Show a definition and its parameters" end
		complete "List completions for a partial command" end
		rebuild "Rebuild stale layers"
			[--force] "Rebuild every layer" end
		end
		watch "Rebuild layers when they change" end
		query "Print the raw self-description of a script" end`,
	},
	{
		Name:        "version",
		Description: "Print version information",
	},
}

// Provider implements ports.BuiltInProvider over a command table.
type Provider struct {
	commands    []*domain.Item
	fingerprint string
}

// NewProvider parses table.
func NewProvider(table []Command) (*Provider, error) {
	h := xxhash.New()
	commands := make([]*domain.Item, 0, len(table))

	for _, c := range table {
		params, err := usage.Parse(c.Usage)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid built-in usage"), "command", c.Name)
		}
		commands = append(commands, &domain.Item{
			Name:        c.Name,
			Description: c.Description,
			Required:    true,
			Children:    params,
		})

		_, _ = h.WriteString(c.Name)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(c.Description)
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(c.Usage)
		_, _ = h.WriteString("\x00")
	}

	return &Provider{
		commands:    commands,
		fingerprint: fmt.Sprintf("%016x", h.Sum64()),
	}, nil
}

// Commands returns a fresh copy of the built-in commands.
func (p *Provider) Commands() []*domain.Item {
	out := make([]*domain.Item, len(p.commands))
	for i, c := range p.commands {
		out[i] = c.Clone()
	}
	return out
}

// Fingerprint identifies the table contents.
func (p *Provider) Fingerprint() string {
	return p.fingerprint
}
