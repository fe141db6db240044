package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/ui/output"
	"go.trai.ch/oi/internal/ui/style"
)

// treePrinter draws definitions as an indented tree.
type treePrinter struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	plain    bool
}

func newTreePrinter(w io.Writer) *treePrinter {
	profile := output.ColorProfile()
	return &treePrinter{
		w:        w,
		renderer: lipgloss.NewRenderer(w, termenv.WithProfile(profile)),
		plain:    profile == termenv.Ascii,
	}
}

func (p *treePrinter) paint(color lipgloss.TerminalColor, s string) string {
	if p.plain {
		return s
	}
	return p.renderer.NewStyle().Foreground(color).Render(s)
}

func (p *treePrinter) printRoots(roots []*domain.Item) {
	for _, root := range roots {
		p.printHeader(root)
		p.printChildren(root.Children, root.Kind, "")
	}
}

func (p *treePrinter) printHeader(it *domain.Item) {
	line := p.paint(style.KindColor(it.Kind.String()), label(it))
	if it.Description != "" {
		line += "  " + it.Description
	}
	line += "  " + p.paint(style.Slate, "("+it.Kind.String()+")")
	_, _ = fmt.Fprintln(p.w, line)
}

func (p *treePrinter) printChildren(items []*domain.Item, parent domain.Kind, indent string) {
	for i, it := range items {
		branch, next := style.Branch, style.Pipe
		if i == len(items)-1 {
			branch, next = style.Last, style.Space
		}

		line := indent + p.paint(style.Slate, branch) + p.paint(style.KindColor(it.Kind.String()), label(it))
		if it.Description != "" {
			line += "  " + it.Description
		}
		if it.Kind != parent {
			line += "  " + p.paint(style.Slate, "("+it.Kind.String()+")")
		}
		_, _ = fmt.Fprintln(p.w, line)

		p.printChildren(it.Children, it.Kind, indent+next)
	}
}

// label renders a name the way the usage grammar writes it.
func label(it *domain.Item) string {
	name := it.Name
	if !it.Required {
		name = "[" + name + "]"
	}
	if it.Override {
		name = "!" + name
	}
	return name
}

// printPaths prints the path of every node, one per line.
func printPaths(w io.Writer, roots []*domain.Item) {
	var visit func(prefix []string, items []*domain.Item)
	visit = func(prefix []string, items []*domain.Item) {
		for _, it := range items {
			path := append(prefix[:len(prefix):len(prefix)], it.Name)
			_, _ = fmt.Fprintln(w, strings.Join(path, " "))
			visit(path, it.Children)
		}
	}
	visit(nil, roots)
}

func printItem(w io.Writer, it *domain.Item) {
	_, _ = fmt.Fprintf(w, "Name:        %s\n", label(it))
	_, _ = fmt.Fprintf(w, "Kind:        %s\n", it.Kind)
	if it.Location != "" {
		_, _ = fmt.Fprintf(w, "Location:    %s\n", it.Location)
	}
	if it.Description != "" {
		_, _ = fmt.Fprintf(w, "Description: %s\n", it.Description)
	}
	if len(it.Children) > 0 {
		_, _ = fmt.Fprintln(w, "Parameters:")
		newTreePrinter(w).printChildren(it.Children, it.Kind, "")
	}
}
