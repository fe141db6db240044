package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/engine/definitions"
	"go.trai.ch/oi/internal/ui/output"
	"go.trai.ch/oi/internal/ui/style"
)

func (c *CLI) newDefinitionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "definitions",
		Aliases:           []string{"defs"},
		Short:             "Inspect and rebuild command definitions",
		PersistentPreRunE: c.configure,
	}

	cmd.AddCommand(c.newListCmd())
	cmd.AddCommand(c.newShowCmd())
	cmd.AddCommand(c.newCompleteCmd())
	cmd.AddCommand(c.newRebuildCmd())
	cmd.AddCommand(c.newWatchCmd())
	cmd.AddCommand(c.newQueryCmd())

	return cmd
}

func (c *CLI) newListCmd() *cobra.Command {
	var (
		kind  string
		plain bool
		tree  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache, err := c.app.Definitions(cmd.Context())
			if err != nil {
				return err
			}

			roots := cache.Roots()
			if kind != "" {
				k, err := domain.ParseKind(kind)
				if err != nil {
					return err
				}
				roots = cache.RootsOf(k)
			}

			mode := output.ModeAuto
			switch {
			case plain:
				mode = output.ModePlain
			case tree:
				mode = output.ModeTree
			}

			out := cmd.OutOrStdout()
			if output.ResolveMode(out, mode) == output.ModePlain {
				printPaths(out, roots)
				return nil
			}
			newTreePrinter(out).printRoots(roots)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only list definitions of this kind (built-in, language, language-script, script)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print one path per line")
	cmd.Flags().BoolVar(&tree, "tree", false, "Always draw the tree")
	cmd.MarkFlagsMutuallyExclusive("plain", "tree")

	return cmd
}

func (c *CLI) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <path...>",
		Short: "Show a definition and its parameters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := c.app.Show(cmd.Context(), args)
			if err != nil {
				return err
			}
			printItem(cmd.OutOrStdout(), item)
			return nil
		},
	}
}

func (c *CLI) newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [words...]",
		Short: "List completions for a partial command",
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates, err := c.app.Complete(cmd.Context(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, candidate := range candidates {
				_, _ = fmt.Fprintln(out, candidate)
			}
			return nil
		},
	}
}

func (c *CLI) newRebuildCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild stale layers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Rebuild(cmd.Context(), force)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Rebuild every layer")

	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild layers when they change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			return c.app.Watch(cmd.Context(), func(report *definitions.Report) {
				printReport(out, report)
			})
		},
	}
}

func (c *CLI) newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <script>",
		Short: "Print the raw self-description of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := c.app.Query(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			for line := range lines {
				if line.Kind == domain.LineOutput {
					_, _ = fmt.Fprintln(out, line.Text)
					continue
				}
				_, _ = fmt.Fprintln(errOut, line.String())
			}
			return cmd.Context().Err()
		},
	}
}

func printReport(w io.Writer, report *definitions.Report) {
	for _, l := range report.Layers {
		switch {
		case l.PersistErr != nil:
			_, _ = fmt.Fprintf(w, "%s %s rebuilt but not saved: %v\n", style.Cross, l.Path, l.PersistErr)
		case l.Rebuilt:
			_, _ = fmt.Fprintf(w, "%s %s rebuilt: %s (%d queries)\n", style.Check, l.Path, l.Reason, l.Queries)
		default:
			_, _ = fmt.Fprintf(w, "%s %s up to date\n", style.Dot, l.Path)
		}
		if l.Skipped > 0 {
			_, _ = fmt.Fprintf(w, "  %s %d scripts skipped, see the log for details\n", style.Warning, l.Skipped)
		}
	}
}
