// Package commands implements the CLI commands for oi.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/oi/internal/app"
	"go.trai.ch/oi/internal/build"
	"go.trai.ch/oi/internal/core/domain"
	"go.trai.ch/oi/internal/engine/definitions"
)

// CLI represents the command line interface for oi.
type CLI struct {
	app      Application
	log      LogControl
	rootCmd  *cobra.Command
	settings app.Settings
	jsonLog  bool
	verbose  bool
}

// Application represents the application logic interface.
type Application interface {
	Configure(s app.Settings) error
	Definitions(ctx context.Context) (*domain.Cache, error)
	Rebuild(ctx context.Context, force bool) (*definitions.Report, error)
	Show(ctx context.Context, path []string) (*domain.Item, error)
	Complete(ctx context.Context, words []string) ([]string, error)
	Query(ctx context.Context, script string) (<-chan domain.Line, error)
	Watch(ctx context.Context, onRebuild func(*definitions.Report)) error
}

// LogControl adjusts the logger from global flags.
type LogControl interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// New creates a new CLI instance with the given app. log may be nil.
func New(a Application, log LogControl) *CLI {
	rootCmd := &cobra.Command{
		Use:           "oi",
		Short:         "Discover and cache the commands of language plugins and scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		log:     log,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.settings.WorkingDirectory, "cwd", "", "Run as if oi was started in this directory")
	flags.StringVar(&c.settings.AppRoot, "app-root", "", "Global configuration root (default $"+domain.AppRootEnv+" or the user config directory)")
	flags.StringVar(&c.settings.DefaultLanguage, "default-language", "", "Language whose commands are available without a prefix")
	flags.DurationVar(&c.settings.ScriptTimeout, "timeout", 0, "Maximum run time of each script query")
	flags.IntVar(&c.settings.Workers, "workers", 0, "Number of scripts queried in parallel")
	flags.BoolVar(&c.jsonLog, "json-log", false, "Log as JSON")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(c.newDefinitionsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// configure applies the global flags. Commands that read definitions call it
// from PersistentPreRunE.
func (c *CLI) configure(_ *cobra.Command, _ []string) error {
	if c.log != nil {
		c.log.SetJSON(c.jsonLog)
		c.log.SetVerbose(c.verbose)
	}
	return c.app.Configure(c.settings)
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
