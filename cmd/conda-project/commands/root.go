// Package commands implements the CLI commands for conda-project.
package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/conda-project/internal/app"
	"go.trai.ch/conda-project/internal/build"
	"go.trai.ch/conda-project/internal/core/domain"
	"go.trai.ch/conda-project/internal/core/ports"
	"go.trai.ch/conda-project/internal/engine/runner"
	"go.trai.ch/conda-project/internal/ui/output"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for conda-project.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	global  globalFlags
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.Options) error
	Printer(w io.Writer) *output.Printer
	Init(ctx context.Context, opts app.InitOptions) error
	Lock(ctx context.Context, name string, force bool) error
	Check(ctx context.Context) ([]app.LockCheck, error)
	Install(ctx context.Context, opts app.InstallOptions) error
	InstallStatus(ctx context.Context, opts app.InstallOptions) ([]app.EnvironmentStatus, error)
	Clean(ctx context.Context, name string, all bool) error
	Run(ctx context.Context, req runner.Request) error
	Activate(ctx context.Context, req runner.ActivateRequest) error
	Add(ctx context.Context, name string, edit ports.DependencyEdit) error
	Remove(ctx context.Context, name string, edit ports.DependencyEdit) error
}

type globalFlags struct {
	directory      string
	verbose        bool
	jsonLogs       bool
	color          string
	archive        string
	archiveOptions []string
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "conda-project",
		Short:         "Reproducible, per-project conda environments",
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
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.global.directory, "directory", ".", "Project directory")
	flags.BoolVarP(&c.global.verbose, "verbose", "v", false, "Show debug output")
	flags.BoolVar(&c.global.jsonLogs, "json-logs", false, "Write logs as JSON")
	flags.StringVar(&c.global.color, "color", "auto", "Colorize output: auto, always, or never")
	flags.StringVar(&c.global.archive, "project-archive", "",
		"Bootstrap the project from a directory, tar or zip archive, or http(s) URL")
	flags.StringArrayVar(&c.global.archiveOptions, "archive-storage-options", nil,
		"key=value option for fetching the project archive (repeatable)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return c.configure(cmd)
	}

	rootCmd.AddCommand(c.newInitCmd())
	rootCmd.AddCommand(c.newLockCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newActivateCmd())
	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configure(cmd *cobra.Command) error {
	options, err := parseOptions(c.global.archiveOptions)
	if err != nil {
		return err
	}

	dir := c.global.directory
	if c.global.archive != "" && !cmd.Flags().Changed("directory") {
		dir = ""
	}

	return c.app.Configure(app.Options{
		Directory:      dir,
		Verbose:        c.global.verbose,
		JSONLogs:       c.global.jsonLogs,
		Color:          c.global.color,
		Archive:        c.global.archive,
		ArchiveOptions: options,
	})
}

func parseOptions(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	options := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "expected key=value"), "option", pair)
		}
		options[k] = v
	}
	return options, nil
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

// SetInput sets the input stream for the root command. Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.rootCmd.SetIn(in)
}

// failed is returned by checks that already printed their findings.
var failed = &domain.ExitStatusError{Code: 1}
