package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/conda-project/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [environment]",
		Short: "Install environments",
		Long:  "Lock the environment if needed and install it into the project.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			forCommand, _ := cmd.Flags().GetString("for-command")
			asPlatform, _ := cmd.Flags().GetString("as-platform")
			force, _ := cmd.Flags().GetBool("force")
			checkOnly, _ := cmd.Flags().GetBool("check-only")

			opts := app.InstallOptions{
				Environment: firstArg(args),
				All:         all,
				ForCommand:  forCommand,
				AsPlatform:  asPlatform,
				Force:       force,
			}
			if checkOnly {
				return c.checkInstalled(cmd, opts)
			}
			return c.app.Install(cmd.Context(), opts)
		},
	}
	cmd.Flags().Bool("all", false, "Install every environment")
	cmd.Flags().String("for-command", "", "Install the environment of the named command")
	cmd.Flags().String("as-platform", "", "Install for another platform, e.g. osx-64")
	cmd.Flags().BoolP("force", "f", false, "Reinstall even if the environment is up to date")
	cmd.Flags().Bool("check-only", false, "Only report whether the environment is installed and up to date")
	cmd.MarkFlagsMutuallyExclusive("all", "for-command")
	return cmd
}

func (c *CLI) checkInstalled(cmd *cobra.Command, opts app.InstallOptions) error {
	statuses, err := c.app.InstallStatus(cmd.Context(), opts)
	if err != nil {
		return err
	}

	p := c.app.Printer(cmd.OutOrStdout())
	ok := true
	for _, s := range statuses {
		switch {
		case s.Current:
			p.Success("environment %s is installed and up to date in %s", s.Environment, s.Prefix)
		case !s.Installed:
			p.Failure("environment %s is not installed", s.Environment)
			ok = false
		default:
			p.Failure("environment %s is out of date", s.Environment)
			ok = false
		}
	}
	if !ok {
		return failed
	}
	return nil
}
