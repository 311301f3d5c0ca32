package commands

import "github.com/spf13/cobra"

func (c *CLI) newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock [environment]",
		Short: "Lock environments",
		Long:  "Lock the named environment, or every environment of the project.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return c.app.Lock(cmd.Context(), firstArg(args), force)
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Relock even if the lock file is up to date")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
