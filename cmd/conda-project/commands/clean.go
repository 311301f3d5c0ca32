package commands

import "github.com/spf13/cobra"

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [environment]",
		Short: "Remove installed environments",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			return c.app.Clean(cmd.Context(), firstArg(args), all)
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Remove every environment")
	return cmd
}
